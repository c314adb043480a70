// Package database provides SQLite storage for the pharmacy inventory server:
// the schema migrations and the store operations used by the import pipeline
// and the HTTP handlers.

package database

import (
	"database/sql"
	"fmt"
	"log"
)

// InitSchema creates all pharmacy tables and indexes if they do not exist.
func InitSchema(db *sql.DB) error {
	createMedicationsSQL := `
		CREATE TABLE IF NOT EXISTS medications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			normalized_name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'General Medicine',
			manufacturer TEXT,
			combination TEXT,
			strength TEXT,
			form TEXT,
			purchase_price REAL NOT NULL DEFAULT 0,
			selling_price REAL NOT NULL DEFAULT 0,
			total_stock INTEGER NOT NULL DEFAULT 0,
			available_stock INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`

	createBatchesSQL := `
		CREATE TABLE IF NOT EXISTS medication_batches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			medication_id INTEGER NOT NULL,
			batch_number TEXT NOT NULL,
			received_quantity INTEGER NOT NULL DEFAULT 0,
			current_quantity INTEGER NOT NULL DEFAULT 0,
			expiry_date TEXT NOT NULL,
			purchase_price REAL NOT NULL DEFAULT 0,
			selling_price REAL NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(medication_id, batch_number),
			FOREIGN KEY (medication_id) REFERENCES medications(id) ON DELETE CASCADE
		)
	`

	createPatientsSQL := `
		CREATE TABLE IF NOT EXISTS patients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			normalized_name TEXT NOT NULL,
			gender TEXT,
			date_of_birth TEXT,
			phone TEXT,
			address TEXT,
			blood_group TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`

	createCategoryRulesSQL := `
		CREATE TABLE IF NOT EXISTS category_rules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			priority INTEGER NOT NULL,
			keyword TEXT NOT NULL,
			category TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1
		)
	`

	createImportRunsSQL := `
		CREATE TABLE IF NOT EXISTS import_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_uuid TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			filename TEXT,
			processed_count INTEGER NOT NULL DEFAULT 0,
			success_count INTEGER NOT NULL DEFAULT 0,
			error_count INTEGER NOT NULL DEFAULT 0,
			skipped_count INTEGER NOT NULL DEFAULT 0,
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP
		)
	`

	statements := []struct {
		name string
		sql  string
	}{
		{"medications", createMedicationsSQL},
		{"medication_batches", createBatchesSQL},
		{"patients", createPatientsSQL},
		{"category_rules", createCategoryRulesSQL},
		{"import_runs", createImportRunsSQL},
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s table: %w", stmt.name, err)
		}
	}

	if err := createSchemaIndexes(db); err != nil {
		return err
	}

	if err := seedCategoryRules(db); err != nil {
		return err
	}

	return nil
}

// createSchemaIndexes builds the lookup indexes used by resolve and list paths.
func createSchemaIndexes(db *sql.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_medications_normalized_name ON medications(normalized_name)",
		"CREATE INDEX IF NOT EXISTS idx_medications_category ON medications(category)",
		"CREATE INDEX IF NOT EXISTS idx_batches_medication_id ON medication_batches(medication_id)",
		"CREATE INDEX IF NOT EXISTS idx_batches_expiry_date ON medication_batches(expiry_date)",
		"CREATE INDEX IF NOT EXISTS idx_patients_normalized_name ON patients(normalized_name)",
		"CREATE INDEX IF NOT EXISTS idx_category_rules_priority ON category_rules(priority)",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// seedCategoryRules inserts the built-in keyword rules when the table is empty.
// Rules are data after this point: the CRUD endpoints own them.
func seedCategoryRules(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM category_rules").Scan(&count); err != nil {
		return fmt.Errorf("failed to count category rules: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		keyword  string
		category string
	}{
		{"injection", "Injectable"},
		{"inj ", "Injectable"},
		{"vial", "Injectable"},
		{"ampoule", "Injectable"},
		{"syringe", "Injectable"},
		{"tablet", "Tablet"},
		{"tab ", "Tablet"},
		{"capsule", "Capsule"},
		{"cap ", "Capsule"},
		{"syrup", "Liquid"},
		{"suspension", "Liquid"},
		{"solution", "Liquid"},
		{"elixir", "Liquid"},
		{"ointment", "Topical"},
		{"cream", "Topical"},
		{"gel", "Topical"},
		{"lotion", "Topical"},
		{"drop", "Drops"},
		{"inhaler", "Respiratory"},
		{"respule", "Respiratory"},
		{"nebuliz", "Respiratory"},
		{"powder", "Powder"},
		{"sachet", "Powder"},
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin rule seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO category_rules (priority, keyword, category, active) VALUES (?, ?, ?, 1)")
	if err != nil {
		return fmt.Errorf("failed to prepare rule seed statement: %w", err)
	}
	defer stmt.Close()

	for i, rule := range seed {
		if _, err := stmt.Exec((i+1)*10, rule.keyword, rule.category); err != nil {
			return fmt.Errorf("failed to seed category rule %q: %w", rule.keyword, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rule seed transaction: %w", err)
	}

	log.Printf("[ServiceDB] Seeded %d default category rules", len(seed))
	return nil
}
