package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig holds connection pool settings for the pharmacy database.
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServiceDB wraps the SQLite connection used by the pharmacy services.
type ServiceDB struct {
	conn *sql.DB
}

func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// NewServiceDB opens the pharmacy database at the given path.
func NewServiceDB(dbPath string) (*ServiceDB, error) {
	config := DBConfig{}

	// In-memory SQLite must run on exactly one connection, otherwise every
	// new connection in the pool sees an empty database without the schema.
	if isInMemoryDB(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	return NewServiceDBWithConfig(dbPath, config)
}

// isInMemoryDB reports whether the path refers to an in-memory SQLite database.
func isInMemoryDB(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}

	// file:memdb?mode=memory&cache=shared also lives in memory
	if strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory") {
		return true
	}

	return false
}

// NewServiceDBWithConfig opens the pharmacy database with explicit pool settings.
func NewServiceDBWithConfig(dbPath string, config DBConfig) (*ServiceDB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pharmacy database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		// SQLite handles many concurrent writers poorly; cap the pool
		// to avoid database-is-locked errors under load.
		conn.SetMaxOpenConns(10)
	}

	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}

	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping pharmacy database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// WAL lets readers proceed while an import is writing
	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Printf("[ServiceDB] Warning: Failed to enable WAL mode: %v", err)
	}

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &ServiceDB{conn: conn}, nil
}

// Close closes the database connection.
func (db *ServiceDB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database connection.
func (db *ServiceDB) Ping() error {
	return db.conn.Ping()
}

// GetConnection returns the underlying sql.DB for direct access.
func (db *ServiceDB) GetConnection() *sql.DB {
	return db.conn
}

// QueryRow runs a query expected to return at most one row.
func (db *ServiceDB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

// Query runs a query that may return multiple rows.
func (db *ServiceDB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// Exec runs a statement that does not return rows.
func (db *ServiceDB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}
