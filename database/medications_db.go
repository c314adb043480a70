package database

import (
	"database/sql"
	"fmt"
)

// CreateMedication inserts a new medication and fills in its ID.
func (db *ServiceDB) CreateMedication(m *Medication) error {
	result, err := db.conn.Exec(`
		INSERT INTO medications (code, name, normalized_name, category, manufacturer, combination, strength, form, purchase_price, selling_price, total_stock, available_stock)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Code, m.Name, m.NormalizedName, m.Category, m.Manufacturer, m.Combination, m.Strength, m.Form,
		m.PurchasePrice, m.SellingPrice, m.TotalStock, m.AvailableStock)
	if err != nil {
		return fmt.Errorf("failed to create medication %q: %w", m.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get medication id: %w", err)
	}
	m.ID = id
	return nil
}

// FindMedicationByNormalizedName returns the oldest medication with the given
// normalized name, or nil when none exists.
func (db *ServiceDB) FindMedicationByNormalizedName(normalized string) (*Medication, error) {
	row := db.conn.QueryRow(`
		SELECT id, code, name, normalized_name, category, manufacturer, combination, strength, form,
		       purchase_price, selling_price, total_stock, available_stock
		FROM medications
		WHERE normalized_name = ?
		ORDER BY id ASC
		LIMIT 1`, normalized)

	m, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find medication by normalized name: %w", err)
	}
	return m, nil
}

// GetMedicationByID returns a medication by its primary key, or nil when absent.
func (db *ServiceDB) GetMedicationByID(id int64) (*Medication, error) {
	row := db.conn.QueryRow(`
		SELECT id, code, name, normalized_name, category, manufacturer, combination, strength, form,
		       purchase_price, selling_price, total_stock, available_stock
		FROM medications
		WHERE id = ?`, id)

	m, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medication %d: %w", id, err)
	}
	return m, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMedication(row rowScanner) (*Medication, error) {
	var m Medication
	var manufacturer, combination, strength, form sql.NullString
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.NormalizedName, &m.Category,
		&manufacturer, &combination, &strength, &form,
		&m.PurchasePrice, &m.SellingPrice, &m.TotalStock, &m.AvailableStock)
	if err != nil {
		return nil, err
	}
	m.Manufacturer = nullString(manufacturer)
	m.Combination = nullString(combination)
	m.Strength = nullString(strength)
	m.Form = nullString(form)
	return &m, nil
}

// ListMedications returns a page of medications with the total count.
// When search is non-empty it filters by name substring (case-insensitive)
// or exact category.
func (db *ServiceDB) ListMedications(search string, limit, offset int) ([]Medication, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []interface{}{}
	if search != "" {
		where = "WHERE name LIKE ? COLLATE NOCASE OR category = ?"
		args = append(args, "%"+search+"%", search)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM medications " + where
	if err := db.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count medications: %w", err)
	}

	query := `
		SELECT id, code, name, normalized_name, category, manufacturer, combination, strength, form,
		       purchase_price, selling_price, total_stock, available_stock
		FROM medications ` + where + `
		ORDER BY name ASC
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list medications: %w", err)
	}
	defer rows.Close()

	medications := []Medication{}
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan medication row: %w", err)
		}
		medications = append(medications, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate medications: %w", err)
	}

	return medications, total, nil
}

// ListMedicationNames returns id, name and normalized name for every
// medication. Used to preload the import resolution cache and to feed the
// duplicate report.
func (db *ServiceDB) ListMedicationNames() ([]Medication, error) {
	rows, err := db.conn.Query("SELECT id, name, normalized_name FROM medications ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list medication names: %w", err)
	}
	defer rows.Close()

	medications := []Medication{}
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.NormalizedName); err != nil {
			return nil, fmt.Errorf("failed to scan medication name row: %w", err)
		}
		medications = append(medications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medication names: %w", err)
	}

	return medications, nil
}

// UpdateMedicationPricing refreshes the prices a source row provided. A zero
// price means the cell was blank or unparseable and the stored value is kept.
func (db *ServiceDB) UpdateMedicationPricing(id int64, purchasePrice, sellingPrice float64) error {
	_, err := db.conn.Exec(`
		UPDATE medications
		SET purchase_price = CASE WHEN ? > 0 THEN ? ELSE purchase_price END,
		    selling_price = CASE WHEN ? > 0 THEN ? ELSE selling_price END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, purchasePrice, purchasePrice, sellingPrice, sellingPrice, id)
	if err != nil {
		return fmt.Errorf("failed to update pricing for medication %d: %w", id, err)
	}
	return nil
}

// UpdateMedication overwrites the editable fields of a medication.
func (db *ServiceDB) UpdateMedication(m *Medication) error {
	result, err := db.conn.Exec(`
		UPDATE medications
		SET name = ?, normalized_name = ?, category = ?, manufacturer = ?, combination = ?, strength = ?, form = ?,
		    purchase_price = ?, selling_price = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		m.Name, m.NormalizedName, m.Category, m.Manufacturer, m.Combination, m.Strength, m.Form,
		m.PurchasePrice, m.SellingPrice, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update medication %d: %w", m.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check medication update: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteMedication removes a medication and, via the FK cascade, its batches.
func (db *ServiceDB) DeleteMedication(id int64) error {
	result, err := db.conn.Exec("DELETE FROM medications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete medication %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check medication delete: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetMedicationStock returns the current total and available stock.
func (db *ServiceDB) GetMedicationStock(id int64) (total int, available int, err error) {
	err = db.conn.QueryRow("SELECT total_stock, available_stock FROM medications WHERE id = ?", id).
		Scan(&total, &available)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get stock for medication %d: %w", id, err)
	}
	return total, available, nil
}

// AddMedicationStock increments the stock counters by the given quantity.
func (db *ServiceDB) AddMedicationStock(id int64, quantity int) error {
	_, err := db.conn.Exec(`
		UPDATE medications
		SET total_stock = total_stock + ?, available_stock = available_stock + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, quantity, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to add stock for medication %d: %w", id, err)
	}
	return nil
}
