package database

import (
	"database/sql"
	"fmt"
)

// BatchExists reports whether a batch with this number is already recorded
// for the medication.
func (db *ServiceDB) BatchExists(medicationID int64, batchNumber string) (bool, error) {
	var count int
	err := db.conn.QueryRow(
		"SELECT COUNT(*) FROM medication_batches WHERE medication_id = ? AND batch_number = ?",
		medicationID, batchNumber).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check batch %q: %w", batchNumber, err)
	}
	return count > 0, nil
}

// CreateBatch inserts a new medication batch and fills in its ID.
// The UNIQUE(medication_id, batch_number) constraint makes concurrent
// duplicate inserts fail here rather than silently double-count.
func (db *ServiceDB) CreateBatch(b *MedicationBatch) error {
	result, err := db.conn.Exec(`
		INSERT INTO medication_batches (medication_id, batch_number, received_quantity, current_quantity, expiry_date, purchase_price, selling_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.MedicationID, b.BatchNumber, b.ReceivedQuantity, b.CurrentQuantity,
		b.ExpiryDate, b.PurchasePrice, b.SellingPrice)
	if err != nil {
		return fmt.Errorf("failed to create batch %q: %w", b.BatchNumber, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get batch id: %w", err)
	}
	b.ID = id
	return nil
}

// GetBatchByID returns a batch by primary key, or nil when absent.
func (db *ServiceDB) GetBatchByID(id int64) (*MedicationBatch, error) {
	row := db.conn.QueryRow(`
		SELECT b.id, b.medication_id, m.name, b.batch_number, b.received_quantity, b.current_quantity,
		       b.expiry_date, b.purchase_price, b.selling_price
		FROM medication_batches b
		JOIN medications m ON m.id = b.medication_id
		WHERE b.id = ?`, id)

	var b MedicationBatch
	err := row.Scan(&b.ID, &b.MedicationID, &b.MedicationName, &b.BatchNumber,
		&b.ReceivedQuantity, &b.CurrentQuantity, &b.ExpiryDate, &b.PurchasePrice, &b.SellingPrice)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch %d: %w", id, err)
	}
	return &b, nil
}

// ListBatches returns a page of batches with the total count. medicationID
// filters to one medication when positive; expiringBefore filters by expiry
// date (ISO string compare) when non-empty.
func (db *ServiceDB) ListBatches(medicationID int64, expiringBefore string, limit, offset int) ([]MedicationBatch, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := "WHERE 1=1"
	args := []interface{}{}
	if medicationID > 0 {
		where += " AND b.medication_id = ?"
		args = append(args, medicationID)
	}
	if expiringBefore != "" {
		where += " AND b.expiry_date <= ?"
		args = append(args, expiringBefore)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM medication_batches b " + where
	if err := db.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count batches: %w", err)
	}

	query := `
		SELECT b.id, b.medication_id, m.name, b.batch_number, b.received_quantity, b.current_quantity,
		       b.expiry_date, b.purchase_price, b.selling_price
		FROM medication_batches b
		JOIN medications m ON m.id = b.medication_id ` + where + `
		ORDER BY b.expiry_date ASC, b.id ASC
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	batches := []MedicationBatch{}
	for rows.Next() {
		var b MedicationBatch
		if err := rows.Scan(&b.ID, &b.MedicationID, &b.MedicationName, &b.BatchNumber,
			&b.ReceivedQuantity, &b.CurrentQuantity, &b.ExpiryDate, &b.PurchasePrice, &b.SellingPrice); err != nil {
			return nil, 0, fmt.Errorf("failed to scan batch row: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate batches: %w", err)
	}

	return batches, total, nil
}

// DeleteBatch removes a batch without touching the medication stock counters.
func (db *ServiceDB) DeleteBatch(id int64) error {
	result, err := db.conn.Exec("DELETE FROM medication_batches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete batch %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check batch delete: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
