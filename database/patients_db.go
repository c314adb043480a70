package database

import (
	"database/sql"
	"fmt"
)

// CreatePatient inserts a new patient and fills in their ID.
func (db *ServiceDB) CreatePatient(p *Patient) error {
	result, err := db.conn.Exec(`
		INSERT INTO patients (code, name, normalized_name, gender, date_of_birth, phone, address, blood_group)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Code, p.Name, p.NormalizedName, p.Gender, p.DateOfBirth, p.Phone, p.Address, p.BloodGroup)
	if err != nil {
		return fmt.Errorf("failed to create patient %q: %w", p.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get patient id: %w", err)
	}
	p.ID = id
	return nil
}

// FindPatientByNormalizedName returns the oldest patient with the given
// normalized name, or nil when none exists.
func (db *ServiceDB) FindPatientByNormalizedName(normalized string) (*Patient, error) {
	row := db.conn.QueryRow(`
		SELECT id, code, name, normalized_name, gender, date_of_birth, phone, address, blood_group
		FROM patients
		WHERE normalized_name = ?
		ORDER BY id ASC
		LIMIT 1`, normalized)

	p, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find patient by normalized name: %w", err)
	}
	return p, nil
}

// GetPatientByID returns a patient by primary key, or nil when absent.
func (db *ServiceDB) GetPatientByID(id int64) (*Patient, error) {
	row := db.conn.QueryRow(`
		SELECT id, code, name, normalized_name, gender, date_of_birth, phone, address, blood_group
		FROM patients
		WHERE id = ?`, id)

	p, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient %d: %w", id, err)
	}
	return p, nil
}

func scanPatient(row rowScanner) (*Patient, error) {
	var p Patient
	var gender, dob, phone, address, bloodGroup sql.NullString
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.NormalizedName,
		&gender, &dob, &phone, &address, &bloodGroup)
	if err != nil {
		return nil, err
	}
	p.Gender = nullString(gender)
	p.DateOfBirth = nullString(dob)
	p.Phone = nullString(phone)
	p.Address = nullString(address)
	p.BloodGroup = nullString(bloodGroup)
	return &p, nil
}

// ListPatients returns a page of patients with the total count. When search
// is non-empty it filters by name substring (case-insensitive) or exact phone.
func (db *ServiceDB) ListPatients(search string, limit, offset int) ([]Patient, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []interface{}{}
	if search != "" {
		where = "WHERE name LIKE ? COLLATE NOCASE OR phone = ?"
		args = append(args, "%"+search+"%", search)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM patients " + where
	if err := db.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := `
		SELECT id, code, name, normalized_name, gender, date_of_birth, phone, address, blood_group
		FROM patients ` + where + `
		ORDER BY name ASC
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	patients := []Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient row: %w", err)
		}
		patients = append(patients, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate patients: %w", err)
	}

	return patients, total, nil
}

// UpdatePatientContact fills in demographic fields that are still empty.
// Existing values are never overwritten by an import.
func (db *ServiceDB) UpdatePatientContact(p *Patient) error {
	_, err := db.conn.Exec(`
		UPDATE patients
		SET gender = CASE WHEN IFNULL(gender, '') = '' THEN ? ELSE gender END,
		    date_of_birth = CASE WHEN IFNULL(date_of_birth, '') = '' THEN ? ELSE date_of_birth END,
		    phone = CASE WHEN IFNULL(phone, '') = '' THEN ? ELSE phone END,
		    address = CASE WHEN IFNULL(address, '') = '' THEN ? ELSE address END,
		    blood_group = CASE WHEN IFNULL(blood_group, '') = '' THEN ? ELSE blood_group END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Gender, p.DateOfBirth, p.Phone, p.Address, p.BloodGroup, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update patient %d: %w", p.ID, err)
	}
	return nil
}

// DeletePatient removes a patient record.
func (db *ServiceDB) DeletePatient(id int64) error {
	result, err := db.conn.Exec("DELETE FROM patients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete patient %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check patient delete: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
