package database

import (
	"database/sql"
	"fmt"
)

// ListCategoryRules returns all rules ordered by priority. When activeOnly is
// set, inactive rules are filtered out.
func (db *ServiceDB) ListCategoryRules(activeOnly bool) ([]CategoryRule, error) {
	query := "SELECT id, priority, keyword, category, active FROM category_rules"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY priority ASC, id ASC"

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list category rules: %w", err)
	}
	defer rows.Close()

	rules := []CategoryRule{}
	for rows.Next() {
		var r CategoryRule
		var active int
		if err := rows.Scan(&r.ID, &r.Priority, &r.Keyword, &r.Category, &active); err != nil {
			return nil, fmt.Errorf("failed to scan category rule: %w", err)
		}
		r.Active = active != 0
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rules: %w", err)
	}

	return rules, nil
}

// CreateCategoryRule inserts a new rule and fills in its ID.
func (db *ServiceDB) CreateCategoryRule(r *CategoryRule) error {
	active := 0
	if r.Active {
		active = 1
	}

	result, err := db.conn.Exec(
		"INSERT INTO category_rules (priority, keyword, category, active) VALUES (?, ?, ?, ?)",
		r.Priority, r.Keyword, r.Category, active)
	if err != nil {
		return fmt.Errorf("failed to create category rule %q: %w", r.Keyword, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get category rule id: %w", err)
	}
	r.ID = id
	return nil
}

// UpdateCategoryRule overwrites an existing rule.
func (db *ServiceDB) UpdateCategoryRule(r *CategoryRule) error {
	active := 0
	if r.Active {
		active = 1
	}

	result, err := db.conn.Exec(
		"UPDATE category_rules SET priority = ?, keyword = ?, category = ?, active = ? WHERE id = ?",
		r.Priority, r.Keyword, r.Category, active, r.ID)
	if err != nil {
		return fmt.Errorf("failed to update category rule %d: %w", r.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check category rule update: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCategoryRule removes a rule.
func (db *ServiceDB) DeleteCategoryRule(id int64) error {
	result, err := db.conn.Exec("DELETE FROM category_rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category rule %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check category rule delete: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
