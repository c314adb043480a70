package database

import (
	"database/sql"
	"fmt"
)

// CreateImportRun records the start of an upload and fills in its ID.
func (db *ServiceDB) CreateImportRun(run *ImportRun) error {
	result, err := db.conn.Exec(
		"INSERT INTO import_runs (run_uuid, source, filename) VALUES (?, ?, ?)",
		run.RunUUID, run.Source, run.Filename)
	if err != nil {
		return fmt.Errorf("failed to create import run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get import run id: %w", err)
	}
	run.ID = id
	return nil
}

// FinishImportRun stores the final counters and the finish timestamp.
func (db *ServiceDB) FinishImportRun(run *ImportRun) error {
	_, err := db.conn.Exec(`
		UPDATE import_runs
		SET processed_count = ?, success_count = ?, error_count = ?, skipped_count = ?,
		    finished_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		run.ProcessedCount, run.SuccessCount, run.ErrorCount, run.SkippedCount, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish import run %d: %w", run.ID, err)
	}
	return nil
}

// ListImportRuns returns the most recent runs, newest first.
func (db *ServiceDB) ListImportRuns(limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT id, run_uuid, source, filename, processed_count, success_count, error_count, skipped_count,
		       started_at, IFNULL(finished_at, '')
		FROM import_runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	runs := []ImportRun{}
	for rows.Next() {
		var run ImportRun
		var filename sql.NullString
		if err := rows.Scan(&run.ID, &run.RunUUID, &run.Source, &filename,
			&run.ProcessedCount, &run.SuccessCount, &run.ErrorCount, &run.SkippedCount,
			&run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		run.Filename = nullString(filename)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import runs: %w", err)
	}

	return runs, nil
}
