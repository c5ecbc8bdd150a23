package state

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/starford/rollover/internal/apperr"
	"github.com/starford/rollover/internal/models"
)

// HasRollover reports whether notePath has already received a rollover.
func (db *DB) HasRollover(notePath string) (bool, error) {
	var one int
	err := db.conn.QueryRow(`SELECT 1 FROM rollovers WHERE note_path = ?`, notePath).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("state: has rollover: %w", err)
	}
	return true, nil
}

// RecordRollover stores the latest run for a note, replacing any earlier
// record for the same path.
func (db *DB) RecordRollover(r models.Rollover) error {
	_, err := db.conn.Exec(`
		INSERT INTO rollovers (note_path, source_path, todo_count, checksum, run_id, rolled_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(note_path) DO UPDATE SET
			source_path = excluded.source_path,
			todo_count  = excluded.todo_count,
			checksum    = excluded.checksum,
			run_id      = excluded.run_id,
			rolled_at   = excluded.rolled_at
	`, r.NotePath, r.SourcePath, r.TodoCount, r.Checksum, r.RunID, r.RolledAt.UTC())
	if err != nil {
		return fmt.Errorf("state: record rollover: %w", err)
	}
	return nil
}

// GetRollover returns the history record for notePath.
func (db *DB) GetRollover(notePath string) (*models.Rollover, error) {
	var r models.Rollover
	err := db.conn.QueryRow(`
		SELECT note_path, source_path, todo_count, checksum, run_id, rolled_at
		FROM rollovers WHERE note_path = ?
	`, notePath).Scan(&r.NotePath, &r.SourcePath, &r.TodoCount, &r.Checksum, &r.RunID, &r.RolledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("state: get rollover: %w", err)
	}
	return &r, nil
}

// ListRollovers returns the most recent rollovers first.
func (db *DB) ListRollovers(limit int) ([]models.Rollover, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT note_path, source_path, todo_count, checksum, run_id, rolled_at
		FROM rollovers
		ORDER BY rolled_at DESC, note_path DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("state: list rollovers: %w", err)
	}
	defer rows.Close()

	out := []models.Rollover{}
	for rows.Next() {
		var r models.Rollover
		if err := rows.Scan(&r.NotePath, &r.SourcePath, &r.TodoCount, &r.Checksum, &r.RunID, &r.RolledAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
