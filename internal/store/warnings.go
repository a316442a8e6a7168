package store

import (
	"context"
	"fmt"

	"posreport/internal/pipeline"
)

// AppendWarnings adds warnings to the run journal.
func (s *Store) AppendWarnings(ctx context.Context, warnings []pipeline.Warning) error {
	if len(warnings) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin warnings tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO warnings (file, row_num, col_name, raw_value, reason) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare warning insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range warnings {
		if _, err := stmt.ExecContext(ctx, w.File, w.Row, w.Column, w.Value, w.Reason); err != nil {
			return fmt.Errorf("insert warning: %w", err)
		}
	}
	return tx.Commit()
}

// ListWarnings returns the run's warnings in arrival order.
func (s *Store) ListWarnings(ctx context.Context) ([]pipeline.Warning, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT file, row_num, col_name, raw_value, reason FROM warnings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query warnings: %w", err)
	}
	defer rows.Close()

	var warnings []pipeline.Warning
	for rows.Next() {
		var w pipeline.Warning
		if err := rows.Scan(&w.File, &w.Row, &w.Column, &w.Value, &w.Reason); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		warnings = append(warnings, w)
	}
	return warnings, rows.Err()
}
