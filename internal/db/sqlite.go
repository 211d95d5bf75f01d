// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/gantt/internal/chart"
)

// SQLite implements chart.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ chart.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// ListRows returns every stored row ordered by parent, position and id.
func (s *SQLite) ListRows(ctx context.Context) ([]*chart.Row, error) {
	query := `
		SELECT id, parent_id, label, height, position, style
		FROM chart_rows
		ORDER BY COALESCE(parent_id, ''), position, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*chart.Row
	for rows.Next() {
		var (
			r        chart.Row
			parentID sql.NullString
			style    sql.NullString
		)
		if err := rows.Scan(&r.ID, &parentID, &r.Label, &r.Height, &r.Position, &style); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if parentID.Valid {
			r.ParentID = parentID.String
		}
		if style.Valid && style.String != "" {
			if err := json.Unmarshal([]byte(style.String), &r.Style); err != nil {
				return nil, fmt.Errorf("decoding style of row %q: %w", r.ID, err)
			}
		}
		out = append(out, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return out, nil
}

// SaveRow inserts a row or replaces the stored row with the same id.
func (s *SQLite) SaveRow(ctx context.Context, r *chart.Row) error {
	if err := r.Validate(); err != nil {
		return err
	}

	var style any
	if !r.Style.IsZero() {
		b, err := json.Marshal(r.Style)
		if err != nil {
			return fmt.Errorf("encoding style of row %q: %w", r.ID, err)
		}
		style = string(b)
	}

	var parentID any
	if r.ParentID != "" {
		parentID = r.ParentID
	}

	query := `
		INSERT INTO chart_rows (id, parent_id, label, height, position, style, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			parent_id = excluded.parent_id,
			label     = excluded.label,
			height    = excluded.height,
			position  = excluded.position,
			style     = excluded.style
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		parentID,
		r.Label,
		r.Height,
		r.Position,
		style,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving row %q: %w", r.ID, err)
	}

	return nil
}

// DeleteRow removes a row and moves its children up to its parent.
func (s *SQLite) DeleteRow(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var parentID sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT parent_id FROM chart_rows WHERE id = ?`, id).Scan(&parentID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %q", chart.ErrRowNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("querying row: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE chart_rows SET parent_id = ? WHERE parent_id = ?`, parentID, id); err != nil {
		return fmt.Errorf("reparenting children of %q: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chart_rows WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting row %q: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
