package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS chart_rows (
			id         TEXT PRIMARY KEY,
			parent_id  TEXT,
			label      TEXT NOT NULL DEFAULT '',
			height     INTEGER NOT NULL DEFAULT 0 CHECK(height >= 0),
			position   INTEGER NOT NULL DEFAULT 0,
			style      TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_rows_parent ON chart_rows(parent_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating chart_rows table: %w", err)
	}

	return nil
}
