package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is re-applied on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username      TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS focus_sessions (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		id           TEXT NOT NULL UNIQUE,
		username     TEXT NOT NULL,
		category     TEXT NOT NULL CHECK(category <> ''),
		start_epoch  INTEGER NOT NULL,
		end_epoch    INTEGER NOT NULL,
		duration_min INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_focus_sessions_user ON focus_sessions(username, seq)`,
	`CREATE INDEX IF NOT EXISTS idx_focus_sessions_start ON focus_sessions(username, start_epoch)`,

	`ALTER TABLE focus_sessions ADD COLUMN source TEXT NOT NULL DEFAULT 'live'`,
}
