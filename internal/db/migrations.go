package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
// Marketplace records live in memory; the database only backs the
// per-session key/value storage.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT     PRIMARY KEY,
		value      TEXT     NOT NULL,
		expires_at DATETIME,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_kv_expires_at ON kv (expires_at)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
