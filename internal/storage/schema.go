package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// One JSON blob per profile key; the app only ever uses MainProfileKey.
		`CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS plays (
			id TEXT PRIMARY KEY,
			game TEXT NOT NULL,
			score INTEGER DEFAULT 0,
			moves INTEGER DEFAULT 0,
			xp_awarded INTEGER DEFAULT 0,
			duration_ms INTEGER DEFAULT 0,
			finished_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_plays_finished_at ON plays(finished_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
