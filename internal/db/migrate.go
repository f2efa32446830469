package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Migrate runs all schema migrations.
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
	if err := migrateSeedInstance(db); err != nil {
		return fmt.Errorf("seeding client instance: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS client_state (
		key        TEXT PRIMARY KEY
		           CHECK(key IN ('content','preferences','user')),
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS client_instance (
		id          TEXT PRIMARY KEY DEFAULT 'default' CHECK(id = 'default'),
		instance_id TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	// Track which server the persisted state came from.
	`ALTER TABLE client_instance ADD COLUMN api_url TEXT NOT NULL DEFAULT ''`,
}

// migrateSeedInstance gives a fresh database its client instance id.
// Idempotent: an existing id is kept.
func migrateSeedInstance(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO client_instance (id, instance_id, created_at) VALUES ('default', ?, ?)`,
		uuid.NewString(), time.Now().UTC().Format(time.RFC3339))
	return err
}
