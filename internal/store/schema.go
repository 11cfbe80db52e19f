package store

import (
	"context"
	"fmt"
)

// migrations are applied in order; each entry is one schema version.
var migrations = []string{
	// Migration 1: initial schema
	`CREATE TABLE IF NOT EXISTS users (
		user_id    TEXT PRIMARY KEY,
		email      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS alerts (
		alert_id       TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		asset_id       TEXT NOT NULL,
		target_price   NUMERIC NOT NULL,
		condition      TEXT NOT NULL CHECK (condition IN ('above', 'below')),
		channel        TEXT NOT NULL CHECK (channel IN ('email', 'sms')),
		creation_price NUMERIC NOT NULL DEFAULT 0,
		active         BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		triggered_at   TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS idx_alerts_active ON alerts(active) WHERE active;
	CREATE INDEX IF NOT EXISTS idx_alerts_user ON alerts(user_id);`,
}

// EnsureSchema applies pending schema migrations.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	var currentVersion int
	row := db.conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("check migration version: %w", err)
	}

	for i := currentVersion; i < len(migrations); i++ {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", i+1, err)
		}

		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("run migration %d: %w", i+1, err)
		}

		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", i+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
