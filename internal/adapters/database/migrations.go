package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migration holds one schema step. Statements are kept separate because not
// every driver accepts several statements per Exec.
type migration struct {
	version    int
	statements []string
}

// The schema is written in the subset of SQL shared by SQLite and Postgres.
// Dates are zero-padded YYYY/MM/DD strings, so text order is calendar order.
var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS tasks (
				id             TEXT PRIMARY KEY,
				title          TEXT NOT NULL,
				description    TEXT NOT NULL DEFAULT '',
				category_id    TEXT,
				scheduled_date TEXT NOT NULL,
				deadline       TEXT,
				scheduled_time TEXT,
				is_completed   BOOLEAN NOT NULL DEFAULT FALSE,
				priority       TEXT NOT NULL DEFAULT 'medium',
				reward_points  INTEGER NOT NULL DEFAULT 0,
				penalty_points INTEGER NOT NULL DEFAULT 0,
				status         TEXT NOT NULL DEFAULT 'pending',
				created_at     BIGINT NOT NULL,
				updated_at     BIGINT NOT NULL,
				deleted_at     BIGINT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_scheduled_date ON tasks (scheduled_date)`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks (category_id)`,

			`CREATE TABLE IF NOT EXISTS cigarettes (
				id          TEXT PRIMARY KEY,
				date        TEXT NOT NULL,
				count       INTEGER NOT NULL DEFAULT 0,
				daily_limit INTEGER NOT NULL,
				timestamps  TEXT NOT NULL DEFAULT '[]',
				created_at  BIGINT NOT NULL,
				updated_at  BIGINT NOT NULL,
				deleted_at  BIGINT
			)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_cigarettes_live_date ON cigarettes (date) WHERE deleted_at IS NULL`,

			`CREATE TABLE IF NOT EXISTS categories (
				id         TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				color      TEXT NOT NULL,
				icon       TEXT,
				is_custom  BOOLEAN NOT NULL DEFAULT TRUE,
				created_at BIGINT NOT NULL,
				updated_at BIGINT NOT NULL,
				deleted_at BIGINT
			)`,

			`CREATE TABLE IF NOT EXISTS settings (
				id         TEXT PRIMARY KEY,
				key        TEXT NOT NULL UNIQUE,
				value      TEXT NOT NULL,
				created_at BIGINT NOT NULL,
				updated_at BIGINT NOT NULL
			)`,

			`CREATE TABLE IF NOT EXISTS rewards (
				id         TEXT PRIMARY KEY,
				task_id    TEXT,
				points     INTEGER NOT NULL,
				type       TEXT NOT NULL,
				event      TEXT NOT NULL,
				date       TEXT NOT NULL,
				dedup_key  TEXT NOT NULL UNIQUE,
				created_at BIGINT NOT NULL,
				updated_at BIGINT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_rewards_date ON rewards (date)`,
			`CREATE INDEX IF NOT EXISTS idx_rewards_task ON rewards (task_id)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`ALTER TABLE cigarettes ADD COLUMN version INTEGER NOT NULL DEFAULT 1`,
		},
	},
}

// Migrate applies every migration newer than the recorded schema version.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	current := 0
	if err := db.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_version`); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}
	return nil
}

func apply(ctx context.Context, db *sqlx.DB, m migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_version (version) VALUES (?)`), m.version); err != nil {
		return err
	}
	return tx.Commit()
}

// SchemaVersion reports the highest applied migration.
func SchemaVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	var v int
	err := db.GetContext(ctx, &v, `SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	return v, err
}
