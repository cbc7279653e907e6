package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daftar-app/daftar/internal/core/domain"
)

type SQLSettingsRepository struct {
	db *sqlx.DB
}

func NewSQLSettingsRepository(db *sqlx.DB) *SQLSettingsRepository {
	return &SQLSettingsRepository{db: db}
}

func (r *SQLSettingsRepository) Get(ctx context.Context, key string) (*domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s domain.Settings
	query := r.db.Rebind(`SELECT id, key, value, created_at, updated_at FROM settings WHERE key = ?`)

	if err := r.db.GetContext(ctx, &s, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("repository: get settings failed: %w", err)
	}
	return &s, nil
}

// Upsert keeps the original id and created_at of an existing row.
func (r *SQLSettingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO settings (id, key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)

	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Key, s.Value, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("repository: upsert settings failed: %w", err)
	}
	return nil
}
