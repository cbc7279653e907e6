package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daftar-app/daftar/internal/core/domain"
)

const cigaretteColumns = `id, date, count, daily_limit, timestamps, version, created_at, updated_at, deleted_at`

type SQLCigaretteRepository struct {
	db *sqlx.DB
}

func NewSQLCigaretteRepository(db *sqlx.DB) *SQLCigaretteRepository {
	return &SQLCigaretteRepository{db: db}
}

func (r *SQLCigaretteRepository) Create(ctx context.Context, c *domain.Cigarette) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO cigarettes (` + cigaretteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)`)

	if c.Version == 0 {
		c.Version = 1
	}

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Date, c.Count, c.DailyLimit, c.Timestamps, c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCigaretteExists
		}
		return fmt.Errorf("repository: insert cigarette day failed: %w", err)
	}
	return nil
}

func (r *SQLCigaretteRepository) GetByDate(ctx context.Context, date string) (*domain.Cigarette, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c domain.Cigarette
	query := r.db.Rebind(`SELECT ` + cigaretteColumns + ` FROM cigarettes WHERE date = ? AND deleted_at IS NULL`)

	if err := r.db.GetContext(ctx, &c, query, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCigaretteNotFound
		}
		return nil, fmt.Errorf("repository: get cigarette day failed: %w", err)
	}
	return &c, nil
}

func (r *SQLCigaretteRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Cigarette, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`SELECT ` + cigaretteColumns + ` FROM cigarettes
		WHERE deleted_at IS NULL AND date >= ? AND date <= ?
		ORDER BY date ASC`)

	out := []*domain.Cigarette{}
	if err := r.db.SelectContext(ctx, &out, query, start, end); err != nil {
		return nil, fmt.Errorf("repository: list cigarette days failed: %w", err)
	}
	return out, nil
}

func (r *SQLCigaretteRepository) Update(ctx context.Context, c *domain.Cigarette) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("repository: refusing inconsistent day-record: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	c.Version++

	query := r.db.Rebind(`
		UPDATE cigarettes SET count = ?, daily_limit = ?, timestamps = ?, version = ?, updated_at = ?
		WHERE id = ?
		  AND version = ?
		  AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query,
		c.Count, c.DailyLimit, c.Timestamps, c.Version, c.UpdatedAt, c.ID, c.Version-1,
	)
	if err != nil {
		return fmt.Errorf("repository: update cigarette day failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: update cigarette day failed: %w", err)
	}
	if rows == 0 {
		if !r.exists(ctx, c.ID) {
			return domain.ErrCigaretteNotFound
		}
		return domain.ErrCigaretteConflict
	}
	return nil
}

func (r *SQLCigaretteRepository) exists(ctx context.Context, id string) bool {
	var n int
	query := r.db.Rebind(`SELECT COUNT(*) FROM cigarettes WHERE id = ? AND deleted_at IS NULL`)
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		return false
	}
	return n > 0
}

func (r *SQLCigaretteRepository) Delete(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := domain.NowMillis()
	query := r.db.Rebind(`UPDATE cigarettes SET deleted_at = ?, updated_at = ? WHERE date = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query, now, now, date)
	if err != nil {
		return fmt.Errorf("repository: delete cigarette day failed: %w", err)
	}
	return expectOneRow(res, domain.ErrCigaretteNotFound)
}
