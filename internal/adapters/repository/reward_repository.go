package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daftar-app/daftar/internal/core/domain"
)

const rewardColumns = `id, task_id, points, type, event, date, dedup_key, created_at, updated_at`

// SQLRewardRepository is append-only: entries are never updated or deleted.
type SQLRewardRepository struct {
	db *sqlx.DB
}

func NewSQLRewardRepository(db *sqlx.DB) *SQLRewardRepository {
	return &SQLRewardRepository{db: db}
}

func (r *SQLRewardRepository) Append(ctx context.Context, rw *domain.Reward) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO rewards (` + rewardColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (dedup_key) DO NOTHING`)

	res, err := r.db.ExecContext(ctx, query,
		rw.ID, rw.TaskID, rw.Points, rw.Type, rw.Event, rw.Date, rw.DedupKey, rw.CreatedAt, rw.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRewardDuplicate
		}
		return fmt.Errorf("repository: append reward failed: %w", err)
	}
	return expectOneRow(res, domain.ErrRewardDuplicate)
}

func (r *SQLRewardRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Reward, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`SELECT ` + rewardColumns + ` FROM rewards
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC`)

	out := []*domain.Reward{}
	if err := r.db.SelectContext(ctx, &out, query, start, end); err != nil {
		return nil, fmt.Errorf("repository: list rewards failed: %w", err)
	}
	return out, nil
}

func (r *SQLRewardRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.Reward, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`SELECT ` + rewardColumns + ` FROM rewards WHERE task_id = ? ORDER BY created_at ASC`)

	out := []*domain.Reward{}
	if err := r.db.SelectContext(ctx, &out, query, taskID); err != nil {
		return nil, fmt.Errorf("repository: list rewards for task failed: %w", err)
	}
	return out, nil
}
