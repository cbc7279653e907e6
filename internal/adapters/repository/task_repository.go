package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/daftar-app/daftar/internal/core/domain"
)

const taskColumns = `id, title, description, category_id, scheduled_date, deadline, scheduled_time,
	is_completed, priority, reward_points, penalty_points, status, created_at, updated_at, deleted_at`

type SQLTaskRepository struct {
	db *sqlx.DB
}

func NewSQLTaskRepository(db *sqlx.DB) *SQLTaskRepository {
	return &SQLTaskRepository{db: db}
}

func (r *SQLTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`)

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.CategoryID, t.ScheduledDate, t.Deadline, t.Time,
		t.IsCompleted, t.Priority, t.RewardPoints, t.PenaltyPoints, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: insert task failed: %w", err)
	}
	return nil
}

func (r *SQLTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var t domain.Task
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND deleted_at IS NULL`)

	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("repository: get task failed: %w", err)
	}
	return &t, nil
}

func (r *SQLTaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	conditions := []string{"deleted_at IS NULL"}
	var args []interface{}

	if filter.CategoryID != "" {
		conditions = append(conditions, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.Date != "" {
		conditions = append(conditions, "scheduled_date = ?")
		args = append(args, filter.Date)
	}
	if filter.Priority != "" {
		conditions = append(conditions, "priority = ?")
		args = append(args, filter.Priority)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY scheduled_date ASC, created_at ASC`

	return r.selectTasks(ctx, query, args...)
}

func (r *SQLTaskRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE deleted_at IS NULL AND scheduled_date >= ? AND scheduled_date <= ?
		ORDER BY scheduled_date ASC, created_at ASC`

	return r.selectTasks(ctx, query, start, end)
}

func (r *SQLTaskRepository) ListIncomplete(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE deleted_at IS NULL AND is_completed = ?
		ORDER BY scheduled_date ASC`

	return r.selectTasks(ctx, query, false)
}

func (r *SQLTaskRepository) selectTasks(ctx context.Context, query string, args ...interface{}) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tasks := []*domain.Task{}
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("repository: list tasks failed: %w", err)
	}
	return tasks, nil
}

func (r *SQLTaskRepository) Update(ctx context.Context, t *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.db.Rebind(`
		UPDATE tasks SET
			title = ?, description = ?, category_id = ?, scheduled_date = ?, deadline = ?,
			scheduled_time = ?, is_completed = ?, priority = ?, reward_points = ?,
			penalty_points = ?, status = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, t.CategoryID, t.ScheduledDate, t.Deadline,
		t.Time, t.IsCompleted, t.Priority, t.RewardPoints,
		t.PenaltyPoints, t.Status, t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("repository: update task failed: %w", err)
	}
	return expectOneRow(res, domain.ErrTaskNotFound)
}

func (r *SQLTaskRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := domain.NowMillis()
	query := r.db.Rebind(`UPDATE tasks SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("repository: delete task failed: %w", err)
	}
	return expectOneRow(res, domain.ErrTaskNotFound)
}

func expectOneRow(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
