package domain

import (
	"context"
	"errors"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// TaskFilter narrows List results. Empty fields do not filter.
type TaskFilter struct {
	CategoryID string
	Status     string
	Date       string
	Priority   string
}

type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *Task) error

	// GetByID retrieves a live (non-deleted) task.
	GetByID(ctx context.Context, id string) (*Task, error)

	// List returns live tasks matching the stored columns of the filter.
	// Status filtering on "pending"/"overdue" depends on today and is left to the caller.
	List(ctx context.Context, filter TaskFilter) ([]*Task, error)

	// ListByDateRange returns live tasks scheduled within [start, end].
	ListByDateRange(ctx context.Context, start, end string) ([]*Task, error)

	// ListIncomplete returns every live task that is not completed.
	ListIncomplete(ctx context.Context) ([]*Task, error)

	// Update modifies an existing live task.
	Update(ctx context.Context, task *Task) error

	// Delete performs a soft delete.
	Delete(ctx context.Context, id string) error
}

type CigaretteRepository interface {
	// Create persists a new day-record. A live record for the same date
	// already existing yields ErrCigaretteExists.
	Create(ctx context.Context, c *Cigarette) error

	// GetByDate returns the live day-record for date, or ErrCigaretteNotFound.
	GetByDate(ctx context.Context, date string) (*Cigarette, error)

	// ListByDateRange returns live day-records within [start, end], ascending by date.
	ListByDateRange(ctx context.Context, start, end string) ([]*Cigarette, error)

	// Update stores c if its Version still matches the stored one and bumps
	// c.Version. A stale c yields ErrCigaretteConflict.
	Update(ctx context.Context, c *Cigarette) error

	// Delete soft-deletes the day-record for date.
	Delete(ctx context.Context, date string) error
}

var ErrCigaretteExists = errors.New("cigarette record already exists for this date")

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	// Get returns the row stored under key, or ErrSettingsNotFound.
	Get(ctx context.Context, key string) (*Settings, error)

	// Upsert creates or replaces the row stored under s.Key.
	Upsert(ctx context.Context, s *Settings) error
}

// RewardRepository is the append-only points ledger.
type RewardRepository interface {
	// Append stores a new entry. An entry whose DedupKey already exists
	// yields ErrRewardDuplicate and leaves the ledger unchanged.
	Append(ctx context.Context, r *Reward) error

	// ListByDateRange returns entries dated within [start, end].
	ListByDateRange(ctx context.Context, start, end string) ([]*Reward, error)

	// ListByTaskID returns every entry linked to a task.
	ListByTaskID(ctx context.Context, taskID string) ([]*Reward, error)
}
