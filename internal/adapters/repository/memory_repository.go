package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/daftar-app/daftar/internal/core/domain"
)

// The in-memory repositories back DB_DRIVER=memory and the HTTP tests.
// Stored values are copied on the way in and out so callers cannot mutate
// shared state without going through Update.

type InMemoryTaskRepository struct {
	store map[string]domain.Task

	mu sync.RWMutex
}

func NewInMemoryTaskRepository() *InMemoryTaskRepository {
	return &InMemoryTaskRepository{
		store: make(map[string]domain.Task),
	}
}

func (r *InMemoryTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[task.ID] = *task
	return nil
}

func (r *InMemoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.store[id]
	if !ok || t.DeletedAt != nil {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (r *InMemoryTaskRepository) collect(match func(t *domain.Task) bool) []*domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Task{}
	for _, t := range r.store {
		t := t
		if t.DeletedAt == nil && match(&t) {
			out = append(out, &t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledDate != out[j].ScheduledDate {
			return out[i].ScheduledDate < out[j].ScheduledDate
		}
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

func (r *InMemoryTaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	return r.collect(func(t *domain.Task) bool {
		if filter.CategoryID != "" && (t.CategoryID == nil || *t.CategoryID != filter.CategoryID) {
			return false
		}
		if filter.Date != "" && t.ScheduledDate != filter.Date {
			return false
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			return false
		}
		if filter.Status != "" && t.Status != filter.Status {
			return false
		}
		return true
	}), nil
}

func (r *InMemoryTaskRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Task, error) {
	return r.collect(func(t *domain.Task) bool {
		return t.ScheduledDate >= start && t.ScheduledDate <= end
	}), nil
}

func (r *InMemoryTaskRepository) ListIncomplete(ctx context.Context) ([]*domain.Task, error) {
	return r.collect(func(t *domain.Task) bool {
		return !t.IsCompleted
	}), nil
}

func (r *InMemoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.store[task.ID]; !ok || t.DeletedAt != nil {
		return domain.ErrTaskNotFound
	}

	r.store[task.ID] = *task
	return nil
}

func (r *InMemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.store[id]
	if !ok || t.DeletedAt != nil {
		return domain.ErrTaskNotFound
	}

	t.SoftDelete()
	r.store[id] = t
	return nil
}

type InMemoryCigaretteRepository struct {
	store map[string]domain.Cigarette

	mu sync.RWMutex
}

func NewInMemoryCigaretteRepository() *InMemoryCigaretteRepository {
	return &InMemoryCigaretteRepository{
		store: make(map[string]domain.Cigarette),
	}
}

func cloneCigarette(c domain.Cigarette) *domain.Cigarette {
	c.Timestamps = append(domain.Timestamps{}, c.Timestamps...)
	return &c
}

func (r *InMemoryCigaretteRepository) Create(ctx context.Context, c *domain.Cigarette) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.store[c.Date]; ok && existing.DeletedAt == nil {
		return domain.ErrCigaretteExists
	}

	if c.Version == 0 {
		c.Version = 1
	}
	r.store[c.Date] = *cloneCigarette(*c)
	return nil
}

func (r *InMemoryCigaretteRepository) GetByDate(ctx context.Context, date string) (*domain.Cigarette, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store[date]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrCigaretteNotFound
	}
	return cloneCigarette(c), nil
}

func (r *InMemoryCigaretteRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Cigarette, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Cigarette{}
	for date, c := range r.store {
		if c.DeletedAt == nil && date >= start && date <= end {
			out = append(out, cloneCigarette(c))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func (r *InMemoryCigaretteRepository) Update(ctx context.Context, c *domain.Cigarette) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[c.Date]
	if !ok || existing.DeletedAt != nil || existing.ID != c.ID {
		return domain.ErrCigaretteNotFound
	}
	if existing.Version != c.Version {
		return domain.ErrCigaretteConflict
	}

	c.Version++
	r.store[c.Date] = *cloneCigarette(*c)
	return nil
}

func (r *InMemoryCigaretteRepository) Delete(ctx context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.store[date]
	if !ok || c.DeletedAt != nil {
		return domain.ErrCigaretteNotFound
	}

	now := domain.NowMillis()
	c.DeletedAt = &now
	c.UpdatedAt = now
	r.store[date] = c
	return nil
}

type InMemoryCategoryRepository struct {
	store map[string]domain.Category

	mu sync.RWMutex
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		store: make(map[string]domain.Category),
	}
}

func (r *InMemoryCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[c.ID] = *c
	return nil
}

func (r *InMemoryCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *InMemoryCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Category{}
	for _, c := range r.store {
		c := c
		if c.DeletedAt == nil {
			out = append(out, &c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].IsCustom != out[j].IsCustom {
			return !out[i].IsCustom
		}
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out, nil
}

func (r *InMemoryCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.store[c.ID]; !ok || existing.DeletedAt != nil {
		return domain.ErrCategoryNotFound
	}

	r.store[c.ID] = *c
	return nil
}

func (r *InMemoryCategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.store[id]
	if !ok || c.DeletedAt != nil {
		return domain.ErrCategoryNotFound
	}

	c.SoftDelete()
	r.store[id] = c
	return nil
}

type InMemorySettingsRepository struct {
	store map[string]domain.Settings

	mu sync.RWMutex
}

func NewInMemorySettingsRepository() *InMemorySettingsRepository {
	return &InMemorySettingsRepository{
		store: make(map[string]domain.Settings),
	}
}

func (r *InMemorySettingsRepository) Get(ctx context.Context, key string) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[key]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	return &s, nil
}

func (r *InMemorySettingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := *s
	if existing, ok := r.store[s.Key]; ok {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	}
	r.store[s.Key] = row
	return nil
}

type InMemoryRewardRepository struct {
	entries []domain.Reward
	keys    map[string]struct{}

	mu sync.RWMutex
}

func NewInMemoryRewardRepository() *InMemoryRewardRepository {
	return &InMemoryRewardRepository{
		keys: make(map[string]struct{}),
	}
}

func (r *InMemoryRewardRepository) Append(ctx context.Context, rw *domain.Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.keys[rw.DedupKey]; dup {
		return domain.ErrRewardDuplicate
	}

	r.keys[rw.DedupKey] = struct{}{}
	r.entries = append(r.entries, *rw)
	return nil
}

func (r *InMemoryRewardRepository) filter(match func(rw *domain.Reward) bool) []*domain.Reward {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Reward{}
	for i := range r.entries {
		rw := r.entries[i]
		if match(&rw) {
			out = append(out, &rw)
		}
	}
	return out
}

func (r *InMemoryRewardRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Reward, error) {
	return r.filter(func(rw *domain.Reward) bool {
		return rw.Date >= start && rw.Date <= end
	}), nil
}

func (r *InMemoryRewardRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.Reward, error) {
	return r.filter(func(rw *domain.Reward) bool {
		return rw.TaskID != nil && *rw.TaskID == taskID
	}), nil
}
