package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/domain"
)

// testCalendar is pinned to 13 Farvardin 1403.
func testCalendar() *calendar.Calendar {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	return calendar.New(time.UTC, calendar.WithClock(func() time.Time { return now }))
}

const testToday = "1403/01/13"

func ptr[T any](v T) *T {
	return &v
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Task, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListIncomplete(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCigaretteRepository struct {
	mock.Mock
}

func (m *MockCigaretteRepository) Create(ctx context.Context, c *domain.Cigarette) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCigaretteRepository) GetByDate(ctx context.Context, date string) (*domain.Cigarette, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cigarette), args.Error(1)
}

func (m *MockCigaretteRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Cigarette, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Cigarette), args.Error(1)
}

func (m *MockCigaretteRepository) Update(ctx context.Context, c *domain.Cigarette) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCigaretteRepository) Delete(ctx context.Context, date string) error {
	return m.Called(ctx, date).Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (*domain.Settings, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, s *domain.Settings) error {
	return m.Called(ctx, s).Error(0)
}

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) Append(ctx context.Context, r *domain.Reward) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRewardRepository) ListByDateRange(ctx context.Context, start, end string) ([]*domain.Reward, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reward), args.Error(1)
}

func (m *MockRewardRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.Reward, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reward), args.Error(1)
}
