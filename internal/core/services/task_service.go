package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/domain"
)

type TaskService struct {
	repo       domain.TaskRepository
	categories domain.CategoryRepository
	rewards    *RewardService
	cal        *calendar.Calendar
}

func NewTaskService(repo domain.TaskRepository, categories domain.CategoryRepository, rewards *RewardService, cal *calendar.Calendar) *TaskService {
	return &TaskService{
		repo:       repo,
		categories: categories,
		rewards:    rewards,
		cal:        cal,
	}
}

// UpdateTaskInput is a partial update; nil fields keep their current value.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	CategoryID    *string
	ScheduledDate *string
	Deadline      *string
	Time          *string
	Priority      *string
	RewardPoints  *int
	PenaltyPoints *int
}

func mergePtr[T any](newVal *T, oldVal T) T {
	if newVal == nil {
		return oldVal
	}
	return *newVal
}

func (s *TaskService) checkInput(ctx context.Context, in domain.TaskInput) error {
	if err := checkDate(in.ScheduledDate); err != nil {
		return err
	}
	if err := checkOptionalDate(in.Deadline); err != nil {
		return err
	}
	if in.CategoryID != nil && *in.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

func (s *TaskService) isPast(date string) bool {
	past, err := s.cal.IsPast(date)
	return err == nil && past
}

func (s *TaskService) Create(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(input, s.isPast(input.ScheduledDate))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("task service: failed to create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := domain.TaskInput{
		Title:         mergePtr(input.Title, task.Title),
		Description:   mergePtr(input.Description, task.Description),
		CategoryID:    task.CategoryID,
		ScheduledDate: mergePtr(input.ScheduledDate, task.ScheduledDate),
		Deadline:      task.Deadline,
		Time:          task.Time,
		Priority:      mergePtr(input.Priority, task.Priority),
		RewardPoints:  mergePtr(input.RewardPoints, task.RewardPoints),
		PenaltyPoints: mergePtr(input.PenaltyPoints, task.PenaltyPoints),
	}
	if input.CategoryID != nil {
		merged.CategoryID = input.CategoryID
	}
	if input.Deadline != nil {
		merged.Deadline = input.Deadline
	}
	if input.Time != nil {
		merged.Time = input.Time
	}

	if err := s.checkInput(ctx, merged); err != nil {
		return nil, err
	}

	if err := task.Update(merged, s.isPast(merged.ScheduledDate)); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.GetByID(ctx, id)
}

// List applies the stored-column filters in the repository and the
// date-dependent status filter here, using the derived status.
func (s *TaskService) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	if filter.Date != "" {
		if err := checkDate(filter.Date); err != nil {
			return nil, err
		}
	}
	if filter.Status != "" && !domain.ValidTaskStatus(filter.Status) {
		return nil, domain.ErrInvalidTaskStatus
	}
	if filter.Priority != "" && !domain.ValidPriority(filter.Priority) {
		return nil, domain.ErrInvalidPriority
	}

	status := filter.Status
	filter.Status = ""

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return tasks, nil
	}

	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if domain.DeriveStatus(t.IsCompleted, s.isPast(t.ScheduledDate)) == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TaskService) ListByDate(ctx context.Context, date string) ([]*domain.Task, error) {
	return s.List(ctx, domain.TaskFilter{Date: date})
}

// Complete marks the task done and credits its reward once per day.
func (s *TaskService) Complete(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted {
		return task, nil
	}

	task.Complete()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	points := CalculateTaskReward(true, false, task.RewardPoints, task.PenaltyPoints)
	if _, err := s.rewards.Record(ctx, &task.ID, points, s.cal.Today(), domain.EventTaskCompleted); err != nil {
		if !errors.Is(err, domain.ErrRewardDuplicate) {
			return task, err
		}
	}
	return task, nil
}

func (s *TaskService) Uncomplete(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Uncomplete(s.isPast(task.ScheduledDate))
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// RefreshStatuses re-derives the stored status of every incomplete task and
// persists the ones that changed.
func (s *TaskService) RefreshStatuses(ctx context.Context) (int, error) {
	tasks, err := s.repo.ListIncomplete(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, t := range tasks {
		if !t.RefreshStatus(s.isPast(t.ScheduledDate)) {
			continue
		}
		if err := s.repo.Update(ctx, t); err != nil {
			log.Printf("[TASKS] Failed to refresh status of %s: %v", t.ID, err)
			continue
		}
		changed++
	}
	return changed, nil
}

// SettleOverdue records the penalty of every task scheduled on date that was
// left incomplete. Already settled tasks are skipped.
func (s *TaskService) SettleOverdue(ctx context.Context, date string) (int, error) {
	if err := checkDate(date); err != nil {
		return 0, err
	}
	if !s.isPast(date) {
		return 0, nil
	}

	tasks, err := s.repo.ListByDateRange(ctx, date, date)
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, t := range tasks {
		if t.IsCompleted || t.ScheduledDate != date {
			continue
		}

		points := CalculateTaskReward(false, true, t.RewardPoints, t.PenaltyPoints)
		_, err := s.rewards.Record(ctx, &t.ID, points, date, domain.EventTaskOverdue)
		switch {
		case errors.Is(err, domain.ErrRewardDuplicate):
			continue
		case err != nil:
			return settled, err
		}
		if points != 0 {
			settled++
		}
	}
	return settled, nil
}
