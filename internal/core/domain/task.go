package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleEmpty    = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong  = errors.New("task title is too long (max 200 chars)")
	ErrTaskDescTooLong   = errors.New("task description is too long (max 1000 chars)")
	ErrInvalidPriority   = errors.New("invalid priority (must be low, medium, or high)")
	ErrInvalidPoints     = errors.New("reward and penalty points cannot be negative")
	ErrInvalidTaskTime   = errors.New("invalid time format (must be HH:MM 24h)")
	ErrInvalidTaskStatus = errors.New("invalid status (must be pending, completed, or overdue)")
)

var timeRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusOverdue   = "overdue"

	MaxTaskTitleLen = 200
	MaxTaskDescLen  = 1000
)

type Task struct {
	ID            string  `json:"id" db:"id"`
	Title         string  `json:"title" db:"title"`
	Description   string  `json:"description,omitempty" db:"description"`
	CategoryID    *string `json:"category_id,omitempty" db:"category_id"`
	ScheduledDate string  `json:"scheduled_date" db:"scheduled_date"`
	Deadline      *string `json:"deadline,omitempty" db:"deadline"`
	Time          *string `json:"time,omitempty" db:"scheduled_time"`
	IsCompleted   bool    `json:"is_completed" db:"is_completed"`
	Priority      string  `json:"priority" db:"priority"`
	RewardPoints  int     `json:"reward_points" db:"reward_points"`
	PenaltyPoints int     `json:"penalty_points" db:"penalty_points"`
	Status        string  `json:"status" db:"status"`
	CreatedAt     int64   `json:"created_at" db:"created_at"`
	UpdatedAt     int64   `json:"updated_at" db:"updated_at"`
	DeletedAt     *int64  `json:"deleted_at,omitempty" db:"deleted_at"`
}

// TaskInput carries the user-editable fields of a task. Date fields are
// validated against the calendar by the caller.
type TaskInput struct {
	Title         string
	Description   string
	CategoryID    *string
	ScheduledDate string
	Deadline      *string
	Time          *string
	Priority      string
	RewardPoints  int
	PenaltyPoints int
}

func NowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusOverdue:
		return true
	}
	return false
}

func validateTaskInput(in *TaskInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		return ErrTaskTitleEmpty
	}
	if len([]rune(in.Title)) > MaxTaskTitleLen {
		return ErrTaskTitleTooLong
	}
	if len([]rune(in.Description)) > MaxTaskDescLen {
		return ErrTaskDescTooLong
	}

	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !ValidPriority(in.Priority) {
		return ErrInvalidPriority
	}

	if in.RewardPoints < 0 || in.PenaltyPoints < 0 {
		return ErrInvalidPoints
	}

	if in.Time != nil && *in.Time != "" && !timeRegex.MatchString(*in.Time) {
		return ErrInvalidTaskTime
	}
	if in.Time != nil && *in.Time == "" {
		in.Time = nil
	}
	if in.CategoryID != nil && strings.TrimSpace(*in.CategoryID) == "" {
		in.CategoryID = nil
	}

	return nil
}

// DeriveStatus computes the status from completion and whether the scheduled
// date is already behind today.
func DeriveStatus(isCompleted, isPast bool) string {
	if isCompleted {
		return TaskStatusCompleted
	}
	if isPast {
		return TaskStatusOverdue
	}
	return TaskStatusPending
}

func NewTask(in TaskInput, isPast bool) (*Task, error) {
	if err := validateTaskInput(&in); err != nil {
		return nil, err
	}

	now := NowMillis()

	return &Task{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		ScheduledDate: in.ScheduledDate,
		Deadline:      in.Deadline,
		Time:          in.Time,
		Priority:      in.Priority,
		RewardPoints:  in.RewardPoints,
		PenaltyPoints: in.PenaltyPoints,
		Status:        DeriveStatus(false, isPast),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Update replaces the editable fields. isPast refers to the new scheduled date.
func (t *Task) Update(in TaskInput, isPast bool) error {
	if err := validateTaskInput(&in); err != nil {
		return err
	}

	t.Title = in.Title
	t.Description = in.Description
	t.CategoryID = in.CategoryID
	t.ScheduledDate = in.ScheduledDate
	t.Deadline = in.Deadline
	t.Time = in.Time
	t.Priority = in.Priority
	t.RewardPoints = in.RewardPoints
	t.PenaltyPoints = in.PenaltyPoints
	t.Status = DeriveStatus(t.IsCompleted, isPast)
	t.UpdatedAt = NowMillis()

	return nil
}

func (t *Task) Complete() {
	if t.IsCompleted {
		return
	}
	t.IsCompleted = true
	t.Status = TaskStatusCompleted
	t.UpdatedAt = NowMillis()
}

func (t *Task) Uncomplete(isPast bool) {
	if !t.IsCompleted {
		return
	}
	t.IsCompleted = false
	t.Status = DeriveStatus(false, isPast)
	t.UpdatedAt = NowMillis()
}

// RefreshStatus re-derives the status and reports whether it changed.
func (t *Task) RefreshStatus(isPast bool) bool {
	status := DeriveStatus(t.IsCompleted, isPast)
	if status == t.Status {
		return false
	}
	t.Status = status
	t.UpdatedAt = NowMillis()
	return true
}

func (t *Task) SoftDelete() {
	if t.DeletedAt != nil {
		return
	}
	now := NowMillis()
	t.DeletedAt = &now
	t.UpdatedAt = now
}
