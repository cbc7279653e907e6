package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrRewardDuplicate   = errors.New("reward already recorded for this event")
	ErrInvalidRewardType = errors.New("invalid reward type (must be reward or penalty)")
)

const (
	RewardTypeReward  = "reward"
	RewardTypePenalty = "penalty"

	EventTaskCompleted = "task_completed"
	EventTaskOverdue   = "task_overdue"
	EventCigaretteDay  = "cigarette_day"
	EventStreakBonus   = "streak_bonus"
	EventManual        = "manual"
)

// Reward is one immutable ledger entry. Points hold the unsigned magnitude;
// Type alone decides whether the entry adds to or subtracts from a total.
type Reward struct {
	ID        string  `json:"id" db:"id"`
	TaskID    *string `json:"task_id,omitempty" db:"task_id"`
	Points    int     `json:"points" db:"points"`
	Type      string  `json:"type" db:"type"`
	Event     string  `json:"event" db:"event"`
	Date      string  `json:"date" db:"date"`
	DedupKey  string  `json:"-" db:"dedup_key"`
	CreatedAt int64   `json:"created_at" db:"created_at"`
	UpdatedAt int64   `json:"updated_at" db:"updated_at"`
}

// DedupKey identifies the event a ledger entry credits, so the same event
// cannot be credited twice.
func DedupKey(event string, taskID *string, date string) string {
	subject := "-"
	if taskID != nil && *taskID != "" {
		subject = *taskID
	}
	return strings.Join([]string{event, subject, date}, ":")
}

func NewReward(taskID *string, points int, rewardType, date, event string) (*Reward, error) {
	if rewardType != RewardTypeReward && rewardType != RewardTypePenalty {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRewardType, rewardType)
	}
	if points < 0 {
		points = -points
	}

	id := uuid.New().String()
	if event == "" {
		event = EventManual
	}

	key := DedupKey(event, taskID, date)
	if event == EventManual {
		key = EventManual + ":" + id
	}

	now := NowMillis()
	return &Reward{
		ID:        id,
		TaskID:    taskID,
		Points:    points,
		Type:      rewardType,
		Event:     event,
		Date:      date,
		DedupKey:  key,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Magnitude returns the unsigned points of the entry. Rows written before
// points were stored unsigned may still carry a sign.
func (r *Reward) Magnitude() int {
	if r.Points < 0 {
		return -r.Points
	}
	return r.Points
}

// Signed returns the contribution of the entry to a point total.
func (r *Reward) Signed() int {
	if r.Type == RewardTypePenalty {
		return -r.Magnitude()
	}
	return r.Magnitude()
}
