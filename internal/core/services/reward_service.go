package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/domain"
)

// RewardPoints holds the configured point magnitudes for non-task events.
type RewardPoints struct {
	StreakBonus         int
	UnderCigaretteLimit int
	OverCigaretteLimit  int
}

func DefaultRewardPoints() RewardPoints {
	return RewardPoints{
		StreakBonus:         5,
		UnderCigaretteLimit: 10,
		OverCigaretteLimit:  5,
	}
}

// CalculateTaskReward returns +rewardPoints for a completed task,
// -penaltyPoints for an overdue one and 0 otherwise.
func CalculateTaskReward(completed, isOverdue bool, rewardPoints, penaltyPoints int) int {
	if completed {
		return rewardPoints
	}
	if isOverdue {
		return -penaltyPoints
	}
	return 0
}

// CalculateStreakBonus pays bonusPerWeek for every full week of the streak.
func CalculateStreakBonus(streakDays, bonusPerWeek int) int {
	if streakDays < 7 {
		return 0
	}
	return bonusPerWeek * (streakDays / 7)
}

// CalculateCigaretteReward is binary: a fixed bonus when count <= limit,
// otherwise a fixed penalty, however far over the limit the day went.
func CalculateCigaretteReward(count, limit int, points RewardPoints) int {
	if count <= limit {
		return points.UnderCigaretteLimit
	}
	return -points.OverCigaretteLimit
}

type RewardService struct {
	repo   domain.RewardRepository
	cal    *calendar.Calendar
	points RewardPoints
}

func NewRewardService(repo domain.RewardRepository, cal *calendar.Calendar, points RewardPoints) *RewardService {
	return &RewardService{
		repo:   repo,
		cal:    cal,
		points: points,
	}
}

func (s *RewardService) Points() RewardPoints {
	return s.points
}

// CreateReward appends a manual ledger entry. Write failures are returned.
func (s *RewardService) CreateReward(ctx context.Context, taskID *string, points int, rewardType, date string) (*domain.Reward, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}

	reward, err := domain.NewReward(taskID, points, rewardType, date, domain.EventManual)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, reward); err != nil {
		return nil, fmt.Errorf("reward service: failed to append entry: %w", err)
	}
	return reward, nil
}

// Record credits a signed point delta for an event. The entry type follows
// the sign and zero deltas are not recorded. A second credit for the same
// event returns domain.ErrRewardDuplicate.
func (s *RewardService) Record(ctx context.Context, taskID *string, signedPoints int, date, event string) (*domain.Reward, error) {
	if signedPoints == 0 {
		return nil, nil
	}
	if err := checkDate(date); err != nil {
		return nil, err
	}

	rewardType := domain.RewardTypeReward
	if signedPoints < 0 {
		rewardType = domain.RewardTypePenalty
	}

	reward, err := domain.NewReward(taskID, signedPoints, rewardType, date, event)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, reward); err != nil {
		if errors.Is(err, domain.ErrRewardDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("reward service: failed to record %s: %w", event, err)
	}
	return reward, nil
}

func (s *RewardService) entries(ctx context.Context, start, end string) ([]*domain.Reward, error) {
	if err := checkRange(s.cal, start, end); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByDateRange(ctx, start, end)
	if err != nil {
		log.Printf("[POINTS] Ledger unavailable for %s..%s, reporting no activity: %v", start, end, err)
		return nil, nil
	}

	out := list[:0:0]
	for _, r := range list {
		if s.cal.Between(r.Date, start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetTotalPoints sums the ledger over [start, end]. The type tag decides the
// sign of each entry.
func (s *RewardService) GetTotalPoints(ctx context.Context, start, end string) (int, error) {
	list, err := s.entries(ctx, start, end)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, r := range list {
		total += r.Signed()
	}
	return total, nil
}

func (s *RewardService) GetPointsBreakdown(ctx context.Context, start, end string) (domain.PointsBreakdown, error) {
	list, err := s.entries(ctx, start, end)
	if err != nil {
		return domain.PointsBreakdown{}, err
	}

	var out domain.PointsBreakdown
	for _, r := range list {
		if r.Type == domain.RewardTypeReward {
			out.Rewards += r.Magnitude()
		} else {
			out.Penalties += r.Magnitude()
		}
	}
	out.Total = out.Rewards - out.Penalties
	return out, nil
}

func (s *RewardService) GetTodayPoints(ctx context.Context) int {
	today := s.cal.Today()
	total, _ := s.GetTotalPoints(ctx, today, today)
	return total
}

func (s *RewardService) GetMonthPoints(ctx context.Context) int {
	start, end := s.cal.CurrentMonthRange()
	total, _ := s.GetTotalPoints(ctx, start, end)
	return total
}

func (s *RewardService) ListByTask(ctx context.Context, taskID string) ([]*domain.Reward, error) {
	return s.repo.ListByTaskID(ctx, taskID)
}
