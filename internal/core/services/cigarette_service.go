package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/domain"
)

const (
	// streakLookback bounds how far back SettleDay looks when measuring a streak.
	streakLookback = 365

	maxUpdateAttempts = 5
)

type CigaretteService struct {
	repo     domain.CigaretteRepository
	settings *SettingsService
	rewards  *RewardService
	cal      *calendar.Calendar

	// mu serializes read-modify-write cycles on day-records within this
	// process. The version check in the repository covers other writers.
	mu sync.Mutex
}

func NewCigaretteService(repo domain.CigaretteRepository, settings *SettingsService, rewards *RewardService, cal *calendar.Calendar) *CigaretteService {
	return &CigaretteService{
		repo:     repo,
		settings: settings,
		rewards:  rewards,
		cal:      cal,
	}
}

// getOrCreate returns the record for date, creating it lazily with the
// default limit from settings.
func (s *CigaretteService) getOrCreate(ctx context.Context, date string) (*domain.Cigarette, error) {
	rec, err := s.repo.GetByDate(ctx, date)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrCigaretteNotFound) {
		return nil, err
	}

	rec, err = domain.NewCigarette(date, s.settings.DefaultCigaretteLimit(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrCigaretteExists) {
			return s.repo.GetByDate(ctx, date)
		}
		return nil, fmt.Errorf("cigarette service: failed to create day-record: %w", err)
	}
	return rec, nil
}

func (s *CigaretteService) Today(ctx context.Context) (*domain.Cigarette, error) {
	return s.getOrCreate(ctx, s.cal.Today())
}

// mutate loads a record, applies change and stores it. On a version conflict
// the record is reloaded and change is applied again.
func (s *CigaretteService) mutate(
	ctx context.Context,
	load func(context.Context) (*domain.Cigarette, error),
	change func(*domain.Cigarette) error,
) (*domain.Cigarette, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; ; attempt++ {
		rec, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := change(rec); err != nil {
			return nil, err
		}

		err = s.repo.Update(ctx, rec)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, domain.ErrCigaretteConflict) || attempt == maxUpdateAttempts {
			return nil, err
		}
		log.Printf("[CIGARETTE] Version conflict on %s, retrying (%d/%d)", rec.Date, attempt, maxUpdateAttempts)
	}
}

func (s *CigaretteService) Add(ctx context.Context) (*domain.Cigarette, error) {
	at := s.cal.Now().UnixMilli()
	return s.mutate(ctx, s.Today, func(rec *domain.Cigarette) error {
		rec.Increment(at)
		return nil
	})
}

func (s *CigaretteService) loadTodayForRemoval(ctx context.Context) (*domain.Cigarette, error) {
	rec, err := s.repo.GetByDate(ctx, s.cal.Today())
	if errors.Is(err, domain.ErrCigaretteNotFound) {
		return nil, domain.ErrNothingToRemove
	}
	return rec, err
}

func (s *CigaretteService) Remove(ctx context.Context) (*domain.Cigarette, error) {
	return s.mutate(ctx, s.loadTodayForRemoval, func(rec *domain.Cigarette) error {
		return rec.Decrement()
	})
}

func (s *CigaretteService) SetDailyLimit(ctx context.Context, limit int) (*domain.Cigarette, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}
	return s.mutate(ctx, s.Today, func(rec *domain.Cigarette) error {
		return rec.SetLimit(limit)
	})
}

func (s *CigaretteService) GetByDate(ctx context.Context, date string) (*domain.Cigarette, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	return s.repo.GetByDate(ctx, date)
}

func (s *CigaretteService) ListRange(ctx context.Context, start, end string) ([]*domain.Cigarette, error) {
	if err := checkRange(s.cal, start, end); err != nil {
		return nil, err
	}
	return s.repo.ListByDateRange(ctx, start, end)
}

func (s *CigaretteService) Delete(ctx context.Context, date string) error {
	if err := checkDate(date); err != nil {
		return err
	}
	return s.repo.Delete(ctx, date)
}

// SettleResult reports what SettleDay credited.
type SettleResult struct {
	DayPoints   int
	Streak      int
	StreakBonus int
}

// SettleDay credits the binary limit reward for a finished day and, when the
// streak ending that day reaches a full week, the streak bonus. A day without
// a record earns nothing. Both credits are idempotent.
func (s *CigaretteService) SettleDay(ctx context.Context, date string) (SettleResult, error) {
	var res SettleResult

	if err := checkDate(date); err != nil {
		return res, err
	}

	rec, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, domain.ErrCigaretteNotFound) {
			return res, nil
		}
		return res, err
	}

	points := CalculateCigaretteReward(rec.Count, rec.DailyLimit, s.rewards.Points())
	switch _, err := s.rewards.Record(ctx, nil, points, date, domain.EventCigaretteDay); {
	case err == nil:
		res.DayPoints = points
	case !errors.Is(err, domain.ErrRewardDuplicate):
		return res, err
	}

	if !rec.WithinLimit() {
		return res, nil
	}

	from, _ := s.cal.AddDays(date, -streakLookback)
	records, err := s.repo.ListByDateRange(ctx, from, date)
	if err != nil {
		return res, err
	}

	byDate := make(map[string]*domain.Cigarette, len(records))
	for _, c := range records {
		byDate[c.Date] = c
	}
	res.Streak = cigaretteStreak(s.cal, byDate, date, from)

	if res.Streak == 0 || res.Streak%7 != 0 {
		return res, nil
	}

	bonus := CalculateStreakBonus(res.Streak, s.rewards.Points().StreakBonus)
	switch _, err := s.rewards.Record(ctx, nil, bonus, date, domain.EventStreakBonus); {
	case err == nil:
		res.StreakBonus = bonus
	case !errors.Is(err, domain.ErrRewardDuplicate):
		return res, err
	}
	return res, nil
}
