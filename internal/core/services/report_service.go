package services

import (
	"context"
	"log"
	"math"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/domain"
)

// ReportService computes read-only statistics over inclusive date ranges.
// It holds no state besides the generation counter; store failures degrade
// to empty reports so dashboards render "no data" instead of failing.
type ReportService struct {
	taskRepo      domain.TaskRepository
	cigaretteRepo domain.CigaretteRepository
	rewards       *RewardService
	cal           *calendar.Calendar

	generation atomic.Uint64
}

func NewReportService(taskRepo domain.TaskRepository, cigaretteRepo domain.CigaretteRepository, rewards *RewardService, cal *calendar.Calendar) *ReportService {
	return &ReportService{
		taskRepo:      taskRepo,
		cigaretteRepo: cigaretteRepo,
		rewards:       rewards,
		cal:           cal,
	}
}

func (s *ReportService) tasksInRange(ctx context.Context, start, end string) ([]*domain.Task, error) {
	if err := checkRange(s.cal, start, end); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		log.Printf("[REPORT] Task store unavailable for %s..%s: %v", start, end, err)
		return nil, nil
	}

	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if s.cal.Between(t.ScheduledDate, start, end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *ReportService) cigarettesInRange(ctx context.Context, start, end string) ([]*domain.Cigarette, error) {
	if err := checkRange(s.cal, start, end); err != nil {
		return nil, err
	}

	records, err := s.cigaretteRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		log.Printf("[REPORT] Cigarette store unavailable for %s..%s: %v", start, end, err)
		return nil, nil
	}

	out := make([]*domain.Cigarette, 0, len(records))
	for _, c := range records {
		if s.cal.Between(c.Date, start, end) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out, nil
}

// before reports whether d is strictly earlier than ref. Both come from
// validated storage, so a parse failure counts as "not before".
func (s *ReportService) before(d, ref string) bool {
	cmp, err := s.cal.Compare(d, ref)
	return err == nil && cmp < 0
}

func (s *ReportService) GetTaskStats(ctx context.Context, start, end string) (domain.TaskStats, error) {
	tasks, err := s.tasksInRange(ctx, start, end)
	if err != nil {
		return domain.TaskStats{}, err
	}

	today := s.cal.Today()
	stats := domain.TaskStats{Total: len(tasks)}

	for _, t := range tasks {
		switch {
		case t.IsCompleted:
			stats.Completed++
		case s.before(t.ScheduledDate, today):
			stats.Overdue++
		default:
			stats.Pending++
		}
	}

	stats.CompletionRate = domain.Percent(stats.Completed, stats.Total)
	return stats, nil
}

func (s *ReportService) GetTaskStatsByCategory(ctx context.Context, start, end string) (map[string]domain.CategoryStats, error) {
	tasks, err := s.tasksInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.CategoryStats)
	for _, t := range tasks {
		key := domain.UncategorizedKey
		if t.CategoryID != nil && *t.CategoryID != "" {
			key = *t.CategoryID
		}

		cs := out[key]
		cs.Total++
		if t.IsCompleted {
			cs.Completed++
		}
		cs.CompletionRate = domain.Percent(cs.Completed, cs.Total)
		out[key] = cs
	}
	return out, nil
}

// GetDailyTaskCompletion returns one bucket for every calendar day in the
// range, including days without tasks.
func (s *ReportService) GetDailyTaskCompletion(ctx context.Context, start, end string) (domain.DailyTaskSeries, error) {
	tasks, err := s.tasksInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	days, err := s.cal.DateRange(start, end)
	if err != nil {
		return nil, err
	}

	series := make(domain.DailyTaskSeries, len(days))
	for _, d := range days {
		series[d] = domain.DayCompletion{}
	}

	for _, t := range tasks {
		bucket, ok := series[t.ScheduledDate]
		if !ok {
			continue
		}
		bucket.Total++
		if t.IsCompleted {
			bucket.Completed++
		}
		series[t.ScheduledDate] = bucket
	}
	return series, nil
}

// cigaretteStreak walks backwards from `from` and counts consecutive days
// that have a record within its limit. The walk never goes past stop.
func cigaretteStreak(cal *calendar.Calendar, byDate map[string]*domain.Cigarette, from, stop string) int {
	streak := 0
	day := from
	for {
		rec, ok := byDate[day]
		if !ok || !rec.WithinLimit() {
			break
		}
		streak++

		prev, err := cal.AddDays(day, -1)
		if err != nil {
			break
		}
		if cmp, err := cal.Compare(prev, stop); err != nil || cmp < 0 {
			break
		}
		day = prev
	}
	return streak
}

func (s *ReportService) GetCigaretteStats(ctx context.Context, start, end string) (domain.CigaretteStats, error) {
	records, err := s.cigarettesInRange(ctx, start, end)
	if err != nil {
		return domain.CigaretteStats{}, err
	}

	today := s.cal.Today()
	weekStart, _ := s.cal.AddDays(today, -6)
	monthStart, _ := s.cal.CurrentMonthRange()

	var stats domain.CigaretteStats
	if len(records) == 0 {
		return stats, nil
	}

	byDate := make(map[string]*domain.Cigarette, len(records))
	sum := 0
	stats.Min = math.MaxInt

	for _, c := range records {
		byDate[c.Date] = c

		sum += c.Count
		stats.Max = max(stats.Max, c.Count)
		stats.Min = min(stats.Min, c.Count)

		if s.cal.Between(c.Date, weekStart, today) {
			stats.Weekly += c.Count
		}
		if s.cal.Between(c.Date, monthStart, today) {
			stats.Monthly += c.Count
		}
	}

	stats.Average = int(math.Round(float64(sum) / float64(len(records))))

	if rec, ok := byDate[today]; ok {
		stats.Today = rec.Count
		stats.Percentage = rec.Percentage()
	}

	stats.Streak = cigaretteStreak(s.cal, byDate, today, start)
	return stats, nil
}

// GetCigaretteReports lists logged days only; a day with no record is
// absent from the result rather than reported as zero.
func (s *ReportService) GetCigaretteReports(ctx context.Context, start, end string) ([]domain.CigaretteReport, error) {
	records, err := s.cigarettesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CigaretteReport, 0, len(records))
	for _, c := range records {
		out = append(out, domain.CigaretteReport{
			Date:       c.Date,
			Count:      c.Count,
			Limit:      c.DailyLimit,
			Percentage: domain.Percent(c.Count, c.DailyLimit),
		})
	}
	return out, nil
}

func (s *ReportService) GetMonthlyCigaretteConsumption(ctx context.Context, year, month int) ([]domain.CigaretteReport, error) {
	start, end, err := s.cal.MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	return s.GetCigaretteReports(ctx, start, end)
}

// GetSummary bundles every report for one range. Generation increases with
// each call so clients can drop responses that arrive out of order.
func (s *ReportService) GetSummary(ctx context.Context, start, end string) (*domain.ReportSummary, error) {
	if err := checkRange(s.cal, start, end); err != nil {
		return nil, err
	}

	summary := &domain.ReportSummary{
		StartDate:  start,
		EndDate:    end,
		Generation: s.generation.Add(1),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.Tasks, err = s.GetTaskStats(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		summary.Categories, err = s.GetTaskStatsByCategory(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		summary.DailyTasks, err = s.GetDailyTaskCompletion(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		summary.Cigarettes, err = s.GetCigaretteStats(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		summary.CigaretteDays, err = s.GetCigaretteReports(gctx, start, end)
		return err
	})
	if s.rewards != nil {
		g.Go(func() (err error) {
			summary.Points, err = s.rewards.GetPointsBreakdown(gctx, start, end)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
