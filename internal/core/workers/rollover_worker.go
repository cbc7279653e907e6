package workers

import (
	"context"
	"log"
	"time"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/services"
)

// catchUpDays is how many finished days are re-enqueued at start, so days
// missed while the process was down still get settled.
const catchUpDays = 7

type TaskSettler interface {
	RefreshStatuses(ctx context.Context) (int, error)
	SettleOverdue(ctx context.Context, date string) (int, error)
}

type CigaretteSettler interface {
	SettleDay(ctx context.Context, date string) (services.SettleResult, error)
}

type RolloverJob struct {
	Date string
}

// RolloverWorker settles finished days in the background. Every ledger write
// it triggers is idempotent, so a day may be processed any number of times.
type RolloverWorker struct {
	tasks      TaskSettler
	cigarettes CigaretteSettler
	cal        *calendar.Calendar
	interval   time.Duration
	jobs       chan RolloverJob
}

func NewRolloverWorker(tasks TaskSettler, cigarettes CigaretteSettler, cal *calendar.Calendar, interval time.Duration) *RolloverWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RolloverWorker{
		tasks:      tasks,
		cigarettes: cigarettes,
		cal:        cal,
		interval:   interval,
		jobs:       make(chan RolloverJob, 100),
	}
}

func (w *RolloverWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Rollover worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] Rollover worker shutting down...")
				return
			}
		}
	}()

	go func() {
		w.enqueueRecent(catchUpDays)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.enqueueRecent(1)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// enqueueRecent queues the last n finished days, oldest first.
func (w *RolloverWorker) enqueueRecent(n int) {
	today := w.cal.Today()
	for i := n; i >= 1; i-- {
		date, err := w.cal.AddDays(today, -i)
		if err != nil {
			log.Printf("[WORKER] Cannot compute day %d before %s: %v", i, today, err)
			return
		}
		w.Enqueue(date)
	}
}

func (w *RolloverWorker) Enqueue(date string) {
	select {
	case w.jobs <- RolloverJob{Date: date}:
	default:
		log.Printf("[WORKER] Queue full! Dropping rollover job for %s", date)
	}
}

func (w *RolloverWorker) processJob(ctx context.Context, job RolloverJob) {
	if changed, err := w.tasks.RefreshStatuses(ctx); err != nil {
		log.Printf("[WORKER] Error refreshing task statuses: %v", err)
	} else if changed > 0 {
		log.Printf("[WORKER] %d task(s) changed status", changed)
	}

	if past, err := w.cal.IsPast(job.Date); err != nil || !past {
		log.Printf("[WORKER] Skipping %s: day is not finished", job.Date)
		return
	}

	settled, err := w.tasks.SettleOverdue(ctx, job.Date)
	if err != nil {
		log.Printf("[WORKER] Error settling overdue tasks for %s: %v", job.Date, err)
	} else if settled > 0 {
		log.Printf("[WORKER] Penalized %d overdue task(s) for %s", settled, job.Date)
	}

	res, err := w.cigarettes.SettleDay(ctx, job.Date)
	if err != nil {
		log.Printf("[WORKER] Error settling cigarette day %s: %v", job.Date, err)
		return
	}
	if res.DayPoints != 0 || res.StreakBonus != 0 {
		log.Printf("[WORKER] Cigarette day %s settled: points=%d streak=%d bonus=%d",
			job.Date, res.DayPoints, res.Streak, res.StreakBonus)
	}
}
