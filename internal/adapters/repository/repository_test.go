package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/daftar-app/daftar/internal/adapters/database"
	"github.com/daftar-app/daftar/internal/core/domain"
)

type repoSet struct {
	tasks      domain.TaskRepository
	cigarettes domain.CigaretteRepository
	categories domain.CategoryRepository
	settings   domain.SettingsRepository
	rewards    domain.RewardRepository
	db         *sqlx.DB
}

func sqlRepos(db *sqlx.DB) repoSet {
	return repoSet{
		tasks:      NewSQLTaskRepository(db),
		cigarettes: NewSQLCigaretteRepository(db),
		categories: NewSQLCategoryRepository(db),
		settings:   NewSQLSettingsRepository(db),
		rewards:    NewSQLRewardRepository(db),
		db:         db,
	}
}

func setupSQLite(t *testing.T) repoSet {
	t.Helper()

	db, err := database.Open(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlRepos(db)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupPostgres(t *testing.T, driver string) repoSet {
	t.Helper()

	dsn := database.PostgresDSN(
		getEnv("DB_USER", "daftar_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "daftar_test"),
	)

	db, err := database.Open(context.Background(), database.Options{Driver: driver, DSN: dsn})
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("TRUNCATE TABLE tasks, cigarettes, categories, settings, rewards")
	require.NoError(t, err, "Failed to clean up database")

	return sqlRepos(db)
}

func setupMemory(t *testing.T) repoSet {
	return repoSet{
		tasks:      NewInMemoryTaskRepository(),
		cigarettes: NewInMemoryCigaretteRepository(),
		categories: NewInMemoryCategoryRepository(),
		settings:   NewInMemorySettingsRepository(),
		rewards:    NewInMemoryRewardRepository(),
	}
}

// forEachBackend runs the same contract against every implementation.
func forEachBackend(t *testing.T, fn func(t *testing.T, r repoSet)) {
	backends := []struct {
		name  string
		setup func(t *testing.T) repoSet
	}{
		{"memory", setupMemory},
		{"sqlite", setupSQLite},
		{"pgx", func(t *testing.T) repoSet { return setupPostgres(t, database.DriverPgx) }},
		{"pq", func(t *testing.T) repoSet { return setupPostgres(t, database.DriverPostgres) }},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.setup(t))
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}

func newTask(t *testing.T, title, date string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(domain.TaskInput{Title: title, ScheduledDate: date, RewardPoints: 10, PenaltyPoints: 5}, false)
	require.NoError(t, err)
	return task
}

func newDay(t *testing.T, date string, count int) *domain.Cigarette {
	t.Helper()
	c, err := domain.NewCigarette(date, 10)
	require.NoError(t, err)
	for i := 0; i < count; i++ {
		c.Increment(int64(1000 + i))
	}
	return c
}

func newEntry(t *testing.T, taskID *string, points int, date, event string) *domain.Reward {
	t.Helper()
	typ := domain.RewardTypeReward
	if points < 0 {
		typ = domain.RewardTypePenalty
	}
	r, err := domain.NewReward(taskID, points, typ, date, event)
	require.NoError(t, err)
	return r
}
