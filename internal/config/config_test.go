package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "daftar.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Asia/Tehran", cfg.Timezone)
	assert.Equal(t, time.Hour, cfg.WorkerInterval)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.RewardStreakBonus)
	assert.Equal(t, 10, cfg.RewardUnderLimit)
	assert.Equal(t, 5, cfg.RewardOverLimit)
	assert.False(t, cfg.AuthEnabled())
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("WORKER_INTERVAL", "15m")
	t.Setenv("REWARD_UNDER_LIMIT", "20")
	t.Setenv("REDIS_HOST", "cache")

	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.True(t, cfg.UsesPostgres())
	assert.Equal(t, 15*time.Minute, cfg.WorkerInterval)
	assert.Equal(t, 20, cfg.RewardUnderLimit)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daftar.yaml")
	yaml := "db_driver: memory\ntimezone: UTC\nreward_streak_bonus: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Run("File values apply", func(t *testing.T) {
		cfg, err := load(path)
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.DBDriver)
		assert.Equal(t, "UTC", cfg.Timezone)
		assert.Equal(t, 7, cfg.RewardStreakBonus)
	})

	t.Run("Environment wins over the file", func(t *testing.T) {
		t.Setenv("REWARD_STREAK_BONUS", "9")

		cfg, err := load(path)
		require.NoError(t, err)
		assert.Equal(t, 9, cfg.RewardStreakBonus)
	})

	t.Run("Fail: missing file", func(t *testing.T) {
		_, err := load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoad_Validation(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":        {"DB_DRIVER": "mysql"},
		"bad timezone":          {"TIMEZONE": "Mars/Olympus"},
		"hash without secret":   {"AUTH_PASSPHRASE_HASH": "$2a$10$abc"},
		"negative reward":       {"REWARD_OVER_LIMIT": "-1"},
		"non-positive interval": {"WORKER_INTERVAL": "0s"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := load("")
			assert.Error(t, err)
		})
	}
}
