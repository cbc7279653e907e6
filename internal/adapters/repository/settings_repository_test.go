package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daftar-app/daftar/internal/core/domain"
)

func TestSettingsRepository(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r repoSet) {
		ctx := context.Background()

		_, err := r.settings.Get(ctx, domain.SettingsKey)
		assert.ErrorIs(t, err, domain.ErrSettingsNotFound)

		first := &domain.Settings{ID: "s1", Key: domain.SettingsKey, Value: `{"language":"fa"}`, CreatedAt: 1, UpdatedAt: 1}
		require.NoError(t, r.settings.Upsert(ctx, first))

		second := &domain.Settings{ID: "s2", Key: domain.SettingsKey, Value: `{"language":"en"}`, CreatedAt: 5, UpdatedAt: 5}
		require.NoError(t, r.settings.Upsert(ctx, second))

		got, err := r.settings.Get(ctx, domain.SettingsKey)
		require.NoError(t, err)
		assert.Equal(t, `{"language":"en"}`, got.Value)
		assert.Equal(t, "s1", got.ID, "upsert keeps the original row")
		assert.Equal(t, int64(1), got.CreatedAt)
		assert.Equal(t, int64(5), got.UpdatedAt)
	})
}
