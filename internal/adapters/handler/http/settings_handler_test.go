package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daftar-app/daftar/internal/core/domain"
)

func TestSettingsHandler(t *testing.T) {
	s := newTestServer(t)

	t.Run("Defaults before first save", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/settings", nil)
		expectStatus(t, w, http.StatusOK)
		assert.Equal(t, domain.DefaultSettings(), decode[domain.AppSettings](t, w))
	})

	t.Run("Patch merges into stored settings", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/settings", `{"display":{"theme":"light"},"default_cigarette_limit":6}`)
		expectStatus(t, w, http.StatusOK)

		got := decode[domain.AppSettings](t, s.do(t, http.MethodGet, "/api/v1/settings", nil))
		assert.Equal(t, domain.ThemeLight, got.Display.Theme)
		assert.Equal(t, 6, got.DefaultCigaretteLimit)
		assert.Equal(t, "fa", got.Language)
	})

	t.Run("New day-records use the configured limit", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/cigarettes/today", nil)
		expectStatus(t, w, http.StatusOK)
		assert.Equal(t, 6, decode[domain.Cigarette](t, w).DailyLimit)
	})

	t.Run("Fail: 400 Invalid Settings", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/settings", `{"display":{"theme":"neon"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		got := decode[domain.AppSettings](t, s.do(t, http.MethodGet, "/api/v1/settings", nil))
		assert.Equal(t, domain.ThemeLight, got.Display.Theme)
	})
}
