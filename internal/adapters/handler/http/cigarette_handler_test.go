package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daftar-app/daftar/internal/core/domain"
)

func TestCigaretteToday(t *testing.T) {
	s := newTestServer(t)

	t.Run("Today creates an empty record lazily", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/cigarettes/today", nil)
		expectStatus(t, w, http.StatusOK)

		rec := decode[domain.Cigarette](t, w)
		assert.Equal(t, testToday, rec.Date)
		assert.Equal(t, 0, rec.Count)
		assert.Equal(t, domain.DefaultCigaretteLimit, rec.DailyLimit)
	})

	t.Run("Add and remove keep timestamps in step", func(t *testing.T) {
		expectStatus(t, s.do(t, http.MethodPost, "/api/v1/cigarettes/today/add", nil), http.StatusOK)
		w := s.do(t, http.MethodPost, "/api/v1/cigarettes/today/add", nil)
		expectStatus(t, w, http.StatusOK)

		rec := decode[domain.Cigarette](t, w)
		assert.Equal(t, 2, rec.Count)
		assert.Len(t, rec.Timestamps, 2)

		w = s.do(t, http.MethodPost, "/api/v1/cigarettes/today/remove", nil)
		expectStatus(t, w, http.StatusOK)
		rec = decode[domain.Cigarette](t, w)
		assert.Equal(t, 1, rec.Count)
		assert.Len(t, rec.Timestamps, 1)
	})

	t.Run("Fail: Remove below zero", func(t *testing.T) {
		expectStatus(t, s.do(t, http.MethodPost, "/api/v1/cigarettes/today/remove", nil), http.StatusOK)
		w := s.do(t, http.MethodPost, "/api/v1/cigarettes/today/remove", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Set limit", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/cigarettes/today/limit", map[string]int{"limit": 5})
		expectStatus(t, w, http.StatusOK)
		assert.Equal(t, 5, decode[domain.Cigarette](t, w).DailyLimit)

		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/v1/cigarettes/today/limit", map[string]int{"limit": 0}).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/v1/cigarettes/today/limit", map[string]int{"limit": -3}).Code)
	})
}

func TestCigaretteRemoveWithoutRecord(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/cigarettes/today/remove", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCigaretteByDate(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(t, http.MethodPost, "/api/v1/cigarettes/today/add", nil), http.StatusOK)

	t.Run("Unpadded path segments", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/cigarettes/1403/1/13", nil)
		expectStatus(t, w, http.StatusOK)
		assert.Equal(t, 1, decode[domain.Cigarette](t, w).Count)
	})

	t.Run("Range defaults to the current month", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/cigarettes", nil)
		expectStatus(t, w, http.StatusOK)

		list := decode[[]domain.Cigarette](t, w)
		require.Len(t, list, 1)
		assert.Equal(t, testToday, list[0].Date)
	})

	t.Run("Fail: invalid path", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/cigarettes/1403/13/01", nil).Code)
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodDelete, "/api/v1/cigarettes/x/1/1", nil).Code)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/v1/cigarettes/1403/01/13", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/cigarettes/1403/01/13", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/v1/cigarettes/1403/01/13", nil).Code)
	})
}
