package http_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/daftar-app/daftar/internal/adapters/handler/http"
	"github.com/daftar-app/daftar/internal/adapters/repository"
	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/services"
)

// testToday is what the fixed clock below resolves to.
const testToday = "1403/01/13"

type testServer struct {
	router     *gin.Engine
	categories *services.CategoryService
	tokens     *services.TokenService
}

type serverOption func(*adapterHTTP.RouterDependencies, *services.TokenService)

func withAuth() serverOption {
	return func(deps *adapterHTTP.RouterDependencies, tokens *services.TokenService) {
		deps.TokenService = tokens
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	cal := calendar.New(time.UTC, calendar.WithClock(func() time.Time { return now }))

	taskRepo := repository.NewInMemoryTaskRepository()
	cigaretteRepo := repository.NewInMemoryCigaretteRepository()
	categoryRepo := repository.NewInMemoryCategoryRepository()

	rewards := services.NewRewardService(repository.NewInMemoryRewardRepository(), cal, services.DefaultRewardPoints())
	settings := services.NewSettingsService(repository.NewInMemorySettingsRepository())
	categories := services.NewCategoryService(categoryRepo)
	tasks := services.NewTaskService(taskRepo, categoryRepo, rewards, cal)
	cigarettes := services.NewCigaretteService(cigaretteRepo, settings, rewards, cal)
	reports := services.NewReportService(taskRepo, cigaretteRepo, rewards, cal)

	hash, err := services.HashPassphrase("open sesame")
	require.NoError(t, err)
	tokens := services.NewTokenService("test-secret", "daftar-test", time.Hour)

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(services.NewAuthService(hash, tokens)),
		TaskHandler:      adapterHTTP.NewTaskHandler(tasks, rewards, settings),
		CigaretteHandler: adapterHTTP.NewCigaretteHandler(cigarettes, cal),
		CategoryHandler:  adapterHTTP.NewCategoryHandler(categories),
		SettingsHandler:  adapterHTTP.NewSettingsHandler(settings),
		ReportHandler:    adapterHTTP.NewReportHandler(reports, rewards, cal),
		StartTime:        now,
	}
	for _, opt := range opts {
		opt(&deps, tokens)
	}

	return &testServer{
		router:     adapterHTTP.NewRouter(deps),
		categories: categories,
		tokens:     tokens,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, w.Code, w.Body.String())
}

