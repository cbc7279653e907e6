package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/daftar-app/daftar/internal/adapters/cache"
	"github.com/daftar-app/daftar/internal/adapters/database"
	adapterHTTP "github.com/daftar-app/daftar/internal/adapters/handler/http"
	"github.com/daftar-app/daftar/internal/adapters/handler/http/middleware"
	"github.com/daftar-app/daftar/internal/adapters/repository"
	"github.com/daftar-app/daftar/internal/config"
	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/domain"
	"github.com/daftar-app/daftar/internal/core/services"
	"github.com/daftar-app/daftar/internal/core/workers"
)

const tokenIssuer = "daftar"

type repositories struct {
	tasks      domain.TaskRepository
	cigarettes domain.CigaretteRepository
	categories domain.CategoryRepository
	settings   domain.SettingsRepository
	rewards    domain.RewardRepository
}

// app holds the wired components of one running server.
type app struct {
	router *gin.Engine
	worker *workers.RolloverWorker
	db     *sqlx.DB
	redis  *redis.Client
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, *sqlx.DB, error) {
	if cfg.DBDriver == "memory" {
		log.Println("[DB] Using in-memory store, data will not survive a restart")
		return repositories{
			tasks:      repository.NewInMemoryTaskRepository(),
			cigarettes: repository.NewInMemoryCigaretteRepository(),
			categories: repository.NewInMemoryCategoryRepository(),
			settings:   repository.NewInMemorySettingsRepository(),
			rewards:    repository.NewInMemoryRewardRepository(),
		}, nil, nil
	}

	opts := database.Options{Driver: cfg.DBDriver, Path: cfg.DBPath}
	if cfg.UsesPostgres() {
		opts.DSN = database.PostgresDSN(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}

	db, err := database.Open(ctx, opts)
	if err != nil {
		return repositories{}, nil, err
	}

	return repositories{
		tasks:      repository.NewSQLTaskRepository(db),
		cigarettes: repository.NewSQLCigaretteRepository(db),
		categories: repository.NewSQLCategoryRepository(db),
		settings:   repository.NewSQLSettingsRepository(db),
		rewards:    repository.NewSQLRewardRepository(db),
	}, db, nil
}

func connectRedis(cfg *config.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		log.Println("[CACHE] REDIS_HOST not set, cache and rate limiting disabled")
		return nil
	}

	rdb, err := cache.NewRedisClient(cache.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Printf("[CACHE] Redis unavailable, continuing without it: %v", err)
		return nil
	}

	log.Println("[CACHE] Redis connected.")
	return rdb
}

func newApp(ctx context.Context, cfg *config.Config, cal *calendar.Calendar) (*app, error) {
	repos, db, err := openRepositories(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	rdb := connectRedis(cfg)
	if rdb != nil {
		repos.categories = repository.NewCachedCategoryRepository(
			repos.categories,
			cache.NewJSONCache(rdb, "daftar:categories", cfg.CacheTTL),
		)
	}

	rewardService := services.NewRewardService(repos.rewards, cal, services.RewardPoints{
		StreakBonus:         cfg.RewardStreakBonus,
		UnderCigaretteLimit: cfg.RewardUnderLimit,
		OverCigaretteLimit:  cfg.RewardOverLimit,
	})
	settingsService := services.NewSettingsService(repos.settings)
	categoryService := services.NewCategoryService(repos.categories)
	taskService := services.NewTaskService(repos.tasks, repos.categories, rewardService, cal)
	cigaretteService := services.NewCigaretteService(repos.cigarettes, settingsService, rewardService, cal)
	reportService := services.NewReportService(repos.tasks, repos.cigarettes, rewardService, cal)

	if err := settingsService.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initializing settings: %w", err)
	}
	if _, err := categoryService.InitializeDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seeding categories: %w", err)
	}

	var tokenService *services.TokenService
	if cfg.AuthEnabled() {
		tokenService = services.NewTokenService(cfg.AuthSecret, tokenIssuer, cfg.AuthTokenTTL)
	} else {
		log.Println("[AUTH] AUTH_PASSPHRASE_HASH not set, API is open")
	}
	authService := services.NewAuthService(cfg.AuthPassphraseHash, tokenService)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService),
		TaskHandler:      adapterHTTP.NewTaskHandler(taskService, rewardService, settingsService),
		CigaretteHandler: adapterHTTP.NewCigaretteHandler(cigaretteService, cal),
		CategoryHandler:  adapterHTTP.NewCategoryHandler(categoryService),
		SettingsHandler:  adapterHTTP.NewSettingsHandler(settingsService),
		ReportHandler:    adapterHTTP.NewReportHandler(reportService, rewardService, cal),
		TokenService:     tokenService,
		DB:               db,
		Redis:            rdb,
		RateLimit: middleware.RateLimit{
			Limit:     cfg.RateLimit,
			Window:    cfg.RateLimitWindow,
			KeyPrefix: "daftar:rate_limit",
		},
		AllowedOrigins: cfg.CORSOrigins,
		StartTime:      time.Now(),
	})

	return &app{
		router: router,
		worker: workers.NewRolloverWorker(taskService, cigaretteService, cal, cfg.WorkerInterval),
		db:     db,
		redis:  rdb,
	}, nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("[CACHE] Error closing redis: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("[DB] Error closing database: %v", err)
		}
	}
}
