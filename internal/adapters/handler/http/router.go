package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/daftar-app/daftar/internal/adapters/handler/http/middleware"
	"github.com/daftar-app/daftar/internal/core/services"
)

type RouterDependencies struct {
	AuthHandler      *AuthHandler
	TaskHandler      *TaskHandler
	CigaretteHandler *CigaretteHandler
	CategoryHandler  *CategoryHandler
	SettingsHandler  *SettingsHandler
	ReportHandler    *ReportHandler

	// TokenService guards /api/v1 when set. Nil leaves the API open.
	TokenService *services.TokenService

	DB        *sqlx.DB
	Redis     *redis.Client
	RateLimit middleware.RateLimit

	AllowedOrigins []string
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if len(deps.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	if deps.Redis != nil && deps.RateLimit.Limit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit))
	}

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "memory"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(apiV1)
	}

	protected := apiV1.Group("")
	if deps.TokenService != nil {
		protected.Use(middleware.AuthMiddleware(deps.TokenService))
	}
	{
		deps.TaskHandler.RegisterRoutes(protected)
		deps.CigaretteHandler.RegisterRoutes(protected)
		deps.CategoryHandler.RegisterRoutes(protected)
		deps.SettingsHandler.RegisterRoutes(protected)
		deps.ReportHandler.RegisterRoutes(protected)
	}

	return router
}
