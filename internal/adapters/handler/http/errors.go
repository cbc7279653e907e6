package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftar-app/daftar/internal/adapters/handler/http/middleware"
	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/domain"
)

var errRangeTooLarge = errors.New("date range too large, max 366 days allowed")

var badRequestErrors = []error{
	calendar.ErrInvalidDateFormat,
	calendar.ErrInvalidMonth,
	domain.ErrInvalidRange,
	errRangeTooLarge,
	domain.ErrTaskTitleEmpty,
	domain.ErrTaskTitleTooLong,
	domain.ErrTaskDescTooLong,
	domain.ErrInvalidPriority,
	domain.ErrInvalidPoints,
	domain.ErrInvalidTaskTime,
	domain.ErrInvalidTaskStatus,
	domain.ErrInvalidLimit,
	domain.ErrNothingToRemove,
	domain.ErrCategoryNameEmpty,
	domain.ErrCategoryNameTooLong,
	domain.ErrInvalidColor,
	domain.ErrInvalidSettings,
	domain.ErrInvalidRewardType,
}

func isBadRequest(err error) bool {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrCigaretteNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrSettingsNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrCigaretteExists),
		errors.Is(err, domain.ErrCigaretteConflict),
		errors.Is(err, domain.ErrRewardDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case isBadRequest(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})

	default:
		subject, ok := middleware.GetSubject(c)
		if !ok {
			subject = "anonymous"
		}
		log.Printf("[ERROR] Request %s %s by %s failed: %v", c.Request.Method, c.Request.URL.Path, subject, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
