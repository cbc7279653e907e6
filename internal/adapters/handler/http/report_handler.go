package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/services"
)

type ReportHandler struct {
	reports *services.ReportService
	rewards *services.RewardService
	cal     *calendar.Calendar
}

func NewReportHandler(reports *services.ReportService, rewards *services.RewardService, cal *calendar.Calendar) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		rewards: rewards,
		cal:     cal,
	}
}

type pointsResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Total     int    `json:"total"`
	Today     int    `json:"today"`
	Month     int    `json:"month"`
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.GET("/tasks", rangeEndpoint(h.cal, h.reports.GetTaskStats))
		reports.GET("/tasks/categories", rangeEndpoint(h.cal, h.reports.GetTaskStatsByCategory))
		reports.GET("/tasks/daily", rangeEndpoint(h.cal, h.reports.GetDailyTaskCompletion))
		reports.GET("/cigarettes", rangeEndpoint(h.cal, h.reports.GetCigaretteStats))
		reports.GET("/cigarettes/daily", rangeEndpoint(h.cal, h.reports.GetCigaretteReports))
		reports.GET("/cigarettes/monthly/:year/:month", h.MonthlyCigarettes)
		reports.GET("/summary", rangeEndpoint(h.cal, h.reports.GetSummary))
	}

	router.GET("/points", h.Points)
	router.GET("/points/breakdown", rangeEndpoint(h.cal, h.rewards.GetPointsBreakdown))
}

// rangeEndpoint serves a report computed over the start/end query range.
func rangeEndpoint[T any](cal *calendar.Calendar, report func(ctx context.Context, start, end string) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, err := readRange(c, cal)
		if err != nil {
			handleError(c, err)
			return
		}

		out, err := report(c.Request.Context(), start, end)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, out)
	}
}

func (h *ReportHandler) MonthlyCigarettes(c *gin.Context) {
	year, month, err := pathYearMonth(c)
	if err != nil {
		handleError(c, err)
		return
	}

	out, err := h.reports.GetMonthlyCigaretteConsumption(c.Request.Context(), year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) Points(c *gin.Context) {
	start, end, err := readRange(c, h.cal)
	if err != nil {
		handleError(c, err)
		return
	}

	ctx := c.Request.Context()
	total, err := h.rewards.GetTotalPoints(ctx, start, end)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, pointsResponse{
		StartDate: start,
		EndDate:   end,
		Total:     total,
		Today:     h.rewards.GetTodayPoints(ctx),
		Month:     h.rewards.GetMonthPoints(ctx),
	})
}
