package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftar-app/daftar/internal/core/calendar"
	"github.com/daftar-app/daftar/internal/core/services"
)

type CigaretteHandler struct {
	svc *services.CigaretteService
	cal *calendar.Calendar
}

func NewCigaretteHandler(svc *services.CigaretteService, cal *calendar.Calendar) *CigaretteHandler {
	return &CigaretteHandler{
		svc: svc,
		cal: cal,
	}
}

type setLimitRequest struct {
	Limit int `json:"limit" binding:"required"`
}

func (h *CigaretteHandler) RegisterRoutes(router *gin.RouterGroup) {
	cigarettes := router.Group("/cigarettes")
	{
		cigarettes.GET("", h.List)
		cigarettes.GET("/today", h.Today)
		cigarettes.POST("/today/add", h.Add)
		cigarettes.POST("/today/remove", h.Remove)
		cigarettes.PUT("/today/limit", h.SetLimit)
		cigarettes.GET("/:year/:month/:day", h.Get)
		cigarettes.DELETE("/:year/:month/:day", h.Delete)
	}
}

func (h *CigaretteHandler) Today(c *gin.Context) {
	rec, err := h.svc.Today(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *CigaretteHandler) Add(c *gin.Context) {
	rec, err := h.svc.Add(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *CigaretteHandler) Remove(c *gin.Context) {
	rec, err := h.svc.Remove(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *CigaretteHandler) SetLimit(c *gin.Context) {
	var req setLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rec, err := h.svc.SetDailyLimit(c.Request.Context(), req.Limit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *CigaretteHandler) List(c *gin.Context) {
	start, end, err := readRange(c, h.cal)
	if err != nil {
		handleError(c, err)
		return
	}

	list, err := h.svc.ListRange(c.Request.Context(), start, end)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *CigaretteHandler) Get(c *gin.Context) {
	date, err := pathDate(c)
	if err != nil {
		handleError(c, err)
		return
	}

	rec, err := h.svc.GetByDate(c.Request.Context(), date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *CigaretteHandler) Delete(c *gin.Context) {
	date, err := pathDate(c)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), date); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
