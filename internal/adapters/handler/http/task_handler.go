package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daftar-app/daftar/internal/core/domain"
	"github.com/daftar-app/daftar/internal/core/services"
)

type TaskHandler struct {
	svc      *services.TaskService
	rewards  *services.RewardService
	settings *services.SettingsService
}

func NewTaskHandler(svc *services.TaskService, rewards *services.RewardService, settings *services.SettingsService) *TaskHandler {
	return &TaskHandler{
		svc:      svc,
		rewards:  rewards,
		settings: settings,
	}
}

type createTaskRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	CategoryID    *string `json:"category_id"`
	ScheduledDate string  `json:"scheduled_date" binding:"required"`
	Deadline      *string `json:"deadline"`
	Time          *string `json:"time"`
	Priority      string  `json:"priority"`
	RewardPoints  int     `json:"reward_points"`
	PenaltyPoints int     `json:"penalty_points"`
}

type updateTaskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	CategoryID    *string `json:"category_id"`
	ScheduledDate *string `json:"scheduled_date"`
	Deadline      *string `json:"deadline"`
	Time          *string `json:"time"`
	Priority      *string `json:"priority"`
	RewardPoints  *int    `json:"reward_points"`
	PenaltyPoints *int    `json:"penalty_points"`
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/:id", h.Get)
		tasks.PUT("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
		tasks.POST("/:id/complete", h.Complete)
		tasks.POST("/:id/uncomplete", h.Uncomplete)
		tasks.GET("/:id/rewards", h.Rewards)
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	priority := req.Priority
	if priority == "" {
		if s, err := h.settings.Get(c.Request.Context()); err == nil {
			priority = s.DefaultTaskPriority
		}
	}

	task, err := h.svc.Create(c.Request.Context(), domain.TaskInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		ScheduledDate: req.ScheduledDate,
		Deadline:      req.Deadline,
		Time:          req.Time,
		Priority:      priority,
		RewardPoints:  req.RewardPoints,
		PenaltyPoints: req.PenaltyPoints,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	filter := domain.TaskFilter{
		Date:       c.Query("date"),
		Status:     c.Query("status"),
		CategoryID: c.Query("category_id"),
		Priority:   c.Query("priority"),
	}

	list, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	task, err := h.svc.Update(c.Request.Context(), c.Param("id"), services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		ScheduledDate: req.ScheduledDate,
		Deadline:      req.Deadline,
		Time:          req.Time,
		Priority:      req.Priority,
		RewardPoints:  req.RewardPoints,
		PenaltyPoints: req.PenaltyPoints,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) Complete(c *gin.Context) {
	task, err := h.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Uncomplete(c *gin.Context) {
	task, err := h.svc.Uncomplete(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Rewards lists the ledger entries credited for one task.
func (h *TaskHandler) Rewards(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.svc.GetByID(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	list, err := h.rewards.ListByTask(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
