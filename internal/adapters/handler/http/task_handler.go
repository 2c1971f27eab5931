package http

import (
	"errors"
	"net/http"

	"github.com/feelalive/aura-engine/internal/adapters/handler/http/middleware"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *services.TaskService
}

func NewTaskHandler(svc *services.TaskService) *TaskHandler {
	return &TaskHandler{
		svc: svc,
	}
}

type createTaskRequest struct {
	Name            string `json:"name" binding:"required"`
	TaskCategory    string `json:"taskCategory"`
	DurationMinutes *int   `json:"durationMinutes"`
}

type verifyTaskRequest struct {
	Image string `json:"image"`
}

type completeTimedRequest struct {
	ActualMinutes *int `json:"actualMinutes"`
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.POST("/:id/verify", h.CompleteVerifiable)
		tasks.POST("/:id/complete", h.CompleteNormal)
		tasks.POST("/:id/complete/timed", h.CompleteTimed)
		tasks.POST("/:id/complete/bad", h.CompleteBad)
		tasks.PUT("/:id/bad", h.MarkBad)
		tasks.DELETE("/:id", h.Delete)
	}
}

// taskError maps service failures onto HTTP codes. Foreign ownership and
// absence share the not-found signal upstream, so a single branch covers both.
func taskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, domain.ErrTaskCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidationLimit):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTaskNotVerified):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOracleUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "verification service unavailable"})
	case errors.Is(err, domain.ErrTaskNameEmpty),
		errors.Is(err, domain.ErrInvalidTaskCategory),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrTaskNotVerifiable),
		errors.Is(err, domain.ErrTaskVerifiable),
		errors.Is(err, domain.ErrTaskNotTimed),
		errors.Is(err, domain.ErrTaskIsTimed),
		errors.Is(err, domain.ErrTaskNotBad),
		errors.Is(err, domain.ErrTaskIsBad),
		errors.Is(err, domain.ErrImageRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.svc.Create(c.Request.Context(), services.CreateTaskInput{
		UserID:          userID,
		Name:            req.Name,
		Category:        req.TaskCategory,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		taskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TaskHandler) CompleteVerifiable(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req verifyTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.CompleteVerifiable(c.Request.Context(), userID, c.Param("id"), req.Image)
	if err != nil {
		taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) CompleteNormal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	result, err := h.svc.CompleteNormal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) CompleteTimed(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req completeTimedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.CompleteTimed(c.Request.Context(), userID, c.Param("id"), req.ActualMinutes)
	if err != nil {
		taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) CompleteBad(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	result, err := h.svc.CompleteBad(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) MarkBad(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	task, err := h.svc.MarkBad(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		taskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
