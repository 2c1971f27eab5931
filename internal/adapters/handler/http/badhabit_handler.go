package http

import (
	"errors"
	"net/http"

	"github.com/feelalive/aura-engine/internal/adapters/handler/http/middleware"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type BadHabitHandler struct {
	svc *services.BadHabitService
}

func NewBadHabitHandler(svc *services.BadHabitService) *BadHabitHandler {
	return &BadHabitHandler{
		svc: svc,
	}
}

type createBadHabitRequest struct {
	Name          string `json:"name" binding:"required"`
	Goal          string `json:"goal"`
	Severity      string `json:"severity"`
	CompletedDays string `json:"completedDays"`
}

type completeBadHabitRequest struct {
	CompletedDays string `json:"completedDays"`
	IncrementBy   int    `json:"incrementBy"`
}

type updateBadHabitRequest struct {
	Name          *string `json:"name"`
	Goal          *string `json:"goal"`
	Severity      *string `json:"severity"`
	CompletedDays *string `json:"completedDays"`
}

func (h *BadHabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/bad-habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.POST("/:id/complete", h.Complete)
		habits.PATCH("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
	}
}

func badHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBadHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bad habit not found"})
	case errors.Is(err, domain.ErrHabitNameEmpty),
		errors.Is(err, domain.ErrInvalidSeverity),
		errors.Is(err, domain.ErrCompletedDaysRequired),
		errors.Is(err, domain.ErrEmptyPatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *BadHabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createBadHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateBadHabitInput{
		UserID:        userID,
		Name:          req.Name,
		Goal:          req.Goal,
		Severity:      req.Severity,
		CompletedDays: req.CompletedDays,
	})
	if err != nil {
		badHabitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *BadHabitHandler) List(c *gin.Context) {
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

func (h *BadHabitHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req completeBadHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Complete(c.Request.Context(), userID, c.Param("id"), req.CompletedDays, req.IncrementBy)
	if err != nil {
		badHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BadHabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateBadHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), domain.BadHabitPatch{
		Name:          req.Name,
		Goal:          req.Goal,
		Severity:      req.Severity,
		CompletedDays: req.CompletedDays,
	})
	if err != nil {
		badHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *BadHabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		badHabitError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
