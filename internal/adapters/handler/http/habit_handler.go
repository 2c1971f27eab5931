package http

import (
	"errors"
	"net/http"

	"github.com/feelalive/aura-engine/internal/adapters/handler/http/middleware"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name          string `json:"name" binding:"required"`
	Goal          string `json:"goal"`
	Location      string `json:"location"`
	CompletedDays string `json:"completedDays"`
}

type completeHabitRequest struct {
	CompletedDays string `json:"completedDays"`
}

type updateHabitRequest struct {
	Name          *string `json:"name"`
	Goal          *string `json:"goal"`
	Location      *string `json:"location"`
	CompletedDays *string `json:"completedDays"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.POST("/:id/complete", h.Complete)
		habits.PATCH("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
	}
}

func habitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, domain.ErrHabitNameEmpty),
		errors.Is(err, domain.ErrCompletedDaysRequired),
		errors.Is(err, domain.ErrEmptyPatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:        userID,
		Name:          req.Name,
		Goal:          req.Goal,
		Location:      req.Location,
		CompletedDays: req.CompletedDays,
	})
	if err != nil {
		habitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
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

func (h *HabitHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req completeHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Complete(c.Request.Context(), userID, c.Param("id"), req.CompletedDays)
	if err != nil {
		habitError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), domain.HabitPatch{
		Name:          req.Name,
		Goal:          req.Goal,
		Location:      req.Location,
		CompletedDays: req.CompletedDays,
	})
	if err != nil {
		habitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		habitError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
