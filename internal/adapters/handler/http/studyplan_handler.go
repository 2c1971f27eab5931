package http

import (
	"errors"
	"net/http"

	"github.com/feelalive/aura-engine/internal/adapters/handler/http/middleware"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type StudyPlanHandler struct {
	svc *services.StudyPlanService
}

func NewStudyPlanHandler(svc *services.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{
		svc: svc,
	}
}

type createPlanRequest struct {
	Subjects  []string              `json:"subjects"`
	Chapters  []domain.Chapter      `json:"chapters"`
	Deadline  string                `json:"deadline"`
	Timetable []domain.TimetableDay `json:"timetable"`
}

type completePlanTaskRequest struct {
	ClientDate string `json:"clientDate"`
	DateOfTask string `json:"dateOfTask"`
}

type generateTimetableRequest struct {
	Chapters  []domain.Chapter `json:"chapters"`
	Deadline  string           `json:"deadline"`
	StartDate string           `json:"startDate"`
}

func (h *StudyPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plan := router.Group("/study-plan")
	{
		plan.POST("", h.Create)
		plan.GET("", h.Get)
		plan.POST("/tasks/:taskId/complete", h.CompleteTask)
		plan.DELETE("", h.Delete)
		plan.POST("/timetable", h.GenerateTimetable)
	}
}

func planError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "study plan not found"})
	case errors.Is(err, domain.ErrPlanTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOracleUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "timetable service unavailable"})
	case errors.Is(err, domain.ErrPlanFieldsMissing),
		errors.Is(err, domain.ErrClientDateRequired),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrFutureTaskDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *StudyPlanHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.svc.Create(c.Request.Context(), services.CreateStudyPlanInput{
		UserID:    userID,
		Subjects:  req.Subjects,
		Chapters:  req.Chapters,
		Deadline:  req.Deadline,
		Timetable: req.Timetable,
	})
	if err != nil {
		planError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// Get returns the plan after reconciling missed days against the client's
// calendar date, passed as the clientDate query parameter.
func (h *StudyPlanHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	plan, err := h.svc.GetAndReconcile(c.Request.Context(), userID, c.Query("clientDate"))
	if err != nil {
		planError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *StudyPlanHandler) CompleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req completePlanTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.CompleteTask(c.Request.Context(), userID, c.Param("taskId"), req.ClientDate, req.DateOfTask)
	if err != nil {
		planError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *StudyPlanHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID); err != nil {
		planError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateTimetable previews an oracle-built timetable without persisting it.
func (h *StudyPlanHandler) GenerateTimetable(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req generateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timetable, err := h.svc.GenerateTimetable(c.Request.Context(), req.Chapters, req.Deadline, req.StartDate)
	if err != nil {
		planError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"timetable": timetable})
}
