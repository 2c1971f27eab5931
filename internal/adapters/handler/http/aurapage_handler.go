package http

import (
	"errors"
	"net/http"

	"github.com/feelalive/aura-engine/internal/adapters/handler/http/middleware"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type AuraPageHandler struct {
	svc *services.AuraPageService
}

func NewAuraPageHandler(svc *services.AuraPageService) *AuraPageHandler {
	return &AuraPageHandler{
		svc: svc,
	}
}

type savePageRequest struct {
	Username string `json:"username" binding:"required"`
	Enabled  bool   `json:"enabled"`
	Theme    string `json:"theme"`
}

type setPageEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *AuraPageHandler) RegisterRoutes(router *gin.RouterGroup) {
	page := router.Group("/aura-page")
	{
		page.PUT("", h.Save)
		page.GET("", h.Get)
		page.PATCH("/enabled", h.SetEnabled)
	}
}

func pageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAuraPageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "aura page not found"})
	case errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *AuraPageHandler) Save(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req savePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.svc.Save(c.Request.Context(), userID, req.Username, req.Enabled, req.Theme)
	if err != nil {
		pageError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *AuraPageHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	page, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		pageError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *AuraPageHandler) SetEnabled(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req setPageEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.svc.SetEnabled(c.Request.Context(), userID, *req.Enabled)
	if err != nil {
		pageError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
