package http

import (
	"errors"
	"net/http"

	"github.com/feelalive/aura-engine/internal/adapters/handler/http/middleware"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	svc *services.SocialService
}

func NewSocialHandler(svc *services.SocialService) *SocialHandler {
	return &SocialHandler{
		svc: svc,
	}
}

type setupChallengeRequest struct {
	Password string `json:"password"`
	Days     int    `json:"days"`
}

func (h *SocialHandler) RegisterRoutes(router *gin.RouterGroup) {
	social := router.Group("/social")
	{
		social.POST("", h.GetOrSetup)
		social.GET("", h.Get)
		social.PUT("/end", h.End)
		social.PUT("/giveup", h.GiveUp)
	}
}

func socialError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrChallengeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrChallengeNotElapsed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidChallengeDays),
		errors.Is(err, domain.ErrChallengePassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// GetOrSetup starts a challenge, or returns the active one untouched when
// one is already running.
func (h *SocialHandler) GetOrSetup(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req setupChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := h.svc.GetOrSetup(c.Request.Context(), userID, req.Password, req.Days)
	if err != nil {
		socialError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

func (h *SocialHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	challenge, err := h.svc.GetOrSetup(c.Request.Context(), userID, "", 0)
	if err != nil {
		socialError(c, err)
		return
	}

	c.JSON(http.StatusOK, challenge)
}

func (h *SocialHandler) End(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	outcome, err := h.svc.End(c.Request.Context(), userID)
	if err != nil {
		socialError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (h *SocialHandler) GiveUp(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	outcome, err := h.svc.GiveUp(c.Request.Context(), userID)
	if err != nil {
		socialError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
