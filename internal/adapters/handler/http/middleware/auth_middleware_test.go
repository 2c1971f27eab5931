package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Parallel()

	secret := "test-secret-middleware"
	issuer := "test-issuer"
	tokenService := services.NewTokenService(secret, issuer, 1*time.Hour)

	setupRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(AuthMiddleware(tokenService))
		router.GET("/protected", func(c *gin.Context) {
			userID, ok := GetUserID(c)
			if !ok {
				c.String(http.StatusInternalServerError, "UserID not found in context")
				return
			}
			c.String(http.StatusOK, "Hello "+userID)
		})
		return router
	}

	t.Run("Success: valid token", func(t *testing.T) {
		t.Parallel()
		router := setupRouter()

		token, err := tokenService.GenerateToken("user-123")
		assert.NoError(t, err)

		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello user-123", w.Body.String())
	})

	t.Run("Fail: missing header", func(t *testing.T) {
		t.Parallel()
		router := setupRouter()

		req, _ := http.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: malformed header", func(t *testing.T) {
		t.Parallel()
		router := setupRouter()

		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: expired token", func(t *testing.T) {
		t.Parallel()
		expired := services.NewTokenService(secret, issuer, -1*time.Hour)
		router := setupRouter()

		token, err := expired.GenerateToken("user-123")
		assert.NoError(t, err)

		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: token signed with a different secret", func(t *testing.T) {
		t.Parallel()
		other := services.NewTokenService("another-secret", issuer, 1*time.Hour)
		router := setupRouter()

		token, err := other.GenerateToken("user-123")
		assert.NoError(t, err)

		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
