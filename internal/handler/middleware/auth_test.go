//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"applytrack/internal/domain/user"
	"applytrack/internal/handler/middleware"
	"applytrack/internal/pkg/jwt"
	usecasemock "applytrack/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	validator := usecasemock.NewMockTokenValidator(ctrl)
	auth := middleware.NewAuthMiddleware(validator)
	userID := uuid.New()

	router := gin.New()
	router.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": role})
	})
	router.POST("/ticks", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	perform := func(method, path, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("valid bearer token", func(t *testing.T) {
		validator.EXPECT().ValidateToken("good").Return(userID, user.RoleOperator, nil)
		w := perform(http.MethodGet, "/me", "Bearer good")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := perform(http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Access token required")
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		w := perform(http.MethodGet, "/me", "Basic Zm9vOmJhcg==")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		validator.EXPECT().ValidateToken("expired").Return(uuid.Nil, user.Role(""), jwt.ErrExpiredToken)
		w := perform(http.MethodGet, "/me", "Bearer expired")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})

	t.Run("role below admin is forbidden", func(t *testing.T) {
		validator.EXPECT().ValidateToken("op").Return(userID, user.RoleOperator, nil)
		w := perform(http.MethodPost, "/ticks", "Bearer op")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes role check", func(t *testing.T) {
		validator.EXPECT().ValidateToken("admin").Return(userID, user.RoleAdmin, nil)
		w := perform(http.MethodPost, "/ticks", "Bearer admin")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
