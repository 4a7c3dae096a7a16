package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/interfaces/http/dto"
)

type stubValidator struct {
	claims *auth.Claims
	err    error
}

func (s *stubValidator) ValidateAccessToken(_ context.Context, _ string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newJWTTestRouter(validator AccessTokenValidator, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(validator))
	handlers := append(extra, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c), "role": GetJWTRole(c)})
	})
	router.GET("/api/v1/protected", handlers...)
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestJWTAuth(t *testing.T) {
	claims := &auth.Claims{
		UserID:   "b2c5a2a4-0000-0000-0000-000000000001",
		Username: "alice",
		Role:     "manager",
	}

	t.Run("valid token", func(t *testing.T) {
		router := newJWTTestRouter(&stubValidator{claims: claims})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, claims.UserID, body["user_id"])
		assert.Equal(t, "manager", body["role"])
	})

	t.Run("missing header", func(t *testing.T) {
		router := newJWTTestRouter(&stubValidator{claims: claims})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		router := newJWTTestRouter(&stubValidator{claims: claims})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token code", func(t *testing.T) {
		router := newJWTTestRouter(&stubValidator{err: auth.ErrExpiredToken})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeTokenExpired, resp.Error.Code)
	})

	t.Run("skip path", func(t *testing.T) {
		router := newJWTTestRouter(&stubValidator{err: auth.ErrInvalidToken})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireApprover(t *testing.T) {
	approve := func(role string) int {
		claims := &auth.Claims{UserID: "u", Username: "u", Role: role}
		router := newJWTTestRouter(&stubValidator{claims: claims}, RequireApprover())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
		req.Header.Set("Authorization", "Bearer token")
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, approve("admin"))
	assert.Equal(t, http.StatusOK, approve("manager"))
	assert.Equal(t, http.StatusForbidden, approve("clerk"))
}

func TestRequireRoles(t *testing.T) {
	claims := &auth.Claims{UserID: "u", Username: "u", Role: "clerk"}
	router := newJWTTestRouter(&stubValidator{claims: claims}, RequireRoles(identity.RoleAdmin))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.Header.Set("Authorization", "Bearer token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
