package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(secret), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin", AuthMiddleware(secret), RequireRole(RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := setupRouter(testSecret)

	t.Run("Missing header", func(t *testing.T) {
		w := doRequest(r, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		w := doRequest(r, "/protected", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		w := doRequest(r, "/protected", "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid token passes", func(t *testing.T) {
		token, err := GenerateAccessToken(5, "student@example.com", RoleStudent, testSecret)
		require.NoError(t, err)

		w := doRequest(r, "/protected", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":5`)
	})

	t.Run("Refresh token is rejected on protected routes", func(t *testing.T) {
		token, err := GenerateRefreshToken(5, "student@example.com", RoleStudent, testSecret)
		require.NoError(t, err)

		w := doRequest(r, "/protected", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	r := setupRouter(testSecret)

	t.Run("Student is forbidden on admin routes", func(t *testing.T) {
		token, err := GenerateAccessToken(5, "student@example.com", RoleStudent, testSecret)
		require.NoError(t, err)

		w := doRequest(r, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin is allowed", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "admin@example.com", RoleAdmin, testSecret)
		require.NoError(t, err)

		w := doRequest(r, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
