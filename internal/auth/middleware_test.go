package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(secret), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/admin-only", AuthMiddleware(secret), RequireRole(RoleBusinessAdmin), func(c *gin.Context) {
		businessID, _ := GetBusinessID(c)
		c.JSON(http.StatusOK, gin.H{"business_id": businessID})
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := setupProtectedRouter(testSecret)

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(router, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doRequest(router, "/protected", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(router, "/protected", "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected on access route", func(t *testing.T) {
		_, refresh, err := GenerateTokens(42, 0, "user@example.com", RoleClient, testSecret)
		require.NoError(t, err)

		w := doRequest(router, "/protected", "Bearer "+refresh)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		access, _, err := GenerateTokens(42, 0, "user@example.com", RoleClient, testSecret)
		require.NoError(t, err)

		w := doRequest(router, "/protected", "Bearer "+access)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
	})
}

func TestRequireRole(t *testing.T) {
	router := setupProtectedRouter(testSecret)

	t.Run("client is forbidden", func(t *testing.T) {
		access, _, err := GenerateTokens(42, 0, "user@example.com", RoleClient, testSecret)
		require.NoError(t, err)

		w := doRequest(router, "/admin-only", "Bearer "+access)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("business admin passes", func(t *testing.T) {
		access, _, err := GenerateTokens(5, 17, "owner@example.com", RoleBusinessAdmin, testSecret)
		require.NoError(t, err)

		w := doRequest(router, "/admin-only", "Bearer "+access)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"business_id":17`)
	})
}
