package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esh-dev257/ecommerce-store/auth"
	"github.com/esh-dev257/ecommerce-store/models"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", ValidateToken, func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin-only", ValidateToken, RequireAdmin, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateTokenAcceptsIssuedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := auth.IssueJWT(models.User{ID: "u1", Email: "asha@example.com"})
	require.NoError(t, err)

	w := get(protectedRouter(), "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestValidateTokenRejectsMissingHeader(t *testing.T) {
	w := get(protectedRouter(), "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	w := get(protectedRouter(), "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminAllowsConfiguredEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	token, err := auth.IssueJWT(models.User{ID: "u1", Email: "admin@example.com"})
	require.NoError(t, err)

	w := get(protectedRouter(), "/admin-only", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsOtherEmails(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	token, err := auth.IssueJWT(models.User{ID: "u2", Email: "asha@example.com"})
	require.NoError(t, err)

	w := get(protectedRouter(), "/admin-only", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
