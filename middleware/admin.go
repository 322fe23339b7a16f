package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates admin endpoints on the configured admin email. Runs
// after ValidateToken, which puts the authenticated email in the context.
func RequireAdmin(c *gin.Context) {
	email, _ := c.Get("email")
	emailStr, ok := email.(string)
	if !ok || emailStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		c.Abort()
		return
	}
	if emailStr != os.Getenv("ADMIN_EMAIL") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: Not an admin"})
		c.Abort()
		return
	}
	c.Next()
}
