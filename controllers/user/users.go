package userControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/esh-dev257/ecommerce-store/auth"
	"github.com/esh-dev257/ecommerce-store/models"
)

// GET /api/current_user
// Returns the signed-in user, or an empty object for anonymous sessions.
// The token is optional here; every other protected route goes through the
// middleware instead.
func CurrentUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			c.JSON(http.StatusOK, gin.H{})
			return
		}

		claims, err := auth.ParseJWT(tokenString)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}

		userID, _ := claims["user_id"].(string)
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /api/logout
// Sessions are stateless JWTs, so logout is client-side; the endpoint exists
// for parity with the web client's expectations.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "name", "picture", "provider", "created_at").
			Order("created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
