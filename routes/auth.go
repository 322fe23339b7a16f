package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/esh-dev257/ecommerce-store/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		// Google login. Gin's trailing-slash redirect also serves
		// /auth/google/, which some older clients still request.
		authGroup.POST("/google", auth.GoogleLoginHandler(db))
	}
}
