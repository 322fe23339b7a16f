package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/esh-dev257/ecommerce-store/gateway"
	"github.com/esh-dev257/ecommerce-store/utils"
)

// SetupRoutes is the single entry-point that wires up Auth, API, and Admin
// route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, gw *gateway.Client, mailer *utils.Mailer) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// 2️⃣ Storefront API routes
	SetupAPIRoutes(r, db, gw, mailer)

	// 3️⃣ Admin routes (JWT + admin-email gated)
	SetupAdminRoutes(r, db)
}
