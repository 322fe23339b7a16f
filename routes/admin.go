package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/esh-dev257/ecommerce-store/controllers/order"
	productControllers "github.com/esh-dev257/ecommerce-store/controllers/product"
	userControllers "github.com/esh-dev257/ecommerce-store/controllers/user"
	"github.com/esh-dev257/ecommerce-store/middleware"
)

// SetupAdminRoutes registers all admin endpoints. Requires a valid session
// token whose email matches ADMIN_EMAIL.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	// The dashboard fetches these under /api, gated per-request.
	api := r.Group("/api", middleware.ValidateToken, middleware.RequireAdmin)
	{
		api.GET("/all-orders", orderControllers.GetAllOrdersHandler(db))
		api.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
	}

	adminGroup := r.Group("/admin", middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
		}
	}
}
