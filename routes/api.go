package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/esh-dev257/ecommerce-store/controllers/order"
	paymentControllers "github.com/esh-dev257/ecommerce-store/controllers/payment"
	productControllers "github.com/esh-dev257/ecommerce-store/controllers/product"
	userControllers "github.com/esh-dev257/ecommerce-store/controllers/user"
	"github.com/esh-dev257/ecommerce-store/gateway"
	"github.com/esh-dev257/ecommerce-store/middleware"
	"github.com/esh-dev257/ecommerce-store/utils"
)

// SetupAPIRoutes registers the "/api/*" endpoints the storefront client
// consumes.
func SetupAPIRoutes(r *gin.Engine, db *gorm.DB, gw *gateway.Client, mailer *utils.Mailer) {
	api := r.Group("/api")
	{
		// ──────────────── Browse Products ────────────────
		api.GET("/products", productControllers.GetProducts(db))
		api.GET("/products/:id", productControllers.GetProductByID(db))

		// ──────────────── Checkout ────────────────
		api.POST("/create-order", paymentControllers.CreateOrderHandler(gw))
		api.POST("/save-order", orderControllers.SaveOrderHandler(db, mailer))

		// ──────────────── Session ────────────────
		api.GET("/current_user", userControllers.CurrentUserHandler(db))
		api.GET("/logout", userControllers.LogoutHandler())

		// ──────────────── Own Orders ────────────────
		api.GET("/orders/user/:userID", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))
	}

	// websocket endpoint for real-time order updates
	r.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
}
