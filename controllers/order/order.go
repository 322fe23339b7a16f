package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/esh-dev257/ecommerce-store/models"
	"github.com/esh-dev257/ecommerce-store/utils"
)

// -------- Request Structs --------

type SaveOrderRequest struct {
	// Product ids travel as strings on the wire, matching what the cart
	// snapshots.
	ProductID string  `json:"productId" binding:"required"`
	UserID    string  `json:"userId" binding:"required"`
	PaymentID string  `json:"paymentId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Status    string  `json:"status" binding:"required"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusPaid):
		return models.OrderStatusPaid, nil
	case string(models.OrderStatusFailed):
		return models.OrderStatusFailed, nil
	case string(models.OrderStatusRefunded):
		return models.OrderStatusRefunded, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// -------- Handlers --------

// POST /api/save-order
// Persists one paid cart line. Multi-item checkouts call this once per line
// with a shared payment id.
func SaveOrderHandler(db *gorm.DB, mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		productID, err := strconv.ParseUint(req.ProductID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}

		order := models.Order{
			ProductID: uint(productID),
			UserID:    req.UserID,
			PaymentID: req.PaymentID,
			Amount:    req.Amount,
			Status:    status,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&order).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Reload with references for the notification and the live feed.
		if err := db.Preload("User").Preload("Product").First(&order, order.ID).Error; err != nil {
			log.Printf("⚠️ Failed to load order %d references: %v", order.ID, err)
		}

		// The order row is the source of truth; the admin email is
		// best-effort and must never fail the save.
		go notifyAdmin(mailer, order)
		broadcastNewOrder(order)

		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/all-orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/user/:userID
// Runs behind ValidateToken; users may only read their own orders, the
// configured admin may read anyone's.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}

		requester, _ := c.Get("user_id")
		if requesterID, _ := requester.(string); requesterID != userID {
			email, _ := c.Get("email")
			emailStr, _ := email.(string)
			if emailStr == "" || emailStr != os.Getenv("ADMIN_EMAIL") {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func notifyAdmin(mailer *utils.Mailer, order models.Order) {
	if mailer == nil {
		return
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return
	}
	if err := mailer.Send(adminEmail, "🛒 New Order Placed!", utils.OrderEmailBody(order)); err != nil {
		log.Printf("⚠️ Failed to send order email: %v", err)
	}
}
