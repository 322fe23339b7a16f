package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/esh-dev257/ecommerce-store/gateway"
)

type CreateOrderInput struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

// POST /api/create-order
func CreateOrderHandler(gw *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gw == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway not configured"})
			return
		}

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Currency == "" {
			input.Currency = "INR"
		}
		if input.Receipt == "" {
			input.Receipt = "rcpt_" + uuid.NewString()
		}

		order, err := gw.CreateOrder(c.Request.Context(), input.Amount, input.Currency, input.Receipt)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
