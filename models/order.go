package models

import "time"

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"  // Payment not completed yet
	OrderStatusPaid     OrderStatus = "paid"     // Payment completed successfully
	OrderStatusFailed   OrderStatus = "failed"   // Payment attempt failed
	OrderStatusRefunded OrderStatus = "refunded" // Money returned to customer
)

// Order is one purchased cart line: a multi-item checkout produces one row
// per line, all sharing the same payment id.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	ProductID uint        `gorm:"not null" json:"product_id"`
	Product   Product     `gorm:"foreignKey:ProductID" json:"product"`
	UserID    string      `gorm:"not null" json:"user_id"`
	User      User        `gorm:"foreignKey:UserID" json:"user"`
	PaymentID string      `json:"payment_id"`
	Amount    float64     `json:"amount"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
