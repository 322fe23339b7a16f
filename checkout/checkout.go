package checkout

import (
	"context"
	"errors"
	"fmt"
)

// User is the authenticated customer a checkout runs for.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"displayName"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

// GatewayOrder is the payment processor's server-side transaction record,
// created before the widget is shown. Amount is echoed in the gateway's
// native minor unit (paise for Razorpay), not in rupees.
type GatewayOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// GatewayClient creates gateway orders. Amount is in rupees.
type GatewayClient interface {
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*GatewayOrder, error)
}

// OrderRequest is one persisted-order submission. A multi-line checkout
// issues one per line, all carrying the same payment id.
type OrderRequest struct {
	ProductID string  `json:"productId"`
	UserID    string  `json:"userId"`
	PaymentID string  `json:"paymentId"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

// OrderSaver submits persisted orders to the backend.
type OrderSaver interface {
	SaveOrder(ctx context.Context, req OrderRequest) error
}

// WidgetRequest configures the gateway's interactive payment widget. Amount
// carries the gateway order's amount unchanged, so it is in the gateway's
// minor unit, which is what the widget expects.
type WidgetRequest struct {
	OrderID     string
	Amount      float64
	Currency    string
	Description string
	Name        string
	Email       string
}

// Widget opens the payment UI. Opening must not block; completion arrives
// through the callbacks, of which implementations invoke at most one, at
// most once. In the browser this is the gateway's own script; tests supply
// fakes.
type Widget interface {
	Open(req WidgetRequest, onSuccess func(paymentID string), onDismiss func())
}

// CartStore is the slice of the cart store the orchestrator mutates after a
// successful payment.
type CartStore interface {
	Remove(productID string)
	Clear()
}

var (
	// ErrUnauthenticated is reported before any network call when no user is
	// signed in.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrEmptyCart is reported before any network call when there is nothing
	// to pay for.
	ErrEmptyCart = errors.New("cart is empty")
)

// GatewayOrderError reports a failed gateway order creation with the
// upstream message preserved for user-facing display.
type GatewayOrderError struct {
	Err error
}

func (e *GatewayOrderError) Error() string {
	return fmt.Sprintf("gateway order failed: %v", e.Err)
}

func (e *GatewayOrderError) Unwrap() error { return e.Err }
