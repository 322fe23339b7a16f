package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/esh-dev257/ecommerce-store/cart"
)

// Orchestrator turns a cart plus an authenticated user into persisted
// orders, by way of a gateway order and the interactive payment widget. It
// runs at most the one attempt it was asked for; serializing concurrent
// Checkout calls (e.g. disabling the button while one is pending) is the
// caller's job.
type Orchestrator struct {
	gateway  GatewayClient
	orders   OrderSaver
	widget   Widget
	store    CartStore
	currency string
}

func New(gateway GatewayClient, orders OrderSaver, widget Widget, store CartStore) *Orchestrator {
	return &Orchestrator{
		gateway:  gateway,
		orders:   orders,
		widget:   widget,
		store:    store,
		currency: "INR",
	}
}

// Checkout starts one payment attempt for lines on behalf of user. It
// returns as soon as the widget is open; the terminal outcome arrives later
// on the attempt's Done channel. A single ad-hoc line works the same as a
// full cart.
//
// Precondition and gateway failures are reported synchronously as errors and
// leave the cart untouched; no order submission happens before the widget
// confirms payment.
func (o *Orchestrator) Checkout(ctx context.Context, lines []cart.Line, user *User) (*Attempt, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Snapshot the lines so later cart mutations cannot change what this
	// attempt pays for.
	snapshot := make([]cart.Line, len(lines))
	copy(snapshot, lines)

	var total float64
	for _, l := range snapshot {
		total += l.Price * float64(l.Quantity)
	}

	attempt := newAttempt()
	attempt.setState(StateOrderRequested)

	receipt := fmt.Sprintf("cart_%d", time.Now().UnixMilli())
	order, err := o.gateway.CreateOrder(ctx, total, o.currency, receipt)
	if err != nil {
		attempt.setState(StateOrderRequestFailed)
		return nil, &GatewayOrderError{Err: err}
	}

	attempt.setState(StateWidgetOpen)
	o.widget.Open(
		WidgetRequest{
			OrderID:     order.ID,
			Amount:      order.Amount,
			Currency:    order.Currency,
			Description: fmt.Sprintf("Payment for %d items", len(snapshot)),
			Name:        user.Name,
			Email:       user.Email,
		},
		// Each callback claims the attempt before doing anything else, so a
		// widget that fires both (dismiss then a late success, or the other
		// way round) causes no order submissions or cart mutations past the
		// first terminal state.
		func(paymentID string) {
			if attempt.claim() {
				o.settle(ctx, attempt, snapshot, user, paymentID)
			}
		},
		func() {
			if attempt.claim() {
				attempt.deliver(StateCancelled, Outcome{Status: PaymentCancelled})
			}
		},
	)
	return attempt, nil
}

// settle runs once the widget reports a successful payment and the claim is
// won: every line's persisted-order submission is issued concurrently and
// awaited jointly.
// Lines whose save failed stay in the cart, so a later manual retry
// re-submits exactly those and nothing twice.
func (o *Orchestrator) settle(ctx context.Context, attempt *Attempt, lines []cart.Line, user *User, paymentID string) {
	results := make([]LineResult, len(lines))
	var wg sync.WaitGroup
	for i, line := range lines {
		wg.Add(1)
		go func(i int, line cart.Line) {
			defer wg.Done()
			err := o.orders.SaveOrder(ctx, OrderRequest{
				ProductID: line.ID,
				UserID:    user.ID,
				PaymentID: paymentID,
				Amount:    line.Price * float64(line.Quantity),
				Status:    "paid",
			})
			results[i] = LineResult{ProductID: line.ID, Err: err}
		}(i, line)
	}
	wg.Wait()

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	out := Outcome{Status: PaymentSucceeded, PaymentID: paymentID, Lines: results}
	if failed == 0 {
		out.SaveStatus = AllSaved
		if o.store != nil {
			o.store.Clear()
		}
	} else {
		out.SaveStatus = OrderSaveFailed
		if o.store != nil {
			for _, r := range results {
				if r.Err == nil {
					o.store.Remove(r.ProductID)
				}
			}
		}
	}
	attempt.deliver(StateSucceeded, out)
}
