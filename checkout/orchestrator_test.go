package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esh-dev257/ecommerce-store/cart"
)

// -------- Fakes --------

type fakeGateway struct {
	order *GatewayOrder
	err   error

	mu       sync.Mutex
	calls    int
	amount   float64
	currency string
	receipt  string
}

func (g *fakeGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.amount = amount
	g.currency = currency
	g.receipt = receipt
	if g.err != nil {
		return nil, g.err
	}
	return g.order, nil
}

type fakeSaver struct {
	mu      sync.Mutex
	failFor map[string]error // productID → error
	calls   []OrderRequest
}

func (s *fakeSaver) SaveOrder(ctx context.Context, req OrderRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if err, ok := s.failFor[req.ProductID]; ok {
		return err
	}
	return nil
}

func (s *fakeSaver) callsFor(productID string) []OrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []OrderRequest
	for _, c := range s.calls {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out
}

// fakeWidget captures the callbacks so tests can play the user.
type fakeWidget struct {
	req       WidgetRequest
	opened    bool
	onSuccess func(paymentID string)
	onDismiss func()
}

func (w *fakeWidget) Open(req WidgetRequest, onSuccess func(string), onDismiss func()) {
	w.req = req
	w.opened = true
	w.onSuccess = onSuccess
	w.onDismiss = onDismiss
}

func twoLineCart() (*cart.Store, []cart.Line) {
	store := cart.NewStore(&cart.MemorySlot{})
	store.Add(cart.Product{ID: "p1", Name: "Keyboard", Price: 1500, Image: "/img/p1.png"})
	store.Add(cart.Product{ID: "p2", Name: "Mouse", Price: 700, Image: "/img/p2.png"})
	store.Add(cart.Product{ID: "p2", Name: "Mouse", Price: 700, Image: "/img/p2.png"})
	return store, store.Lines()
}

func testUser() *User {
	return &User{ID: "u1", Name: "Asha", Email: "asha@example.com"}
}

func awaitOutcome(t *testing.T, attempt *Attempt) Outcome {
	t.Helper()
	select {
	case out := <-attempt.Done():
		return out
	case <-time.After(2 * time.Second):
		t.Fatal("attempt did not resolve")
		return Outcome{}
	}
}

// -------- Tests --------

func TestCheckoutEmptyCart(t *testing.T) {
	gw := &fakeGateway{}
	saver := &fakeSaver{}
	o := New(gw, saver, &fakeWidget{}, nil)

	attempt, err := o.Checkout(context.Background(), nil, testUser())
	assert.Nil(t, attempt)
	assert.ErrorIs(t, err, ErrEmptyCart)

	// No network call of any kind.
	assert.Zero(t, gw.calls)
	assert.Empty(t, saver.calls)
}

func TestCheckoutUnauthenticated(t *testing.T) {
	gw := &fakeGateway{}
	saver := &fakeSaver{}
	o := New(gw, saver, &fakeWidget{}, nil)
	_, lines := twoLineCart()

	attempt, err := o.Checkout(context.Background(), lines, nil)
	assert.Nil(t, attempt)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Zero(t, gw.calls)
	assert.Empty(t, saver.calls)
}

func TestCheckoutGatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("upstream says no")}
	saver := &fakeSaver{}
	widget := &fakeWidget{}
	store, lines := twoLineCart()
	o := New(gw, saver, widget, store)

	attempt, err := o.Checkout(context.Background(), lines, testUser())
	assert.Nil(t, attempt)

	var gwErr *GatewayOrderError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, err.Error(), "upstream says no")

	// No widget, no saves, cart untouched.
	assert.False(t, widget.opened)
	assert.Empty(t, saver.calls)
	assert.Equal(t, 3, store.Count())
}

func TestCheckoutSuccessAllSaved(t *testing.T) {
	gw := &fakeGateway{order: &GatewayOrder{ID: "order_1", Amount: 2900, Currency: "INR"}}
	saver := &fakeSaver{}
	widget := &fakeWidget{}
	store, lines := twoLineCart()
	o := New(gw, saver, widget, store)

	attempt, err := o.Checkout(context.Background(), lines, testUser())
	require.NoError(t, err)
	require.True(t, widget.opened)
	assert.Equal(t, StateWidgetOpen, attempt.State())

	// Gateway order covers the whole cart: 1500 + 2*700.
	assert.Equal(t, 2900.0, gw.amount)
	assert.Equal(t, "INR", gw.currency)
	assert.Equal(t, "order_1", widget.req.OrderID)
	assert.Equal(t, "asha@example.com", widget.req.Email)

	widget.onSuccess("pay_42")
	out := awaitOutcome(t, attempt)

	assert.Equal(t, PaymentSucceeded, out.Status)
	assert.Equal(t, AllSaved, out.SaveStatus)
	assert.Equal(t, "pay_42", out.PaymentID)
	assert.Equal(t, StateSucceeded, attempt.State())

	// One submission per line with per-line amounts.
	require.Len(t, saver.calls, 2)
	byProduct := map[string]OrderRequest{}
	for _, c := range saver.calls {
		byProduct[c.ProductID] = c
	}
	assert.Equal(t, 1500.0, byProduct["p1"].Amount)
	assert.Equal(t, 1400.0, byProduct["p2"].Amount)
	assert.Equal(t, "u1", byProduct["p1"].UserID)
	assert.Equal(t, "pay_42", byProduct["p1"].PaymentID)
	assert.Equal(t, "paid", byProduct["p1"].Status)

	// Cart ends empty.
	assert.Equal(t, 0, store.Count())
}

func TestCheckoutPartialSaveFailure(t *testing.T) {
	gw := &fakeGateway{order: &GatewayOrder{ID: "order_1", Amount: 2900, Currency: "INR"}}
	saver := &fakeSaver{failFor: map[string]error{"p2": errors.New("backend down")}}
	widget := &fakeWidget{}
	store, lines := twoLineCart()
	o := New(gw, saver, widget, store)

	attempt, err := o.Checkout(context.Background(), lines, testUser())
	require.NoError(t, err)

	widget.onSuccess("pay_42")
	out := awaitOutcome(t, attempt)

	assert.Equal(t, PaymentSucceeded, out.Status)
	assert.Equal(t, OrderSaveFailed, out.SaveStatus)

	// The failed line stays in the cart, the saved one is gone.
	remaining := store.Lines()
	require.Len(t, remaining, 1)
	assert.Equal(t, "p2", remaining[0].ID)

	// The succeeded line was submitted exactly once.
	assert.Len(t, saver.callsFor("p1"), 1)

	// Per-line results name the failure.
	var p2Err error
	for _, r := range out.Lines {
		if r.ProductID == "p2" {
			p2Err = r.Err
		}
	}
	assert.EqualError(t, p2Err, "backend down")
}

func TestCheckoutDismissLeavesCartUntouched(t *testing.T) {
	gw := &fakeGateway{order: &GatewayOrder{ID: "order_1", Amount: 2900, Currency: "INR"}}
	saver := &fakeSaver{}
	widget := &fakeWidget{}
	store, lines := twoLineCart()
	o := New(gw, saver, widget, store)

	attempt, err := o.Checkout(context.Background(), lines, testUser())
	require.NoError(t, err)

	widget.onDismiss()
	out := awaitOutcome(t, attempt)

	assert.Equal(t, PaymentCancelled, out.Status)
	assert.Equal(t, StateCancelled, attempt.State())
	assert.Empty(t, saver.calls)
	assert.Equal(t, 3, store.Count())
}

func TestAttemptResolvesAtMostOnce(t *testing.T) {
	gw := &fakeGateway{order: &GatewayOrder{ID: "order_1", Amount: 2900, Currency: "INR"}}
	saver := &fakeSaver{}
	widget := &fakeWidget{}
	store, lines := twoLineCart()
	o := New(gw, saver, widget, store)

	attempt, err := o.Checkout(context.Background(), lines, testUser())
	require.NoError(t, err)

	widget.onSuccess("pay_42")
	out := awaitOutcome(t, attempt)
	assert.Equal(t, PaymentSucceeded, out.Status)

	// A late dismiss (sloppy widget) must not produce a second outcome or
	// flip the terminal state.
	widget.onDismiss()
	select {
	case extra := <-attempt.Done():
		t.Fatalf("attempt resolved twice: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, StateSucceeded, attempt.State())

	// And orders were not submitted a second time.
	assert.Len(t, saver.calls, 2)
}

func TestLateSuccessAfterDismissIsIgnored(t *testing.T) {
	gw := &fakeGateway{order: &GatewayOrder{ID: "order_1", Amount: 2900, Currency: "INR"}}
	saver := &fakeSaver{}
	widget := &fakeWidget{}
	store, lines := twoLineCart()
	o := New(gw, saver, widget, store)

	attempt, err := o.Checkout(context.Background(), lines, testUser())
	require.NoError(t, err)

	widget.onDismiss()
	out := awaitOutcome(t, attempt)
	assert.Equal(t, PaymentCancelled, out.Status)

	// A sloppy widget fires success after the user already dismissed. The
	// cancelled attempt must not submit any orders or mutate the cart.
	widget.onSuccess("pay_late")
	select {
	case extra := <-attempt.Done():
		t.Fatalf("attempt resolved twice: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Empty(t, saver.calls)
	assert.Equal(t, 3, store.Count())
	assert.Equal(t, StateCancelled, attempt.State())
}

func TestCheckoutSingleAdHocItem(t *testing.T) {
	gw := &fakeGateway{order: &GatewayOrder{ID: "order_1", Amount: 999, Currency: "INR"}}
	saver := &fakeSaver{}
	widget := &fakeWidget{}
	o := New(gw, saver, widget, nil)

	line := cart.Line{ID: "p9", Name: "Cable", Price: 333, Quantity: 3}
	attempt, err := o.Checkout(context.Background(), []cart.Line{line}, testUser())
	require.NoError(t, err)
	assert.Equal(t, 999.0, gw.amount)

	widget.onSuccess("pay_7")
	out := awaitOutcome(t, attempt)
	assert.Equal(t, AllSaved, out.SaveStatus)
	require.Len(t, saver.calls, 1)
	assert.Equal(t, 999.0, saver.calls[0].Amount)
}

func TestLaterCartMutationDoesNotChangeAttempt(t *testing.T) {
	gw := &fakeGateway{order: &GatewayOrder{ID: "order_1", Amount: 2900, Currency: "INR"}}
	saver := &fakeSaver{}
	widget := &fakeWidget{}
	store, lines := twoLineCart()
	o := New(gw, saver, widget, store)

	attempt, err := o.Checkout(context.Background(), lines, testUser())
	require.NoError(t, err)

	// The user keeps shopping while the widget is open.
	store.Add(cart.Product{ID: "p3", Name: "Monitor", Price: 9000})

	widget.onSuccess("pay_42")
	out := awaitOutcome(t, attempt)
	assert.Equal(t, AllSaved, out.SaveStatus)

	// Only the snapshot's two lines were submitted.
	assert.Len(t, saver.calls, 2)
}
