package checkout

import "sync"

// State tracks one checkout attempt through its lifecycle. Succeeded,
// Cancelled and OrderRequestFailed are terminal.
type State int

const (
	StateIdle State = iota
	StateOrderRequested
	StateWidgetOpen
	StateSucceeded
	StateCancelled
	StateOrderRequestFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOrderRequested:
		return "order_requested"
	case StateWidgetOpen:
		return "widget_open"
	case StateSucceeded:
		return "succeeded"
	case StateCancelled:
		return "cancelled"
	case StateOrderRequestFailed:
		return "order_request_failed"
	default:
		return "unknown"
	}
}

type Status int

const (
	PaymentSucceeded Status = iota
	PaymentCancelled
)

// SaveStatus qualifies PaymentSucceeded: either every line's order was
// persisted, or the payment went through but some saves failed. A partial
// failure is surfaced, never retried automatically; payment is not
// reversible from here.
type SaveStatus int

const (
	AllSaved SaveStatus = iota
	OrderSaveFailed
)

// LineResult is the fate of one per-line order submission.
type LineResult struct {
	ProductID string
	Err       error
}

// Outcome is the terminal result of a checkout attempt, delivered exactly
// once on Attempt.Done.
type Outcome struct {
	Status     Status
	SaveStatus SaveStatus // meaningful only when Status is PaymentSucceeded
	PaymentID  string
	Lines      []LineResult // per-line save results, nil unless orders were submitted
}

// Attempt is one in-flight checkout. The first widget callback to fire
// claims the attempt; a later invocation of either callback loses the claim
// and is ignored before it can submit orders or touch the cart. The widget
// contract only promises each callback fires at most once, not that at most
// one of the two fires.
type Attempt struct {
	mu      sync.Mutex
	state   State
	resolve sync.Once
	done    chan Outcome
}

func newAttempt() *Attempt {
	return &Attempt{state: StateIdle, done: make(chan Outcome, 1)}
}

// Done delivers the terminal outcome. It never closes without a value: an
// abandoned widget leaves the attempt in WidgetOpen and the channel silent.
func (a *Attempt) Done() <-chan Outcome { return a.done }

func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Attempt) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// claim marks the attempt resolved and reports whether the caller won the
// race to do so. The loser must perform no side effects at all.
func (a *Attempt) claim() bool {
	won := false
	a.resolve.Do(func() { won = true })
	return won
}

// deliver records the terminal state and hands out the outcome. Only the
// claim winner calls it.
func (a *Attempt) deliver(s State, out Outcome) {
	a.setState(s)
	a.done <- out
}
