// Package order drives a single plant order from selection to payment.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
)

type State string

const (
	Selecting       State = "selecting"
	Priced          State = "priced"
	AwaitingAddress State = "awaiting_address"
	Paying          State = "paying"
	Confirmed       State = "confirmed"
	Failed          State = "failed"
)

var ErrInvalidTransition = errors.New("action not allowed in current order state")

const (
	msgMoneySuccess = "Order placed successfully with money and you got your green creds!"
	msgTokenSuccess = "Order placed successfully with tokens! You got green creds also as our gift to you :)."
	msgPaymentError = "Error processing payment."
)

// Ledger is the wallet the workflow pays from.
type Ledger interface {
	Debit(ctx context.Context, amount domain.Credits, description string) (bool, domain.Credits, error)
	Credit(ctx context.Context, amount domain.Credits, description string) (domain.Credits, error)
}

type Catalog interface {
	Find(name string) (domain.Plant, error)
}

// Workflow is the order state machine for one session. It is not safe for
// concurrent use; see Session.
type Workflow struct {
	catalog   Catalog
	ledger    Ledger
	publisher Publisher
	now       func() time.Time

	state     State
	plant     *domain.Plant
	quantity  int
	price     *domain.Price
	method    domain.PaymentMethod
	address   domain.Address
	message   string
	retryable bool
	last      *domain.Order
}

type Option func(*Workflow)

func WithPublisher(p Publisher) Option {
	return func(w *Workflow) { w.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func NewWorkflow(catalog Catalog, ledger Ledger, opts ...Option) *Workflow {
	w := &Workflow{
		catalog:  catalog,
		ledger:   ledger,
		now:      time.Now,
		state:    Selecting,
		quantity: 1,
		method:   domain.Currency,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) State() State { return w.state }

// SelectPlant picks a plant by name. An empty name clears the selection.
// Any selection starts a new draft.
func (w *Workflow) SelectPlant(name string) error {
	if w.state == Paying {
		return w.denied("select plant")
	}

	if name == "" {
		w.plant = nil
		w.resetDraft()
		return nil
	}

	plant, err := w.catalog.Find(name)
	if err != nil {
		return err
	}
	w.plant = &plant
	w.resetDraft()
	return nil
}

// SetQuantity stores the quantity as given; it is validated when priced.
// Changing it discards any price already shown.
func (w *Workflow) SetQuantity(q int) error {
	if w.state == Paying {
		return w.denied("set quantity")
	}
	w.quantity = q
	w.resetDraft()
	return nil
}

// Recompute prices the current selection.
func (w *Workflow) Recompute() error {
	switch w.state {
	case Paying:
		return w.denied("calculate price")
	case Confirmed, Failed:
		w.resetDraft()
	}

	price, err := domain.ComputePrice(w.plant, w.quantity)
	if err != nil {
		w.price = nil
		w.state = Selecting
		return err
	}

	w.price = &price
	w.state = Priced
	return nil
}

func (w *Workflow) ChoosePaymentMethod(m domain.PaymentMethod) error {
	if !w.canAdvance() {
		return w.denied("choose payment method")
	}
	if m != domain.Currency && m != domain.LoyaltyToken {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPaymentMethod, m)
	}
	w.method = m
	w.state = Priced
	w.message = ""
	return nil
}

// PlaceOrder opens address capture for the priced order.
func (w *Workflow) PlaceOrder() error {
	if !w.canAdvance() {
		return w.denied("place order")
	}
	w.state = AwaitingAddress
	w.message = ""
	return nil
}

func (w *Workflow) UpdateAddress(addr domain.Address) error {
	if w.state != AwaitingAddress {
		return w.denied("update address")
	}
	w.address = addr
	return nil
}

// SetAddressField updates a single address field by its form name.
func (w *Workflow) SetAddressField(field, value string) error {
	if w.state != AwaitingAddress {
		return w.denied("update address")
	}
	switch field {
	case "line1", "addressLine1":
		w.address.Line1 = value
	case "line2", "addressLine2":
		w.address.Line2 = value
	case "city":
		w.address.City = value
	case "state":
		w.address.State = value
	case "zip_code", "zipCode":
		w.address.ZipCode = value
	case "country":
		w.address.Country = value
	default:
		return fmt.Errorf("unknown address field %q", field)
	}
	return nil
}

// ConfirmPayment debits the order total and, once the debit succeeds,
// credits the order reward. Payment failures end in the Failed state with
// a customer message; they are not returned as errors. The payment runs to
// completion even if ctx is cancelled.
func (w *Workflow) ConfirmPayment(ctx context.Context) error {
	if w.state != AwaitingAddress {
		return w.denied("confirm payment")
	}
	w.state = Paying
	ctx = context.WithoutCancel(ctx)

	if err := w.pay(ctx); err != nil {
		slog.Error("Payment error", "error", err, "plant", w.plant.Name, "total", w.price.Total)
		w.abandon(ctx)
	}
	return nil
}

func (w *Workflow) pay(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: ledger panic: %v", domain.ErrPaymentProcessing, r)
		}
	}()

	total := w.price.Total
	desc := fmt.Sprintf("Order: %d x %s", w.quantity, w.plant.Name)

	ok, balance, err := w.ledger.Debit(ctx, total, desc)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPaymentProcessing, err)
	}
	if !ok {
		w.state = Failed
		w.retryable = true
		w.message = fmt.Sprintf("Insufficient %s.", w.method.Noun())
		slog.Warn("Payment declined", "plant", w.plant.Name, "total", total, "balance", balance, "method", w.method)
		w.publish(ctx, EventOrderFailed, nil, balance)
		return nil
	}

	balance, err = w.ledger.Credit(ctx, domain.OrderReward, "Green creds reward")
	if err != nil {
		return fmt.Errorf("%w: reward: %w", domain.ErrPaymentProcessing, err)
	}

	placed := &domain.Order{
		ID:       uuid.New(),
		Plant:    *w.plant,
		Quantity: w.quantity,
		Price:    *w.price,
		Method:   w.method,
		Address:  w.address,
		Reward:   domain.OrderReward,
		PlacedAt: w.now(),
	}
	w.last = placed
	w.state = Confirmed
	w.retryable = false
	if w.method == domain.LoyaltyToken {
		w.message = msgTokenSuccess
	} else {
		w.message = msgMoneySuccess
	}

	slog.Info("Order confirmed", "order_id", placed.ID, "plant", placed.Plant.Name, "total", total, "balance", balance)
	w.publish(ctx, EventOrderConfirmed, placed, balance)
	return nil
}

// abandon drops the draft after an unexpected payment error.
func (w *Workflow) abandon(ctx context.Context) {
	w.state = Failed
	w.retryable = false
	w.message = msgPaymentError
	w.publish(ctx, EventOrderFailed, nil, -1)

	w.price = nil
	w.method = domain.Currency
	w.address = domain.Address{}
}

func (w *Workflow) canAdvance() bool {
	return w.state == Priced || (w.state == Failed && w.retryable)
}

func (w *Workflow) resetDraft() {
	w.state = Selecting
	w.price = nil
	w.method = domain.Currency
	w.address = domain.Address{}
	w.message = ""
	w.retryable = false
}

func (w *Workflow) denied(action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, w.state)
}

func (w *Workflow) publish(ctx context.Context, kind EventType, placed *domain.Order, balance domain.Credits) {
	if w.publisher == nil {
		return
	}
	ev := Event{
		Type:     kind,
		Order:    placed,
		Plant:    w.plant.Name,
		Quantity: w.quantity,
		Method:   w.method,
		Message:  w.message,
		At:       w.now(),
	}
	if w.price != nil {
		ev.Total = w.price.Total
	}
	if balance >= 0 {
		ev.Balance = &balance
	}
	w.publisher.Publish(ctx, ev)
}
