package order

import (
	"context"
	"time"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
)

type EventType string

const (
	EventOrderConfirmed EventType = "order.confirmed"
	EventOrderFailed    EventType = "order.failed"
)

// Event describes the outcome of a payment attempt.
type Event struct {
	Type     EventType            `json:"event"`
	Order    *domain.Order        `json:"order,omitempty"`
	Plant    string               `json:"plant"`
	Quantity int                  `json:"quantity"`
	Total    domain.Credits       `json:"total"`
	Method   domain.PaymentMethod `json:"payment_method"`
	Message  string               `json:"message"`
	Balance  *domain.Credits      `json:"balance,omitempty"`
	At       time.Time            `json:"timestamp"`
}

// Publisher is notified after every payment attempt. Publish must not block
// the workflow for long.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}
