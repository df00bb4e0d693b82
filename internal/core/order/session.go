package order

import (
	"sync"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
)

// Snapshot is a read-only view of the workflow.
type Snapshot struct {
	State         State                `json:"state"`
	Plant         *domain.Plant        `json:"plant,omitempty"`
	Quantity      int                  `json:"quantity"`
	Price         *domain.Price        `json:"price,omitempty"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Address       domain.Address       `json:"address"`
	AddressOpen   bool                 `json:"address_open"`
	Message       string               `json:"message,omitempty"`
	LastOrder     *domain.Order        `json:"last_order,omitempty"`
}

func (w *Workflow) Snapshot() Snapshot {
	s := Snapshot{
		State:         w.state,
		Quantity:      w.quantity,
		PaymentMethod: w.method,
		Address:       w.address,
		AddressOpen:   w.state == AwaitingAddress,
		Message:       w.message,
	}
	if w.plant != nil {
		p := *w.plant
		s.Plant = &p
	}
	if w.price != nil {
		p := *w.price
		s.Price = &p
	}
	if w.last != nil {
		o := *w.last
		s.LastOrder = &o
	}
	return s
}

// Session serializes events against one workflow so that each transition
// runs to completion before the next starts.
type Session struct {
	mu sync.Mutex
	wf *Workflow
}

func NewSession(wf *Workflow) *Session {
	return &Session{wf: wf}
}

// Do runs fn with exclusive access to the workflow and returns the
// resulting snapshot alongside fn's error.
func (s *Session) Do(fn func(*Workflow) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.wf)
	return s.wf.Snapshot(), err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wf.Snapshot()
}
