// Package wallet keeps the green-credit balance of the active session.
package wallet

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akshitjain2004/EnvoSafe/internal/core/domain"
)

type Direction string

const (
	Credit Direction = "CREDIT"
	Debit  Direction = "DEBIT"
)

// Entry is one applied balance movement.
type Entry struct {
	ID           uuid.UUID      `json:"id"`
	Direction    Direction      `json:"direction"`
	Amount       domain.Credits `json:"amount"`
	BalanceAfter domain.Credits `json:"balance_after"`
	Description  string         `json:"description"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Journal receives every entry before it is applied.
type Journal interface {
	Record(ctx context.Context, entry Entry) error
}

// Ledger holds a single balance. Every mutation runs under one lock, so the
// balance check and the update cannot interleave with another call.
type Ledger struct {
	mu      sync.Mutex
	balance domain.Credits
	entries []Entry
	journal Journal
	now     func() time.Time
}

type Option func(*Ledger)

func WithJournal(j Journal) Option {
	return func(l *Ledger) { l.journal = j }
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(initial domain.Credits, opts ...Option) (*Ledger, error) {
	if initial < 0 {
		return nil, fmt.Errorf("initial balance %d: %w", initial, domain.ErrInvalidAmount)
	}
	l := &Ledger{balance: initial, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Ledger) Balance() domain.Credits {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Entries returns the applied entries, newest first.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Credit adds amount and returns the new balance.
func (l *Ledger) Credit(ctx context.Context, amount domain.Credits, description string) (domain.Credits, error) {
	if amount < 0 {
		return 0, fmt.Errorf("credit %d: %w", amount, domain.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount > math.MaxInt64-l.balance {
		return l.balance, fmt.Errorf("credit %d on %d: %w", amount, l.balance, domain.ErrBalanceOverflow)
	}
	if err := l.apply(ctx, Credit, amount, l.balance+amount, description); err != nil {
		return l.balance, err
	}
	return l.balance, nil
}

// Debit subtracts amount when the balance covers it. An uncovered debit
// leaves the balance untouched and reports ok=false without an error.
func (l *Ledger) Debit(ctx context.Context, amount domain.Credits, description string) (bool, domain.Credits, error) {
	if amount < 0 {
		return false, 0, fmt.Errorf("debit %d: %w", amount, domain.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance < amount {
		return false, l.balance, nil
	}
	if err := l.apply(ctx, Debit, amount, l.balance-amount, description); err != nil {
		return false, l.balance, err
	}
	return true, l.balance, nil
}

// apply journals the entry and then moves the balance. Callers hold mu.
func (l *Ledger) apply(ctx context.Context, dir Direction, amount, after domain.Credits, description string) error {
	entry := Entry{
		ID:           uuid.New(),
		Direction:    dir,
		Amount:       amount,
		BalanceAfter: after,
		Description:  description,
		CreatedAt:    l.now(),
	}

	if l.journal != nil {
		if err := l.journal.Record(ctx, entry); err != nil {
			return fmt.Errorf("failed to journal %s of %d: %w", dir, amount, err)
		}
	}

	l.balance = after
	l.entries = append(l.entries, entry)
	return nil
}
