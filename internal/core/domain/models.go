package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address is captured before payment. It is never validated and never
// affects pricing or the wallet.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Order represents a paid order. It only exists in memory.
type Order struct {
	ID       uuid.UUID     `json:"id"`
	Plant    Plant         `json:"plant"`
	Quantity int           `json:"quantity"`
	Price    Price         `json:"price"`
	Method   PaymentMethod `json:"payment_method"`
	Address  Address       `json:"address"`
	Reward   Credits       `json:"reward"`
	PlacedAt time.Time     `json:"placed_at"`
}

// Profile is the user document shown on the dashboard.
type Profile struct {
	UserID    string  `json:"user_id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Wallet    Credits `json:"wallet"`
	Credits   Credits `json:"credits"`
}
