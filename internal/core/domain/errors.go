package domain

import "errors"

var (
	ErrInvalidSelection     = errors.New("no plant selected")
	ErrInvalidQuantity      = errors.New("quantity must be a positive whole number")
	ErrInvalidAmount        = errors.New("amount cannot be negative")
	ErrBalanceOverflow      = errors.New("amount would exceed the wallet limit")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrPaymentProcessing    = errors.New("error processing payment")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrUnknownPlant         = errors.New("plant not found")
	ErrProfileNotFound      = errors.New("profile not found")
)
