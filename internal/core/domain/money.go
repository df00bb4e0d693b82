package domain

import (
	"fmt"
	"strings"
)

// Credits are whole green credits. 1 loyalty token is worth 1 credit, so
// every payment method draws on the same balance.
type Credits = int64

type PaymentMethod string

const (
	Currency     PaymentMethod = "currency"
	LoyaltyToken PaymentMethod = "loyalty_token"
)

// OrderReward is credited back to the wallet after every successful payment.
const OrderReward Credits = 2

// ParsePaymentMethod accepts the canonical names plus the storefront's
// older "money" / "tokens" labels.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "currency", "money":
		return Currency, nil
	case "loyalty_token", "tokens", "token":
		return LoyaltyToken, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, raw)
}

// Noun is the word used in customer-facing messages for this method.
func (m PaymentMethod) Noun() string {
	if m == LoyaltyToken {
		return "tokens"
	}
	return "funds"
}
