package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const BasePrice Credits = 10

// Price is the result of pricing one plant at a quantity.
type Price struct {
	Base          Credits `json:"base"`
	TypeSurcharge Credits `json:"type_surcharge"`
	SizeSurcharge Credits `json:"size_surcharge"`
	UnitPrice     Credits `json:"unit_price"`
	Quantity      int     `json:"quantity"`
	Total         Credits `json:"total"`
}

func TypeSurcharge(t PlantType) Credits {
	switch t {
	case Tree:
		return 20
	case Houseplant, Succulent:
		return 5
	}
	return 0
}

func SizeSurcharge(s PlantSize) Credits {
	switch s {
	case Large:
		return 15
	case Medium:
		return 10
	}
	return 0
}

// ComputePrice prices a plant: (base + type surcharge + size surcharge) * quantity.
func ComputePrice(plant *Plant, quantity int) (Price, error) {
	if plant == nil {
		return Price{}, ErrInvalidSelection
	}
	if quantity <= 0 {
		return Price{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	p := Price{
		Base:          BasePrice,
		TypeSurcharge: TypeSurcharge(plant.Type),
		SizeSurcharge: SizeSurcharge(plant.Size),
		Quantity:      quantity,
	}
	p.UnitPrice = p.Base + p.TypeSurcharge + p.SizeSurcharge
	if Credits(quantity) > math.MaxInt64/p.UnitPrice {
		return Price{}, fmt.Errorf("%w: %d is more than can be priced", ErrInvalidQuantity, quantity)
	}
	p.Total = p.UnitPrice * Credits(quantity)
	return p, nil
}

// ParseQuantity coerces user input into a quantity.
func ParseQuantity(raw string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	if q <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, q)
	}
	return q, nil
}
