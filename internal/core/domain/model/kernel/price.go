package kernel

import (
	"packhouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricePrecision is the number of decimal places kept for unit prices.
const PricePrecision int32 = 2

// Price is a non-negative unit price per kilogram. A zero price means the
// category has not been priced yet.
type Price struct {
	perKg decimal.Decimal
}

func NewPrice(perKg decimal.Decimal) (Price, error) {
	if perKg.IsNegative() {
		return Price{}, errs.NewValueIsOutOfRangeError("price", perKg, 0, "unbounded")
	}

	return Price{perKg: perKg.Round(PricePrecision)}, nil
}

// MustPrice panics on invalid input. Intended for tests and constants.
func MustPrice(perKg string) Price {
	p, err := NewPrice(decimal.RequireFromString(perKg))
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) Decimal() decimal.Decimal {
	return p.perKg
}

func (p Price) IsSet() bool {
	return p.perKg.IsPositive()
}

// Value returns the amount charged for w at this price.
func (p Price) Value(w Weight) decimal.Decimal {
	return w.Decimal().Mul(p.perKg)
}

func (p Price) String() string {
	return p.perKg.StringFixed(PricePrecision)
}
