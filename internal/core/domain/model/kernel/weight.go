package kernel

import (
	"fmt"

	"packhouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// WeightPrecision is the number of decimal places kept for kilograms.
const WeightPrecision int32 = 3

// Weight is a non-negative mass in kilograms. The zero value is 0 kg.
type Weight struct {
	kg decimal.Decimal
}

// NewWeight accepts any non-negative amount, rounded to WeightPrecision.
func NewWeight(kg decimal.Decimal) (Weight, error) {
	if kg.IsNegative() {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", kg, 0, "unbounded")
	}

	return Weight{kg: kg.Round(WeightPrecision)}, nil
}

// NewPositiveWeight is NewWeight for amounts that must be strictly greater than zero,
// such as a pallet or waste entry being registered.
func NewPositiveWeight(kg decimal.Decimal) (Weight, error) {
	if !kg.IsPositive() {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight is invalid", fmt.Errorf("%s is not greater than 0", kg))
	}

	return NewWeight(kg)
}

// MustWeight panics on invalid input. Intended for tests and constants.
func MustWeight(kg string) Weight {
	w, err := NewWeight(decimal.RequireFromString(kg))
	if err != nil {
		panic(err)
	}
	return w
}

func (w Weight) Decimal() decimal.Decimal {
	return w.kg
}

func (w Weight) IsZero() bool {
	return w.kg.IsZero()
}

func (w Weight) Add(other Weight) Weight {
	return Weight{kg: w.kg.Add(other.kg)}
}

func (w Weight) Equal(other Weight) bool {
	return w.kg.Equal(other.kg)
}

func (w Weight) String() string {
	return w.kg.StringFixed(WeightPrecision)
}
