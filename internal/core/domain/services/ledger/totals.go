package ledger

import (
	"fmt"

	"packhouse/internal/core/domain/model/classification"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AggregatedTotals is a projection of a record set. It is recomputed on every
// call to Aggregate and never stored.
type AggregatedTotals struct {
	Categories map[classification.Category]decimal.Decimal
	Waste      decimal.Decimal
	Returns    decimal.Decimal
	// Classified is categories + waste + returns.
	Classified decimal.Decimal
	Expected   decimal.Decimal
	Progress   float64
}

// Category returns the total weight recorded for c.
func (t AggregatedTotals) Category(c classification.Category) decimal.Decimal {
	return t.Categories[c]
}

// Remaining is the weight still allowed before the expected total is reached,
// floored at zero.
func (t AggregatedTotals) Remaining() decimal.Decimal {
	remaining := t.Expected.Sub(t.Classified)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Aggregate sums every pallet (by category, plus manual adjustments), waste and
// return entry of records, together with their expected weights.
func Aggregate(records []*classification.Classification) (AggregatedTotals, error) {
	totals := AggregatedTotals{
		Categories: make(map[classification.Category]decimal.Decimal, len(classification.Categories())),
		Waste:      decimal.Zero,
		Returns:    decimal.Zero,
		Expected:   decimal.Zero,
	}
	for _, c := range classification.Categories() {
		totals.Categories[c] = decimal.Zero
	}

	for i, record := range records {
		if err := record.Validate(); err != nil {
			return AggregatedTotals{}, fmt.Errorf("record %d: %w", i, err)
		}

		for _, pallet := range record.Pallets() {
			c := pallet.Category()
			totals.Categories[c] = totals.Categories[c].Add(pallet.Weight().Decimal())
		}
		for _, c := range classification.Categories() {
			totals.Categories[c] = totals.Categories[c].Add(record.Adjustment(c))
		}
		for _, waste := range record.Wastes() {
			totals.Waste = totals.Waste.Add(waste.Weight().Decimal())
		}
		for _, ret := range record.Returns() {
			totals.Returns = totals.Returns.Add(ret.Weight().Decimal())
		}
		totals.Expected = totals.Expected.Add(record.ExpectedWeight().Decimal())
	}

	classified := totals.Waste.Add(totals.Returns)
	for _, c := range classification.Categories() {
		classified = classified.Add(totals.Categories[c])
	}
	totals.Classified = classified
	totals.Progress = Progress(totals)

	return totals, nil
}

// Progress is classified / expected * 100. It is not clamped, so values above 100
// reveal over-classification. With nothing expected it is 0.
func Progress(totals AggregatedTotals) float64 {
	if !totals.Expected.IsPositive() {
		return 0
	}

	return totals.Classified.Div(totals.Expected).Mul(hundred).InexactFloat64()
}
