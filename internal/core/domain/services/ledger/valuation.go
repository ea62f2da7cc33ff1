package ledger

import (
	"packhouse/internal/core/domain/model/classification"

	"github.com/shopspring/decimal"
)

// Valuation prices the classified result of a record set.
type Valuation struct {
	Categories map[classification.Category]decimal.Decimal
	Total      decimal.Decimal
}

// Value computes category weight × category price for every record and sums the
// amounts per category. Waste and returns carry no value.
func Value(records []*classification.Classification) (Valuation, error) {
	valuation := Valuation{
		Categories: make(map[classification.Category]decimal.Decimal, len(classification.Categories())),
		Total:      decimal.Zero,
	}
	for _, c := range classification.Categories() {
		valuation.Categories[c] = decimal.Zero
	}

	for _, record := range records {
		totals, err := Aggregate([]*classification.Classification{record})
		if err != nil {
			return Valuation{}, err
		}

		for _, c := range classification.Categories() {
			amount := totals.Category(c).Mul(record.Prices().For(c).Decimal()).Round(2)
			valuation.Categories[c] = valuation.Categories[c].Add(amount)
			valuation.Total = valuation.Total.Add(amount)
		}
	}

	return valuation, nil
}
