package ledger

import (
	"fmt"
	"sort"
	"strings"

	"packhouse/internal/core/domain/model/classification"

	"github.com/shopspring/decimal"
)

// AdjustmentResult is a ValidationResult plus the deltas that should reach
// persistence. Deltas is empty unless the adjustment was accepted.
type AdjustmentResult struct {
	ValidationResult
	Deltas map[classification.Category]decimal.Decimal
	// CombinedDelta is the sum of the non-zero deltas.
	CombinedDelta decimal.Decimal
}

// ValidateAdjustment checks a manual correction of several category weights.
// Categories missing from deltas are left unchanged. The deltas are checked
// against every record on its own as well as against the batch totals, since
// they are applied to a single record and each record must stay non-negative.
func ValidateAdjustment(
	deltas map[classification.Category]decimal.Decimal,
	records []*classification.Classification,
) (AdjustmentResult, error) {
	totals, err := Aggregate(records)
	if err != nil {
		return AdjustmentResult{}, err
	}

	filtered := make(map[classification.Category]decimal.Decimal, len(deltas))
	combined := decimal.Zero
	for category, delta := range deltas {
		if err := category.Validate(); err != nil {
			return AdjustmentResult{ValidationResult: reject(totals, ReasonInvalidInput,
				fmt.Sprintf("unknown category %d in adjustment", int(category)))}, nil
		}
		if delta.IsZero() {
			continue
		}
		filtered[category] = delta
		combined = combined.Add(delta)
	}

	if len(filtered) == 0 {
		return AdjustmentResult{ValidationResult: reject(totals, ReasonNoOpAdjustment,
			"adjustment changes no category weight")}, nil
	}

	if finalized := firstFinalized(records); finalized != nil {
		return AdjustmentResult{ValidationResult: reject(totals, ReasonClassificationFinalized,
			fmt.Sprintf("classification %s is finalized and cannot be adjusted", finalized.LotCode()))}, nil
	}

	negative, err := negativeCategories(filtered, totals, records)
	if err != nil {
		return AdjustmentResult{}, err
	}
	if len(negative) > 0 {
		sort.Strings(negative)
		return AdjustmentResult{ValidationResult: reject(totals, ReasonNegativeCategoryWeight,
			"category weight cannot drop below zero: "+strings.Join(negative, ", "))}, nil
	}

	result := checkBudget(totals, combined, func(remaining decimal.Decimal) string {
		return fmt.Sprintf("adjustment adds %s kg but only %s kg can still be classified", combined, remaining)
	})
	if !result.Accepted() {
		return AdjustmentResult{ValidationResult: result}, nil
	}

	return AdjustmentResult{
		ValidationResult: result,
		Deltas:           filtered,
		CombinedDelta:    combined,
	}, nil
}

func negativeCategories(
	deltas map[classification.Category]decimal.Decimal,
	totals AggregatedTotals,
	records []*classification.Classification,
) ([]string, error) {
	var negative []string
	for category, delta := range deltas {
		if next := totals.Category(category).Add(delta); next.IsNegative() {
			negative = append(negative, fmt.Sprintf("%s would be %s kg", category, next))
		}
	}
	if len(negative) > 0 || len(records) < 2 {
		return negative, nil
	}

	for _, record := range records {
		own, err := Aggregate([]*classification.Classification{record})
		if err != nil {
			return nil, err
		}
		for category, delta := range deltas {
			if next := own.Category(category).Add(delta); next.IsNegative() {
				negative = append(negative, fmt.Sprintf("%s of %s would be %s kg",
					category, record.LotCode(), next))
			}
		}
	}
	return negative, nil
}
