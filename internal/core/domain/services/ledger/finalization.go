package ledger

import (
	"fmt"

	"packhouse/internal/core/domain/model/classification"
)

// BlockingCode identifies one reason a classification cannot be finalized.
type BlockingCode string

const (
	BlockedNoClassifiedCategories BlockingCode = "no_classified_categories"
	BlockedMissingCategoryPrice   BlockingCode = "missing_category_price"
	BlockedIncompleteProgress     BlockingCode = "incomplete_progress"
	BlockedAlreadyFinalized       BlockingCode = "already_finalized"
)

// BlockingReason is a single outstanding issue. Category is UnknownCategory when
// the reason is not tied to a category.
type BlockingReason struct {
	Code     BlockingCode
	Category classification.Category
	Message  string
}

// FinalizationResult lists every blocking reason at once.
type FinalizationResult struct {
	CanFinalize            bool
	BlockingReasons        []BlockingReason
	ClassifiedCategories   []classification.Category
	UnclassifiedCategories []classification.Category
}

// Messages returns the operator-facing text of every blocking reason.
func (r FinalizationResult) Messages() []string {
	out := make([]string, 0, len(r.BlockingReasons))
	for _, reason := range r.BlockingReasons {
		out = append(out, reason.Message)
	}
	return out
}

// EvaluateFinalization decides whether records may move to Finalized. All of
// the following must hold:
//   - at least one category has a pallet
//   - every category with a pallet has a price greater than zero
//   - progress is at least 100
//
// Categories without pallets are exempt from pricing. Manual adjustments do not
// make a category classified.
func EvaluateFinalization(
	records []*classification.Classification,
	progress float64,
) (FinalizationResult, error) {
	for i, record := range records {
		if err := record.Validate(); err != nil {
			return FinalizationResult{}, fmt.Errorf("record %d: %w", i, err)
		}
	}

	result := FinalizationResult{
		ClassifiedCategories:   []classification.Category{},
		UnclassifiedCategories: []classification.Category{},
	}

	for _, record := range records {
		if record.IsFinalized() {
			result.BlockingReasons = append(result.BlockingReasons, BlockingReason{
				Code:    BlockedAlreadyFinalized,
				Message: fmt.Sprintf("classification %s is already finalized", record.LotCode()),
			})
		}
	}

	used := usedCategories(records)
	for _, category := range classification.Categories() {
		if used[category] {
			result.ClassifiedCategories = append(result.ClassifiedCategories, category)
		} else {
			result.UnclassifiedCategories = append(result.UnclassifiedCategories, category)
		}
	}

	if len(result.ClassifiedCategories) == 0 {
		result.BlockingReasons = append(result.BlockingReasons, BlockingReason{
			Code:    BlockedNoClassifiedCategories,
			Message: "at least one category must have a registered pallet",
		})
	}

	for _, record := range records {
		recordCategories := usedCategories([]*classification.Classification{record})
		for _, category := range classification.Categories() {
			if !recordCategories[category] || record.Prices().For(category).IsSet() {
				continue
			}
			result.BlockingReasons = append(result.BlockingReasons, BlockingReason{
				Code:     BlockedMissingCategoryPrice,
				Category: category,
				Message: fmt.Sprintf("price for category %s must be greater than zero (lot %s)",
					category, record.LotCode()),
			})
		}
	}

	if progress < CompletionPercent {
		result.BlockingReasons = append(result.BlockingReasons, BlockingReason{
			Code:    BlockedIncompleteProgress,
			Message: fmt.Sprintf("progress is %.2f%%, it must reach %.0f%%", progress, CompletionPercent),
		})
	}

	result.CanFinalize = len(result.BlockingReasons) == 0
	return result, nil
}

func usedCategories(records []*classification.Classification) map[classification.Category]bool {
	used := make(map[classification.Category]bool)
	for _, record := range records {
		for _, pallet := range record.Pallets() {
			used[pallet.Category()] = true
		}
	}
	return used
}
