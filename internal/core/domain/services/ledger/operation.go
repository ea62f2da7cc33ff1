package ledger

import (
	"fmt"

	"packhouse/internal/core/domain/model/classification"

	"github.com/shopspring/decimal"
)

// Thresholds applied to projected completion.
var (
	// NearCompletionRatio is the projected/expected ratio above which an accepted
	// operation carries a warning.
	NearCompletionRatio = decimal.RequireFromString("0.95")

	// CompletionPercent is the progress required for finalization.
	CompletionPercent = 100.0
)

// OperationKind names the entries that compete for the shared weight budget.
type OperationKind int

const (
	UnknownOperation OperationKind = iota
	PalletOperation
	WasteOperation
	ReturnOperation
)

func (k OperationKind) String() string {
	switch k {
	case PalletOperation:
		return "pallet"
	case WasteOperation:
		return "waste"
	case ReturnOperation:
		return "return"
	default:
		return "unknown"
	}
}

// Outcome is the tagged decision of a validator.
type Outcome int

const (
	Rejected Outcome = iota
	Accepted
	AcceptedWithWarning
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case AcceptedWithWarning:
		return "accepted_with_warning"
	default:
		return "rejected"
	}
}

// ReasonCode explains a rejection or a warning. It is empty for a silent acceptance.
type ReasonCode string

const (
	ReasonNone                    ReasonCode = ""
	ReasonInvalidInput            ReasonCode = "invalid_input"
	ReasonBudgetExceeded          ReasonCode = "budget_exceeded"
	ReasonNearCompletion          ReasonCode = "near_completion"
	ReasonNoOpAdjustment          ReasonCode = "noop_adjustment"
	ReasonNegativeCategoryWeight  ReasonCode = "negative_category_weight"
	ReasonClassificationFinalized ReasonCode = "classification_finalized"
)

// ValidationResult is the advisory answer to a proposed mutation. Nothing is
// persisted by the ledger; the caller saves the entry only when Accepted() is true.
type ValidationResult struct {
	Outcome Outcome
	Reason  ReasonCode
	// Message is operator-facing text; empty for a silent acceptance.
	Message string
	// RemainingWeight is expected - classified before the operation, floored at zero.
	RemainingWeight decimal.Decimal
	// CurrentProgress is the progress before the operation.
	CurrentProgress float64
}

// Accepted reports whether the caller may persist the operation.
func (r ValidationResult) Accepted() bool {
	return r.Outcome != Rejected
}

// HasWarning reports an acceptance the operator should be told about.
func (r ValidationResult) HasWarning() bool {
	return r.Outcome == AcceptedWithWarning
}

// ValidateOperation decides whether candidateWeight of the given kind fits in
// the shared budget of records.
//
// Rules, in order:
//   - kind must be known and candidateWeight > 0 (ReasonInvalidInput)
//   - no record may be finalized (ReasonClassificationFinalized)
//   - classified + candidate must not exceed expected (ReasonBudgetExceeded)
//   - (classified + candidate) / expected > 0.95 is accepted with ReasonNearCompletion
func ValidateOperation(
	candidateWeight decimal.Decimal,
	kind OperationKind,
	records []*classification.Classification,
) (ValidationResult, error) {
	totals, err := Aggregate(records)
	if err != nil {
		return ValidationResult{}, err
	}

	if kind < PalletOperation || kind > ReturnOperation {
		return reject(totals, ReasonInvalidInput, fmt.Sprintf("unknown operation kind %d", kind)), nil
	}

	if !candidateWeight.IsPositive() {
		return reject(totals, ReasonInvalidInput,
			fmt.Sprintf("%s weight must be greater than zero, got %s kg", kind, candidateWeight)), nil
	}

	if finalized := firstFinalized(records); finalized != nil {
		return reject(totals, ReasonClassificationFinalized,
			fmt.Sprintf("classification %s is finalized and cannot register a %s", finalized.LotCode(), kind)), nil
	}

	return checkBudget(totals, candidateWeight, func(remaining decimal.Decimal) string {
		return budgetMessage(kind, candidateWeight, remaining)
	}), nil
}

// checkBudget applies the projected-total rules shared by operations and adjustments.
func checkBudget(
	totals AggregatedTotals,
	delta decimal.Decimal,
	rejectMessage func(remaining decimal.Decimal) string,
) ValidationResult {
	projected := totals.Classified.Add(delta)

	if projected.GreaterThan(totals.Expected) {
		return reject(totals, ReasonBudgetExceeded, rejectMessage(totals.Remaining()))
	}

	result := ValidationResult{
		Outcome:         Accepted,
		RemainingWeight: totals.Remaining(),
		CurrentProgress: totals.Progress,
	}

	if totals.Expected.IsPositive() && projected.GreaterThan(totals.Expected.Mul(NearCompletionRatio)) {
		projectedProgress := projected.Div(totals.Expected).Mul(hundred)
		result.Outcome = AcceptedWithWarning
		result.Reason = ReasonNearCompletion
		result.Message = fmt.Sprintf(
			"lot will be %s%% complete; %s kg remain after this entry",
			projectedProgress.StringFixed(1),
			totals.Expected.Sub(projected).String(),
		)
	}

	return result
}

func budgetMessage(kind OperationKind, candidate, remaining decimal.Decimal) string {
	switch kind {
	case PalletOperation:
		return fmt.Sprintf("pallet of %s kg exceeds the expected weight; only %s kg can still be classified",
			candidate, remaining)
	case WasteOperation:
		return fmt.Sprintf("waste of %s kg exceeds the expected weight; only %s kg can still be recorded as waste",
			candidate, remaining)
	case ReturnOperation:
		return fmt.Sprintf("return of %s kg exceeds the expected weight; only %s kg can still be returned",
			candidate, remaining)
	default:
		return fmt.Sprintf("%s kg exceeds the expected weight; %s kg remain", candidate, remaining)
	}
}

func reject(totals AggregatedTotals, reason ReasonCode, message string) ValidationResult {
	return ValidationResult{
		Outcome:         Rejected,
		Reason:          reason,
		Message:         message,
		RemainingWeight: totals.Remaining(),
		CurrentProgress: totals.Progress,
	}
}

func firstFinalized(records []*classification.Classification) *classification.Classification {
	for _, r := range records {
		if r.IsFinalized() {
			return r
		}
	}
	return nil
}
