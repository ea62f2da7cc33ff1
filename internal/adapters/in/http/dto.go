package http

import (
	"fmt"
	"time"

	"packhouse/internal/core/application/usecases/queries"
	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"
	"packhouse/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request bodies.

type NewClassificationRequest struct {
	ID             *openapi_types.UUID `json:"id,omitempty"`
	OrderID        openapi_types.UUID  `json:"orderId"`
	LotCode        string              `json:"lotCode"`
	ExpectedWeight decimal.Decimal     `json:"expectedWeight"`
	Prices         PricesBody          `json:"prices"`
}

type PricesBody map[string]decimal.Decimal

type NewPalletRequest struct {
	Category string          `json:"category"`
	Weight   decimal.Decimal `json:"weight"`
}

type NewWasteRequest struct {
	Weight      decimal.Decimal `json:"weight"`
	Description string          `json:"description"`
}

type NewReturnRequest struct {
	Weight decimal.Decimal `json:"weight"`
	Reason string          `json:"reason"`
}

type AdjustmentRequest struct {
	Deltas map[string]decimal.Decimal `json:"deltas"`
}

// Response bodies.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type ValidationResult struct {
	Outcome         string          `json:"outcome"`
	Reason          string          `json:"reason,omitempty"`
	Message         string          `json:"message,omitempty"`
	RemainingWeight decimal.Decimal `json:"remainingWeight"`
	CurrentProgress float64         `json:"currentProgress"`
}

type AdjustmentResult struct {
	ValidationResult
	Deltas        map[string]decimal.Decimal `json:"deltas,omitempty"`
	CombinedDelta decimal.Decimal            `json:"combinedDelta"`
}

type BlockingReason struct {
	Code     string `json:"code"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message"`
}

type Finalization struct {
	CanFinalize            bool             `json:"canFinalize"`
	BlockingReasons        []BlockingReason `json:"blockingReasons"`
	ClassifiedCategories   []string         `json:"classifiedCategories"`
	UnclassifiedCategories []string         `json:"unclassifiedCategories"`
}

type Valuation struct {
	Categories map[string]decimal.Decimal `json:"categories"`
	Total      decimal.Decimal            `json:"total"`
}

type OpenClassification struct {
	ID             openapi_types.UUID `json:"id"`
	OrderID        openapi_types.UUID `json:"orderId"`
	LotCode        string             `json:"lotCode"`
	ExpectedWeight decimal.Decimal    `json:"expectedWeight"`
	CreatedAt      time.Time          `json:"createdAt"`
}

type Summary struct {
	ID               openapi_types.UUID         `json:"id"`
	OrderID          openapi_types.UUID         `json:"orderId"`
	LotCode          string                     `json:"lotCode"`
	Status           string                     `json:"status"`
	FinalizedAt      *time.Time                 `json:"finalizedAt"`
	ExpectedWeight   decimal.Decimal            `json:"expectedWeight"`
	ClassifiedWeight decimal.Decimal            `json:"classifiedWeight"`
	RemainingWeight  decimal.Decimal            `json:"remainingWeight"`
	WasteWeight      decimal.Decimal            `json:"wasteWeight"`
	ReturnsWeight    decimal.Decimal            `json:"returnsWeight"`
	Progress         float64                    `json:"progress"`
	Categories       map[string]decimal.Decimal `json:"categories"`
	Prices           PricesBody                 `json:"prices"`
	Valuation        Valuation                  `json:"valuation"`
	Finalization     Finalization               `json:"finalization"`
}

type OrderProgress struct {
	OrderID          openapi_types.UUID `json:"orderId"`
	ExpectedWeight   decimal.Decimal    `json:"expectedWeight"`
	ClassifiedWeight decimal.Decimal    `json:"classifiedWeight"`
	RemainingWeight  decimal.Decimal    `json:"remainingWeight"`
	Progress         float64            `json:"progress"`
	Valuation        Valuation          `json:"valuation"`
	FinalizedCount   int                `json:"finalizedCount"`
	Classifications  []Summary          `json:"classifications"`
}

// Mapping between the wire format and the domain.

func (b PricesBody) toDomain() (classification.Prices, error) {
	prices := classification.Prices{}
	seen := make(map[classification.Category]string, len(b))
	for name, value := range b {
		category, err := parseCategoryKey(name, seen)
		if err != nil {
			return classification.Prices{}, err
		}

		price, err := kernel.NewPrice(value)
		if err != nil {
			return classification.Prices{}, err
		}
		prices = prices.With(category, price)
	}
	return prices, nil
}

func parseDeltas(in map[string]decimal.Decimal) (map[classification.Category]decimal.Decimal, error) {
	out := make(map[classification.Category]decimal.Decimal, len(in))
	seen := make(map[classification.Category]string, len(in))
	for name, delta := range in {
		category, err := parseCategoryKey(name, seen)
		if err != nil {
			return nil, err
		}
		out[category] = delta
	}
	return out, nil
}

// parseCategoryKey parses a JSON object key and refuses a second key naming the
// same category, since keys are matched case-insensitively.
func parseCategoryKey(name string, seen map[classification.Category]string) (classification.Category, error) {
	category, err := classification.ParseCategory(name)
	if err != nil {
		return classification.UnknownCategory, err
	}
	if previous, ok := seen[category]; ok {
		return classification.UnknownCategory, errs.NewValueIsInvalidErrorWithCause(
			"category", fmt.Errorf("keys %q and %q both name %s", previous, name, category))
	}
	seen[category] = name
	return category, nil
}

func fromPrices(p classification.Prices) PricesBody {
	out := make(PricesBody, len(classification.Categories()))
	for _, c := range classification.Categories() {
		out[c.String()] = p.For(c).Decimal()
	}
	return out
}

func fromCategoryAmounts(in map[classification.Category]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for c, v := range in {
		out[c.String()] = v
	}
	return out
}

func fromCategories(in []classification.Category) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		out = append(out, c.String())
	}
	return out
}

func fromValidationResult(r ledger.ValidationResult) ValidationResult {
	return ValidationResult{
		Outcome:         r.Outcome.String(),
		Reason:          string(r.Reason),
		Message:         r.Message,
		RemainingWeight: r.RemainingWeight,
		CurrentProgress: r.CurrentProgress,
	}
}

func fromAdjustmentResult(r ledger.AdjustmentResult) AdjustmentResult {
	out := AdjustmentResult{
		ValidationResult: fromValidationResult(r.ValidationResult),
		CombinedDelta:    r.CombinedDelta,
	}
	if r.Deltas != nil {
		out.Deltas = fromCategoryAmounts(r.Deltas)
	}
	return out
}

func fromFinalization(r ledger.FinalizationResult) Finalization {
	out := Finalization{
		CanFinalize:            r.CanFinalize,
		BlockingReasons:        make([]BlockingReason, 0, len(r.BlockingReasons)),
		ClassifiedCategories:   fromCategories(r.ClassifiedCategories),
		UnclassifiedCategories: fromCategories(r.UnclassifiedCategories),
	}
	for _, reason := range r.BlockingReasons {
		item := BlockingReason{Code: string(reason.Code), Message: reason.Message}
		if reason.Category != classification.UnknownCategory {
			item.Category = reason.Category.String()
		}
		out.BlockingReasons = append(out.BlockingReasons, item)
	}
	return out
}

func fromValuation(v ledger.Valuation) Valuation {
	return Valuation{
		Categories: fromCategoryAmounts(v.Categories),
		Total:      v.Total,
	}
}

func fromSummary(s queries.ClassificationSummary) Summary {
	return Summary{
		ID:               s.ID.Bytes(),
		OrderID:          s.OrderID.Bytes(),
		LotCode:          s.LotCode,
		Status:           s.Status.String(),
		FinalizedAt:      s.FinalizedAt,
		ExpectedWeight:   s.Totals.Expected,
		ClassifiedWeight: s.Totals.Classified,
		RemainingWeight:  s.Totals.Remaining(),
		WasteWeight:      s.Totals.Waste,
		ReturnsWeight:    s.Totals.Returns,
		Progress:         s.Totals.Progress,
		Categories:       fromCategoryAmounts(s.Totals.Categories),
		Prices:           fromPrices(s.Prices),
		Valuation:        fromValuation(s.Valuation),
		Finalization:     fromFinalization(s.Finalization),
	}
}

func fromOrderProgress(p queries.OrderProgress) OrderProgress {
	out := OrderProgress{
		OrderID:          p.OrderID.Bytes(),
		ExpectedWeight:   p.Totals.Expected,
		ClassifiedWeight: p.Totals.Classified,
		RemainingWeight:  p.Totals.Remaining(),
		Progress:         p.Totals.Progress,
		Valuation:        fromValuation(p.Valuation),
		FinalizedCount:   p.Finalized(),
		Classifications:  make([]Summary, 0, len(p.Classifications)),
	}
	for _, s := range p.Classifications {
		out.Classifications = append(out.Classifications, fromSummary(s))
	}
	return out
}
