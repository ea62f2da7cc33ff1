package queries

import (
	"errors"
	"time"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"
	"packhouse/internal/pkg/guard"
)

var ErrGetClassificationSummaryQueryIsNotConstructed = errors.New(
	"GetClassificationSummaryQuery must be created via NewGetClassificationSummaryQuery constructor",
)

// GetClassificationSummaryQuery asks for the ledger view of one classification.
type GetClassificationSummaryQuery struct {
	classificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetClassificationSummaryQuery(classificationID kernel.UUID) (GetClassificationSummaryQuery, error) {
	if err := classificationID.Validate(); err != nil {
		return GetClassificationSummaryQuery{}, err
	}

	return GetClassificationSummaryQuery{
		classificationID: classificationID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (q GetClassificationSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetClassificationSummaryQueryIsNotConstructed)
}

func (q GetClassificationSummaryQuery) ClassificationID() kernel.UUID {
	return q.classificationID
}

// ClassificationSummary is everything an operator needs to decide the next step
// on a lot: running totals, progress, whether it can be finalized and what it is
// worth at current prices.
type ClassificationSummary struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	LotCode     string
	Status      classification.Status
	Prices      classification.Prices
	FinalizedAt *time.Time

	Totals       ledger.AggregatedTotals
	Finalization ledger.FinalizationResult
	Valuation    ledger.Valuation
}

// Summarize evaluates c through the ledger.
func Summarize(c *classification.Classification) (ClassificationSummary, error) {
	records := []*classification.Classification{c}

	totals, err := ledger.Aggregate(records)
	if err != nil {
		return ClassificationSummary{}, err
	}

	finalization, err := ledger.EvaluateFinalization(records, totals.Progress)
	if err != nil {
		return ClassificationSummary{}, err
	}

	valuation, err := ledger.Value(records)
	if err != nil {
		return ClassificationSummary{}, err
	}

	return ClassificationSummary{
		ID:           c.ID(),
		OrderID:      c.OrderID(),
		LotCode:      c.LotCode(),
		Status:       c.Status(),
		Prices:       c.Prices(),
		FinalizedAt:  c.FinalizedAt(),
		Totals:       totals,
		Finalization: finalization,
		Valuation:    valuation,
	}, nil
}

// ReadyToFinalize reports an open classification whose finalization gate passes.
func (s ClassificationSummary) ReadyToFinalize() bool {
	return s.Status == classification.Open && s.Finalization.CanFinalize
}
