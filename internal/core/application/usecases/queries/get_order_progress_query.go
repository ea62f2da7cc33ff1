package queries

import (
	"errors"

	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"
	"packhouse/internal/pkg/guard"
)

var ErrGetOrderProgressQueryIsNotConstructed = errors.New(
	"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
)

// GetOrderProgressQuery aggregates every classification registered for an order.
type GetOrderProgressQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderProgressQuery(orderID kernel.UUID) (GetOrderProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProgressQuery{}, err
	}

	return GetOrderProgressQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderProgress combines the classifications of one order. Totals treat them as a
// single shared budget; Classifications keeps each lot's own view.
type OrderProgress struct {
	OrderID         kernel.UUID
	Totals          ledger.AggregatedTotals
	Valuation       ledger.Valuation
	Classifications []ClassificationSummary
}

// Finalized counts the classifications already in their terminal state.
func (p OrderProgress) Finalized() int {
	n := 0
	for _, s := range p.Classifications {
		if s.FinalizedAt != nil {
			n++
		}
	}
	return n
}
