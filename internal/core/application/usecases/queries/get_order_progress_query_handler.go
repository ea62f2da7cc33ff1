package queries

import (
	"context"

	"packhouse/internal/core/domain/services/ledger"
	"packhouse/internal/pkg/errs"
)

// GetOrderProgressQueryHandler batches all classifications of an order through
// the ledger.
type GetOrderProgressQueryHandler struct {
	reader ClassificationReader
}

func NewGetOrderProgressQueryHandler(reader ClassificationReader) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{reader: reader}
}

// Handle returns ObjectNotFoundError when the order has no classification.
func (h GetOrderProgressQueryHandler) Handle(ctx context.Context, query GetOrderProgressQuery) (OrderProgress, error) {
	if err := query.Validate(); err != nil {
		return OrderProgress{}, err
	}

	records, err := h.reader.ListByOrder(ctx, query.OrderID())
	if err != nil {
		return OrderProgress{}, err
	}
	if len(records) == 0 {
		return OrderProgress{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	totals, err := ledger.Aggregate(records)
	if err != nil {
		return OrderProgress{}, err
	}

	valuation, err := ledger.Value(records)
	if err != nil {
		return OrderProgress{}, err
	}

	progress := OrderProgress{
		OrderID:         query.OrderID(),
		Totals:          totals,
		Valuation:       valuation,
		Classifications: make([]ClassificationSummary, 0, len(records)),
	}

	for _, c := range records {
		summary, sumErr := Summarize(c)
		if sumErr != nil {
			return OrderProgress{}, sumErr
		}
		progress.Classifications = append(progress.Classifications, summary)
	}

	return progress, nil
}
