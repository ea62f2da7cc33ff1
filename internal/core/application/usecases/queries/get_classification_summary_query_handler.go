package queries

import (
	"context"
)

// GetClassificationSummaryQueryHandler loads one classification and runs it
// through the ledger. Nothing is locked; the answer is advisory.
type GetClassificationSummaryQueryHandler struct {
	reader ClassificationReader
}

func NewGetClassificationSummaryQueryHandler(reader ClassificationReader) GetClassificationSummaryQueryHandler {
	return GetClassificationSummaryQueryHandler{reader: reader}
}

func (h GetClassificationSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetClassificationSummaryQuery,
) (ClassificationSummary, error) {
	if err := query.Validate(); err != nil {
		return ClassificationSummary{}, err
	}

	c, err := h.reader.Get(ctx, query.ClassificationID())
	if err != nil {
		return ClassificationSummary{}, err
	}

	return Summarize(c)
}
