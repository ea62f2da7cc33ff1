// Package queries holds the read side of the classification ledger. Summaries
// are computed from loaded aggregates through the ledger service; plain listings
// go straight to SQL.
package queries

import (
	"context"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
)

// ClassificationReader is the read-only slice of the classification repository
// used by summary queries.
type ClassificationReader interface {
	Get(ctx context.Context, id kernel.UUID) (*classification.Classification, error)
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*classification.Classification, error)
}
