// Package ports defines the persistence contracts of the classification domain.
// Adapters in internal/adapters/out implement them; use cases depend only on
// these interfaces.
package ports

import (
	"context"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
)

// ClassificationRepository stores Classification aggregates together with their
// pallets, waste and return entries.
type ClassificationRepository interface {
	// Add persists a newly opened classification.
	Add(ctx context.Context, aggregate *classification.Classification) error

	// Update persists changes to an existing classification. New entries are
	// inserted, existing ones are left untouched. Returns errs.ErrVersionIsInvalid
	// when the stored version differs from the aggregate's.
	Update(ctx context.Context, aggregate *classification.Classification) error

	// Get loads a classification with all of its entries.
	Get(ctx context.Context, id kernel.UUID) (*classification.Classification, error)

	// GetForUpdate is Get with a row lock held until the surrounding transaction
	// ends, so that two submissions against one classification are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*classification.Classification, error)

	// ListByOrder returns every classification of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*classification.Classification, error)

	// ListOpen returns every classification that is not finalized yet.
	ListOpen(ctx context.Context) ([]*classification.Classification, error)
}
