package queries

import (
	"context"
	"time"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOpenClassificationsQueryHandler reads the open list without loading entries.
type GetOpenClassificationsQueryHandler struct {
	db *gorm.DB
}

func NewGetOpenClassificationsQueryHandler(db *gorm.DB) GetOpenClassificationsQueryHandler {
	return GetOpenClassificationsQueryHandler{db: db}
}

// Handle returns open classifications, oldest first.
func (h GetOpenClassificationsQueryHandler) Handle(
	ctx context.Context,
	query GetOpenClassificationsQuery,
) ([]GetOpenClassificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			lot_code,
			expected_weight,
			created_at
		FROM classifications
		WHERE status = ?
		ORDER BY created_at, id
	`, int(classification.Open)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	open := make([]GetOpenClassificationsQueryResponse, 0)
	for rows.Next() {
		var (
			id, orderID uuid.UUID
			lotCode     string
			expected    decimal.Decimal
			createdAt   time.Time
		)

		if err = rows.Scan(&id, &orderID, &lotCode, &expected, &createdAt); err != nil {
			return nil, err
		}

		classificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		order, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		open = append(open, GetOpenClassificationsQueryResponse{
			ID:             classificationID,
			OrderID:        order,
			LotCode:        lotCode,
			ExpectedWeight: expected,
			CreatedAt:      createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return open, nil
}
