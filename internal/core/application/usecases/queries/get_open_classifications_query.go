package queries

import (
	"errors"
	"time"

	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOpenClassificationsQueryIsNotConstructed = errors.New(
	"GetOpenClassificationsQuery must be created via NewGetOpenClassificationsQuery constructor",
)

// GetOpenClassificationsQuery lists classifications still accepting entries.
type GetOpenClassificationsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOpenClassificationsQuery() GetOpenClassificationsQuery {
	return GetOpenClassificationsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOpenClassificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenClassificationsQueryIsNotConstructed)
}

// GetOpenClassificationsQueryResponse is one row of the open list.
type GetOpenClassificationsQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	LotCode        string
	ExpectedWeight decimal.Decimal
	CreatedAt      time.Time
}
