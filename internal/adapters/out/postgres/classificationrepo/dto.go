// Package classificationrepo persists Classification aggregates with gorm.
// Pallets, waste and return entries live in child tables keyed by the
// classification id; category prices and adjustments are flat columns.
package classificationrepo

import (
	"errors"
	"time"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClassificationDTO is the row stored in the classifications table.
type ClassificationDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	LotCode        string          `gorm:"type:varchar(64);not null"`
	ExpectedWeight decimal.Decimal `gorm:"type:decimal(12,3);not null"`

	PriceXL decimal.Decimal `gorm:"column:price_xl;type:decimal(12,2);not null;default:0"`
	PriceL  decimal.Decimal `gorm:"column:price_l;type:decimal(12,2);not null;default:0"`
	PriceM  decimal.Decimal `gorm:"column:price_m;type:decimal(12,2);not null;default:0"`
	PriceS  decimal.Decimal `gorm:"column:price_s;type:decimal(12,2);not null;default:0"`

	AdjustmentXL decimal.Decimal `gorm:"column:adjustment_xl;type:decimal(12,3);not null;default:0"`
	AdjustmentL  decimal.Decimal `gorm:"column:adjustment_l;type:decimal(12,3);not null;default:0"`
	AdjustmentM  decimal.Decimal `gorm:"column:adjustment_m;type:decimal(12,3);not null;default:0"`
	AdjustmentS  decimal.Decimal `gorm:"column:adjustment_s;type:decimal(12,3);not null;default:0"`

	Status      int        `gorm:"type:smallint;not null;index"`
	FinalizedAt *time.Time `gorm:"type:timestamptz"`
	Version     uint64     `gorm:"not null;default:0"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`

	Pallets []PalletDTO `gorm:"foreignKey:ClassificationID;constraint:OnDelete:CASCADE"`
	Wastes  []WasteDTO  `gorm:"foreignKey:ClassificationID;constraint:OnDelete:CASCADE"`
	Returns []ReturnDTO `gorm:"foreignKey:ClassificationID;constraint:OnDelete:CASCADE"`
}

func (ClassificationDTO) TableName() string {
	return "classifications"
}

// PalletDTO is one classified pallet.
type PalletDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClassificationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category         int             `gorm:"type:smallint;not null"`
	Weight           decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	RegisteredAt     time.Time       `gorm:"type:timestamptz;not null"`
}

func (PalletDTO) TableName() string {
	return "pallet_entries"
}

// WasteDTO is one waste entry.
type WasteDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClassificationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Weight           decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Description      string          `gorm:"type:varchar(255);not null"`
	RegisteredAt     time.Time       `gorm:"type:timestamptz;not null"`
}

func (WasteDTO) TableName() string {
	return "waste_entries"
}

// ReturnDTO is one return entry.
type ReturnDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClassificationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Weight           decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Reason           string          `gorm:"type:varchar(255);not null"`
	RegisteredAt     time.Time       `gorm:"type:timestamptz;not null"`
}

func (ReturnDTO) TableName() string {
	return "return_entries"
}

// Models lists every table owned by this repository, in migration order.
func Models() []any {
	return []any{&ClassificationDTO{}, &PalletDTO{}, &WasteDTO{}, &ReturnDTO{}}
}

func fromDomain(aggregate *classification.Classification) ClassificationDTO {
	id := aggregate.ID().Bytes()
	prices := aggregate.Prices()

	dto := ClassificationDTO{
		ID:             id,
		OrderID:        aggregate.OrderID().Bytes(),
		LotCode:        aggregate.LotCode(),
		ExpectedWeight: aggregate.ExpectedWeight().Decimal(),
		PriceXL:        prices.For(classification.XL).Decimal(),
		PriceL:         prices.For(classification.L).Decimal(),
		PriceM:         prices.For(classification.M).Decimal(),
		PriceS:         prices.For(classification.S).Decimal(),
		AdjustmentXL:   aggregate.Adjustment(classification.XL),
		AdjustmentL:    aggregate.Adjustment(classification.L),
		AdjustmentM:    aggregate.Adjustment(classification.M),
		AdjustmentS:    aggregate.Adjustment(classification.S),
		Status:         int(aggregate.Status()),
		FinalizedAt:    aggregate.FinalizedAt(),
		Version:        aggregate.Version(),
	}

	for _, p := range aggregate.Pallets() {
		dto.Pallets = append(dto.Pallets, PalletDTO{
			ID:               p.ID().Bytes(),
			ClassificationID: id,
			Category:         int(p.Category()),
			Weight:           p.Weight().Decimal(),
			RegisteredAt:     p.RegisteredAt(),
		})
	}
	for _, w := range aggregate.Wastes() {
		dto.Wastes = append(dto.Wastes, WasteDTO{
			ID:               w.ID().Bytes(),
			ClassificationID: id,
			Weight:           w.Weight().Decimal(),
			Description:      w.Description(),
			RegisteredAt:     w.RegisteredAt(),
		})
	}
	for _, r := range aggregate.Returns() {
		dto.Returns = append(dto.Returns, ReturnDTO{
			ID:               r.ID().Bytes(),
			ClassificationID: id,
			Weight:           r.Weight().Decimal(),
			Reason:           r.Reason(),
			RegisteredAt:     r.RegisteredAt(),
		})
	}

	return dto
}

func toDomain(dto ClassificationDTO) (*classification.Classification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	expected, err := kernel.NewWeight(dto.ExpectedWeight)
	if err != nil {
		return nil, err
	}

	prices, err := restorePrices(dto)
	if err != nil {
		return nil, err
	}

	pallets := make([]*classification.PalletEntry, 0, len(dto.Pallets))
	for _, p := range dto.Pallets {
		entry, err := restorePallet(p)
		if err != nil {
			return nil, err
		}
		pallets = append(pallets, entry)
	}

	wastes := make([]*classification.WasteEntry, 0, len(dto.Wastes))
	for _, w := range dto.Wastes {
		entry, err := restoreWaste(w)
		if err != nil {
			return nil, err
		}
		wastes = append(wastes, entry)
	}

	returns := make([]*classification.ReturnEntry, 0, len(dto.Returns))
	for _, r := range dto.Returns {
		entry, err := restoreReturn(r)
		if err != nil {
			return nil, err
		}
		returns = append(returns, entry)
	}

	return classification.RestoreClassification(classification.RestoreParams{
		ID:             id,
		OrderID:        orderID,
		LotCode:        dto.LotCode,
		ExpectedWeight: expected,
		Prices:         prices,
		Adjustments: map[classification.Category]decimal.Decimal{
			classification.XL: dto.AdjustmentXL,
			classification.L:  dto.AdjustmentL,
			classification.M:  dto.AdjustmentM,
			classification.S:  dto.AdjustmentS,
		},
		Pallets:     pallets,
		Wastes:      wastes,
		Returns:     returns,
		Status:      classification.Status(dto.Status),
		FinalizedAt: dto.FinalizedAt,
		Version:     dto.Version,
	})
}

func restorePrices(dto ClassificationDTO) (classification.Prices, error) {
	xl, errXL := kernel.NewPrice(dto.PriceXL)
	l, errL := kernel.NewPrice(dto.PriceL)
	m, errM := kernel.NewPrice(dto.PriceM)
	s, errS := kernel.NewPrice(dto.PriceS)
	if err := errors.Join(errXL, errL, errM, errS); err != nil {
		return classification.Prices{}, err
	}

	return classification.NewPrices(xl, l, m, s), nil
}

func restorePallet(dto PalletDTO) (*classification.PalletEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	return classification.RestorePalletEntry(id, classification.Category(dto.Category), weight, dto.RegisteredAt)
}

func restoreWaste(dto WasteDTO) (*classification.WasteEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	return classification.RestoreWasteEntry(id, weight, dto.Description, dto.RegisteredAt)
}

func restoreReturn(dto ReturnDTO) (*classification.ReturnEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	return classification.RestoreReturnEntry(id, weight, dto.Reason, dto.RegisteredAt)
}
