package classification

import (
	"errors"
	"time"

	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/guard"
)

// ErrPalletEntryIsNotConstructed indicates a PalletEntry built outside of its constructors.
var ErrPalletEntryIsNotConstructed = errors.New("PalletEntry must be created via NewPalletEntry constructor")

// PalletEntry is one physical pallet (tarima) of classified product. It belongs to
// exactly one category and is never modified once registered.
type PalletEntry struct {
	id           kernel.UUID
	category     Category
	weight       kernel.Weight
	registeredAt time.Time
	guard        guard.ConstructorGuard
}

// NewPalletEntry registers a new pallet. The weight must be strictly positive.
//
// Example:
//
//	pallet, err := classification.NewPalletEntry(kernel.NewUUID(), classification.XL, weight)
//	if err != nil {
//	    return err
//	}
func NewPalletEntry(id kernel.UUID, category Category, weight kernel.Weight) (*PalletEntry, error) {
	if weight.IsZero() {
		return nil, errZeroEntryWeight("pallet weight")
	}

	return RestorePalletEntry(id, category, weight, time.Now().UTC())
}

// RestorePalletEntry rebuilds a persisted pallet. Zero weights are accepted so
// historical rows remain loadable.
func RestorePalletEntry(
	id kernel.UUID,
	category Category,
	weight kernel.Weight,
	registeredAt time.Time,
) (*PalletEntry, error) {
	pallet := &PalletEntry{
		weight:       weight,
		registeredAt: registeredAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pallet.setID(id),
		pallet.setCategory(category),
	); err != nil {
		return nil, err
	}

	return pallet, nil
}

func (p *PalletEntry) Validate() error {
	if p == nil {
		return ErrPalletEntryIsNotConstructed
	}
	return p.guard.Validate(ErrPalletEntryIsNotConstructed)
}

func (p *PalletEntry) IsEqual(other *PalletEntry) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *PalletEntry) ID() kernel.UUID {
	return p.id
}

func (p *PalletEntry) Category() Category {
	return p.category
}

func (p *PalletEntry) Weight() kernel.Weight {
	return p.weight
}

func (p *PalletEntry) RegisteredAt() time.Time {
	return p.registeredAt
}

func (p *PalletEntry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PalletEntry) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	p.category = category
	return nil
}
