package classification

import (
	"errors"
	"fmt"
	"time"

	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/errs"
	"packhouse/internal/pkg/guard"
)

var (
	// ErrWasteEntryIsNotConstructed indicates a WasteEntry built outside of its constructors.
	ErrWasteEntryIsNotConstructed = errors.New("WasteEntry must be created via NewWasteEntry constructor")

	// ErrReturnEntryIsNotConstructed indicates a ReturnEntry built outside of its constructors.
	ErrReturnEntryIsNotConstructed = errors.New("ReturnEntry must be created via NewReturnEntry constructor")
)

// consumption is the state shared by entries that use up part of the expected
// weight without belonging to any category.
type consumption struct {
	id           kernel.UUID
	weight       kernel.Weight
	note         string
	registeredAt time.Time
	guard        guard.ConstructorGuard
}

func newConsumption(id kernel.UUID, weight kernel.Weight, note, noteName string, registeredAt time.Time) (consumption, error) {
	c := consumption{
		weight:       weight,
		registeredAt: registeredAt,
		guard:        guard.NewConstructorGuard(),
	}

	var noteErr error
	if note == "" {
		noteErr = errs.NewValueIsRequiredError(noteName)
	}

	if err := errors.Join(id.Validate(), noteErr); err != nil {
		return consumption{}, err
	}

	c.id = id
	c.note = note
	return c, nil
}

// WasteEntry is weight discarded during classification (merma).
type WasteEntry struct {
	consumption
}

// NewWasteEntry registers discarded weight. A description of the cause is required.
func NewWasteEntry(id kernel.UUID, weight kernel.Weight, description string) (*WasteEntry, error) {
	if weight.IsZero() {
		return nil, errZeroEntryWeight("waste weight")
	}

	return RestoreWasteEntry(id, weight, description, time.Now().UTC())
}

func RestoreWasteEntry(id kernel.UUID, weight kernel.Weight, description string, registeredAt time.Time) (*WasteEntry, error) {
	c, err := newConsumption(id, weight, description, "waste description", registeredAt)
	if err != nil {
		return nil, err
	}
	return &WasteEntry{consumption: c}, nil
}

func (w *WasteEntry) Validate() error {
	if w == nil {
		return ErrWasteEntryIsNotConstructed
	}
	return w.guard.Validate(ErrWasteEntryIsNotConstructed)
}

func (w *WasteEntry) ID() kernel.UUID         { return w.id }
func (w *WasteEntry) Weight() kernel.Weight   { return w.weight }
func (w *WasteEntry) Description() string     { return w.note }
func (w *WasteEntry) RegisteredAt() time.Time { return w.registeredAt }

// ReturnEntry is weight returned or rejected by the customer (retorno).
type ReturnEntry struct {
	consumption
}

// NewReturnEntry registers returned weight. A reason is required.
func NewReturnEntry(id kernel.UUID, weight kernel.Weight, reason string) (*ReturnEntry, error) {
	if weight.IsZero() {
		return nil, errZeroEntryWeight("return weight")
	}

	return RestoreReturnEntry(id, weight, reason, time.Now().UTC())
}

func RestoreReturnEntry(id kernel.UUID, weight kernel.Weight, reason string, registeredAt time.Time) (*ReturnEntry, error) {
	c, err := newConsumption(id, weight, reason, "return reason", registeredAt)
	if err != nil {
		return nil, err
	}
	return &ReturnEntry{consumption: c}, nil
}

func (r *ReturnEntry) Validate() error {
	if r == nil {
		return ErrReturnEntryIsNotConstructed
	}
	return r.guard.Validate(ErrReturnEntryIsNotConstructed)
}

func (r *ReturnEntry) ID() kernel.UUID         { return r.id }
func (r *ReturnEntry) Weight() kernel.Weight   { return r.weight }
func (r *ReturnEntry) Reason() string          { return r.note }
func (r *ReturnEntry) RegisteredAt() time.Time { return r.registeredAt }

func errZeroEntryWeight(name string) error {
	return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", fmt.Errorf("0 is not greater than 0"))
}
