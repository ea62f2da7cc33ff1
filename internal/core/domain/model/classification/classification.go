package classification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/errs"
	"packhouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrClassificationIsNotConstructed is returned when a Classification was not created
	// through NewClassification or RestoreClassification.
	ErrClassificationIsNotConstructed = errors.New(
		"Classification must be created via NewClassification constructor")

	// ErrClassificationIsFinalized is returned by every mutator once the classification
	// reached its terminal state.
	ErrClassificationIsFinalized = errors.New("classification is finalized")

	// ErrCategoryWeightIsNegative is returned when an adjustment would leave a
	// category below zero kilograms.
	ErrCategoryWeightIsNegative = errors.New("category weight cannot be negative")
)

// Classification is the aggregate root for one lot undergoing classification.
//
// Invariants maintained by the aggregate:
//   - id, order id and lot code are always set
//   - status is Open or Finalized, and Finalized is terminal
//   - every category weight (pallets plus adjustment) is >= 0
//
// The aggregate does not know the shared weight budget; the ledger service decides
// whether a new entry fits before the caller invokes AddPallet, AddWaste, AddReturn
// or ApplyAdjustment.
type Classification struct {
	id             kernel.UUID
	orderID        kernel.UUID
	lotCode        string
	expectedWeight kernel.Weight
	prices         Prices

	// adjustments are manual corrections per category, in kilograms, possibly negative.
	adjustments map[Category]decimal.Decimal

	pallets []*PalletEntry
	wastes  []*WasteEntry
	returns []*ReturnEntry

	status      Status
	finalizedAt *time.Time

	// version is the optimistic-locking counter loaded from storage.
	version uint64

	guard guard.ConstructorGuard
}

// NewClassification opens a classification for a lot at order intake. The
// expected weight is fixed from here on and must be positive.
//
// Example:
//
//	prices := classification.NewPrices(xl, l, m, s)
//	c, err := classification.NewClassification(kernel.NewUUID(), orderID, "LOT-0425", expected, prices)
//	if err != nil {
//	    return err
//	}
func NewClassification(
	id kernel.UUID,
	orderID kernel.UUID,
	lotCode string,
	expectedWeight kernel.Weight,
	prices Prices,
) (*Classification, error) {
	var expectedErr error
	if expectedWeight.IsZero() {
		expectedErr = errs.NewValueIsInvalidErrorWithCause(
			"expected weight is invalid", fmt.Errorf("0 is not greater than 0"))
	}

	c := &Classification{
		prices:      prices,
		adjustments: make(map[Category]decimal.Decimal),
		status:      Open,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setOrderID(orderID),
		c.setLotCode(lotCode),
		expectedErr,
	); err != nil {
		return nil, err
	}

	c.expectedWeight = expectedWeight
	return c, nil
}

// RestoreParams carries the persisted state of a classification.
type RestoreParams struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	LotCode        string
	ExpectedWeight kernel.Weight
	Prices         Prices
	Adjustments    map[Category]decimal.Decimal
	Pallets        []*PalletEntry
	Wastes         []*WasteEntry
	Returns        []*ReturnEntry
	Status         Status
	FinalizedAt    *time.Time
	Version        uint64
}

// RestoreClassification rebuilds an aggregate from storage. Unlike NewClassification it
// accepts a zero expected weight, so legacy lots stay readable.
func RestoreClassification(p RestoreParams) (*Classification, error) {
	c := &Classification{
		expectedWeight: p.ExpectedWeight,
		prices:         p.Prices,
		adjustments:    make(map[Category]decimal.Decimal),
		finalizedAt:    p.FinalizedAt,
		version:        p.Version,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(p.ID),
		c.setOrderID(p.OrderID),
		c.setLotCode(p.LotCode),
		c.setStatus(p.Status),
		c.setAdjustments(p.Adjustments),
		c.setEntries(p.Pallets, p.Wastes, p.Returns),
	); err != nil {
		return nil, err
	}

	if err := c.checkCategoryWeights(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Classification) Validate() error {
	if c == nil {
		return ErrClassificationIsNotConstructed
	}
	return c.guard.Validate(ErrClassificationIsNotConstructed)
}

func (c *Classification) IsEqual(other *Classification) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Classification) ID() kernel.UUID {
	return c.id
}

func (c *Classification) OrderID() kernel.UUID {
	return c.orderID
}

func (c *Classification) LotCode() string {
	return c.lotCode
}

func (c *Classification) ExpectedWeight() kernel.Weight {
	return c.expectedWeight
}

func (c *Classification) Prices() Prices {
	return c.prices
}

func (c *Classification) Status() Status {
	return c.status
}

func (c *Classification) IsFinalized() bool {
	return c.status == Finalized
}

func (c *Classification) FinalizedAt() *time.Time {
	return c.finalizedAt
}

func (c *Classification) Version() uint64 {
	return c.version
}

// MarkPersisted records the version storage assigned after a successful write.
func (c *Classification) MarkPersisted(version uint64) {
	c.version = version
}

// Adjustment returns the manual correction recorded for category, zero if none.
func (c *Classification) Adjustment(category Category) decimal.Decimal {
	return c.adjustments[category]
}

// Pallets returns a copy of the registered pallets.
func (c *Classification) Pallets() []*PalletEntry {
	out := make([]*PalletEntry, len(c.pallets))
	copy(out, c.pallets)
	return out
}

// Wastes returns a copy of the registered waste entries.
func (c *Classification) Wastes() []*WasteEntry {
	out := make([]*WasteEntry, len(c.wastes))
	copy(out, c.wastes)
	return out
}

// Returns returns a copy of the registered return entries.
func (c *Classification) Returns() []*ReturnEntry {
	out := make([]*ReturnEntry, len(c.returns))
	copy(out, c.returns)
	return out
}

// AddPallet appends a pallet of the given category.
func (c *Classification) AddPallet(category Category, weight kernel.Weight) (*PalletEntry, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	pallet, err := NewPalletEntry(kernel.NewUUID(), category, weight)
	if err != nil {
		return nil, err
	}

	c.pallets = append(c.pallets, pallet)
	return pallet, nil
}

// AddWaste appends a waste entry.
func (c *Classification) AddWaste(weight kernel.Weight, description string) (*WasteEntry, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	waste, err := NewWasteEntry(kernel.NewUUID(), weight, description)
	if err != nil {
		return nil, err
	}

	c.wastes = append(c.wastes, waste)
	return waste, nil
}

// AddReturn appends a return entry.
func (c *Classification) AddReturn(weight kernel.Weight, reason string) (*ReturnEntry, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	ret, err := NewReturnEntry(kernel.NewUUID(), weight, reason)
	if err != nil {
		return nil, err
	}

	c.returns = append(c.returns, ret)
	return ret, nil
}

// ApplyAdjustment adds each delta to the manual correction of its category. The
// whole set is rejected if any category would end up negative.
func (c *Classification) ApplyAdjustment(deltas map[Category]decimal.Decimal) error {
	if err := c.ensureOpen(); err != nil {
		return err
	}

	next := make(map[Category]decimal.Decimal, len(c.adjustments))
	for k, v := range c.adjustments {
		next[k] = v
	}

	var problems []error
	for category, delta := range deltas {
		if err := category.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}

		adjusted := next[category].Add(delta)
		if c.palletWeight(category).Add(adjusted).IsNegative() {
			problems = append(problems, fmt.Errorf("%w: %s", ErrCategoryWeightIsNegative, category))
			continue
		}
		next[category] = adjusted
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.adjustments = next
	return nil
}

// SetPrices replaces the category price list.
func (c *Classification) SetPrices(prices Prices) error {
	if err := c.ensureOpen(); err != nil {
		return err
	}

	c.prices = prices
	return nil
}

// Finalize moves the classification to its terminal state.
func (c *Classification) Finalize(at time.Time) error {
	newStatus, err := c.status.Finalize()
	if err != nil {
		return errors.Join(ErrClassificationIsFinalized, err)
	}

	c.status = newStatus
	finalizedAt := at.UTC()
	c.finalizedAt = &finalizedAt
	return nil
}

func (c *Classification) ensureOpen() error {
	if c.status != Open {
		return ErrClassificationIsFinalized
	}
	return nil
}

func (c *Classification) checkCategoryWeights() error {
	var problems []error
	for _, category := range Categories() {
		if total := c.palletWeight(category).Add(c.adjustments[category]); total.IsNegative() {
			problems = append(problems, fmt.Errorf("%w: %s is %s kg", ErrCategoryWeightIsNegative, category, total))
		}
	}
	return errors.Join(problems...)
}

func (c *Classification) palletWeight(category Category) decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.pallets {
		if p.Category() == category {
			total = total.Add(p.Weight().Decimal())
		}
	}
	return total
}

func (c *Classification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Classification) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = orderID
	return nil
}

func (c *Classification) setLotCode(lotCode string) error {
	lotCode = strings.TrimSpace(lotCode)
	if lotCode == "" {
		return errs.NewValueIsRequiredError("lot code")
	}
	c.lotCode = lotCode
	return nil
}

func (c *Classification) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Classification) setAdjustments(adjustments map[Category]decimal.Decimal) error {
	for category, v := range adjustments {
		if err := category.Validate(); err != nil {
			return err
		}
		if !v.IsZero() {
			c.adjustments[category] = v
		}
	}
	return nil
}

func (c *Classification) setEntries(pallets []*PalletEntry, wastes []*WasteEntry, returns []*ReturnEntry) error {
	for _, p := range pallets {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, w := range wastes {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	for _, r := range returns {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	c.pallets = append([]*PalletEntry(nil), pallets...)
	c.wastes = append([]*WasteEntry(nil), wastes...)
	c.returns = append([]*ReturnEntry(nil), returns...)
	return nil
}
