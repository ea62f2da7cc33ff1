package commands

import (
	"errors"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAdjustCategoryWeightsCommandIsNotConstructed = errors.New(
	"AdjustCategoryWeightsCommand must be created via NewAdjustCategoryWeightsCommand constructor",
)

// AdjustCategoryWeightsCommand corrects several category weights in one action,
// without re-entering pallets. Deltas may be negative. An all-zero correction is
// a valid command that the ledger rejects as a no-op.
type AdjustCategoryWeightsCommand struct { //nolint:recvcheck //using for validation
	classificationID kernel.UUID
	deltas           map[classification.Category]decimal.Decimal

	guard guard.ConstructorGuard
}

func NewAdjustCategoryWeightsCommand(
	classificationID kernel.UUID,
	deltas map[classification.Category]decimal.Decimal,
) (AdjustCategoryWeightsCommand, error) {
	cmd := AdjustCategoryWeightsCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setClassificationID(classificationID),
		cmd.setDeltas(deltas),
	); err != nil {
		return AdjustCategoryWeightsCommand{}, err
	}

	return cmd, nil
}

func (c AdjustCategoryWeightsCommand) Validate() error {
	return c.guard.Validate(ErrAdjustCategoryWeightsCommandIsNotConstructed)
}

func (c AdjustCategoryWeightsCommand) ClassificationID() kernel.UUID {
	return c.classificationID
}

// Deltas returns a copy of the requested corrections.
func (c AdjustCategoryWeightsCommand) Deltas() map[classification.Category]decimal.Decimal {
	out := make(map[classification.Category]decimal.Decimal, len(c.deltas))
	for k, v := range c.deltas {
		out[k] = v
	}
	return out
}

func (c *AdjustCategoryWeightsCommand) setClassificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.classificationID = id
	return nil
}

func (c *AdjustCategoryWeightsCommand) setDeltas(deltas map[classification.Category]decimal.Decimal) error {
	c.deltas = make(map[classification.Category]decimal.Decimal, len(deltas))

	var problems []error
	for category, delta := range deltas {
		if err := category.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		c.deltas[category] = delta.Round(kernel.WeightPrecision)
	}

	return errors.Join(problems...)
}
