package commands

import (
	"errors"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddPalletCommandIsNotConstructed = errors.New(
	"AddPalletCommand must be created via NewAddPalletCommand constructor",
)

// AddPalletCommand registers a pallet of one category. The weight is not
// checked here: a non-positive weight is a ledger rejection, not a malformed
// command.
type AddPalletCommand struct { //nolint:recvcheck //using for validation
	classificationID kernel.UUID
	category         classification.Category
	weight           decimal.Decimal

	guard guard.ConstructorGuard
}

func NewAddPalletCommand(
	classificationID kernel.UUID,
	category classification.Category,
	weight decimal.Decimal,
) (AddPalletCommand, error) {
	cmd := AddPalletCommand{
		weight: weight.Round(kernel.WeightPrecision),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClassificationID(classificationID),
		cmd.setCategory(category),
	); err != nil {
		return AddPalletCommand{}, err
	}

	return cmd, nil
}

func (c AddPalletCommand) Validate() error {
	return c.guard.Validate(ErrAddPalletCommandIsNotConstructed)
}

func (c AddPalletCommand) ClassificationID() kernel.UUID {
	return c.classificationID
}

func (c AddPalletCommand) Category() classification.Category {
	return c.category
}

func (c AddPalletCommand) Weight() decimal.Decimal {
	return c.weight
}

func (c *AddPalletCommand) setClassificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.classificationID = id
	return nil
}

func (c *AddPalletCommand) setCategory(category classification.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	c.category = category
	return nil
}
