package commands

import (
	"errors"
	"strings"

	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/errs"
	"packhouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddWasteCommandIsNotConstructed = errors.New(
	"AddWasteCommand must be created via NewAddWasteCommand constructor",
)

// AddWasteCommand records weight discarded during classification.
type AddWasteCommand struct { //nolint:recvcheck //using for validation
	classificationID kernel.UUID
	weight           decimal.Decimal
	description      string

	guard guard.ConstructorGuard
}

func NewAddWasteCommand(classificationID kernel.UUID, weight decimal.Decimal, description string) (AddWasteCommand, error) {
	cmd := AddWasteCommand{
		weight: weight.Round(kernel.WeightPrecision),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClassificationID(classificationID),
		cmd.setDescription(description),
	); err != nil {
		return AddWasteCommand{}, err
	}

	return cmd, nil
}

func (c AddWasteCommand) Validate() error {
	return c.guard.Validate(ErrAddWasteCommandIsNotConstructed)
}

func (c AddWasteCommand) ClassificationID() kernel.UUID {
	return c.classificationID
}

func (c AddWasteCommand) Weight() decimal.Decimal {
	return c.weight
}

func (c AddWasteCommand) Description() string {
	return c.description
}

func (c *AddWasteCommand) setClassificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.classificationID = id
	return nil
}

func (c *AddWasteCommand) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("waste description")
	}
	c.description = description
	return nil
}
