package commands

import (
	"errors"
	"strings"

	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/errs"
	"packhouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddReturnCommandIsNotConstructed = errors.New(
	"AddReturnCommand must be created via NewAddReturnCommand constructor",
)

// AddReturnCommand records weight returned or rejected by the customer.
type AddReturnCommand struct { //nolint:recvcheck //using for validation
	classificationID kernel.UUID
	weight           decimal.Decimal
	reason           string

	guard guard.ConstructorGuard
}

func NewAddReturnCommand(classificationID kernel.UUID, weight decimal.Decimal, reason string) (AddReturnCommand, error) {
	cmd := AddReturnCommand{
		weight: weight.Round(kernel.WeightPrecision),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClassificationID(classificationID),
		cmd.setReason(reason),
	); err != nil {
		return AddReturnCommand{}, err
	}

	return cmd, nil
}

func (c AddReturnCommand) Validate() error {
	return c.guard.Validate(ErrAddReturnCommandIsNotConstructed)
}

func (c AddReturnCommand) ClassificationID() kernel.UUID {
	return c.classificationID
}

func (c AddReturnCommand) Weight() decimal.Decimal {
	return c.weight
}

func (c AddReturnCommand) Reason() string {
	return c.reason
}

func (c *AddReturnCommand) setClassificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.classificationID = id
	return nil
}

func (c *AddReturnCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("return reason")
	}
	c.reason = reason
	return nil
}
