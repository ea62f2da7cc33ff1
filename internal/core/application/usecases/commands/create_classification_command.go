package commands

import (
	"errors"
	"strings"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/errs"
	"packhouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateClassificationCommandIsNotConstructed = errors.New(
	"CreateClassificationCommand must be created via NewCreateClassificationCommand constructor",
)

// CreateClassificationCommand opens a classification for a lot at order intake.
//
// Example:
//
//	cmd, err := NewCreateClassificationCommand(kernel.NewUUID(), orderID, "LOT-0425",
//	    decimal.NewFromInt(1200), prices)
//	if err != nil {
//	    return fmt.Errorf("invalid classification: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateClassificationCommand struct { //nolint:recvcheck //using for validation
	classificationID kernel.UUID
	orderID          kernel.UUID
	lotCode          string
	expectedWeight   kernel.Weight
	prices           classification.Prices

	guard guard.ConstructorGuard
}

func NewCreateClassificationCommand(
	classificationID kernel.UUID,
	orderID kernel.UUID,
	lotCode string,
	expectedWeight decimal.Decimal,
	prices classification.Prices,
) (CreateClassificationCommand, error) {
	cmd := CreateClassificationCommand{
		prices: prices,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClassificationID(classificationID),
		cmd.setOrderID(orderID),
		cmd.setLotCode(lotCode),
		cmd.setExpectedWeight(expectedWeight),
	); err != nil {
		return CreateClassificationCommand{}, err
	}

	return cmd, nil
}

func (c CreateClassificationCommand) Validate() error {
	return c.guard.Validate(ErrCreateClassificationCommandIsNotConstructed)
}

func (c CreateClassificationCommand) ClassificationID() kernel.UUID {
	return c.classificationID
}

func (c CreateClassificationCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateClassificationCommand) LotCode() string {
	return c.lotCode
}

func (c CreateClassificationCommand) ExpectedWeight() kernel.Weight {
	return c.expectedWeight
}

func (c CreateClassificationCommand) Prices() classification.Prices {
	return c.prices
}

func (c *CreateClassificationCommand) setClassificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.classificationID = id
	return nil
}

func (c *CreateClassificationCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = id
	return nil
}

func (c *CreateClassificationCommand) setLotCode(lotCode string) error {
	lotCode = strings.TrimSpace(lotCode)
	if lotCode == "" {
		return errs.NewValueIsRequiredError("lot code")
	}
	c.lotCode = lotCode
	return nil
}

func (c *CreateClassificationCommand) setExpectedWeight(kg decimal.Decimal) error {
	w, err := kernel.NewPositiveWeight(kg)
	if err != nil {
		return err
	}
	c.expectedWeight = w
	return nil
}
