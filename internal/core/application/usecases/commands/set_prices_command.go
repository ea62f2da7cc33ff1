package commands

import (
	"errors"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/guard"
)

var ErrSetPricesCommandIsNotConstructed = errors.New(
	"SetPricesCommand must be created via NewSetPricesCommand constructor",
)

// SetPricesCommand replaces the category prices of an open classification.
type SetPricesCommand struct { //nolint:recvcheck //using for validation
	classificationID kernel.UUID
	prices           classification.Prices

	guard guard.ConstructorGuard
}

func NewSetPricesCommand(classificationID kernel.UUID, prices classification.Prices) (SetPricesCommand, error) {
	if err := classificationID.Validate(); err != nil {
		return SetPricesCommand{}, err
	}

	return SetPricesCommand{
		classificationID: classificationID,
		prices:           prices,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c SetPricesCommand) Validate() error {
	return c.guard.Validate(ErrSetPricesCommandIsNotConstructed)
}

func (c SetPricesCommand) ClassificationID() kernel.UUID {
	return c.classificationID
}

func (c SetPricesCommand) Prices() classification.Prices {
	return c.prices
}
