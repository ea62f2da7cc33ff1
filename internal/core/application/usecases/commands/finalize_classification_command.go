package commands

import (
	"errors"

	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/pkg/guard"
)

var ErrFinalizeClassificationCommandIsNotConstructed = errors.New(
	"FinalizeClassificationCommand must be created via NewFinalizeClassificationCommand constructor",
)

// FinalizeClassificationCommand moves a classification to its terminal state.
type FinalizeClassificationCommand struct { //nolint:recvcheck //using for validation
	classificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewFinalizeClassificationCommand(classificationID kernel.UUID) (FinalizeClassificationCommand, error) {
	if err := classificationID.Validate(); err != nil {
		return FinalizeClassificationCommand{}, err
	}

	return FinalizeClassificationCommand{
		classificationID: classificationID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c FinalizeClassificationCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeClassificationCommandIsNotConstructed)
}

func (c FinalizeClassificationCommand) ClassificationID() kernel.UUID {
	return c.classificationID
}
