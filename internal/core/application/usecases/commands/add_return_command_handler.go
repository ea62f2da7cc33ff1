package commands

import (
	"context"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"

	"go.uber.org/zap"
)

// AddReturnCommandHandler records return weight when the ledger accepts it.
type AddReturnCommandHandler struct {
	gate gate
}

func NewAddReturnCommandHandler(
	uowFactory ClassificationUoWFactory,
	recorder DecisionRecorder,
	logger *zap.Logger,
) AddReturnCommandHandler {
	return AddReturnCommandHandler{gate: newGate(uowFactory, recorder, logger)}
}

func (h *AddReturnCommandHandler) Handle(ctx context.Context, cmd AddReturnCommand) (ledger.ValidationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ledger.ValidationResult{}, err
	}

	return h.gate.run(ctx, "add_return", cmd.ClassificationID(),
		func(c *classification.Classification) (ledger.ValidationResult, error) {
			return ledger.ValidateOperation(cmd.Weight(), ledger.ReturnOperation, []*classification.Classification{c})
		},
		func(c *classification.Classification) error {
			weight, err := kernel.NewPositiveWeight(cmd.Weight())
			if err != nil {
				return err
			}
			_, err = c.AddReturn(weight, cmd.Reason())
			return err
		},
	)
}
