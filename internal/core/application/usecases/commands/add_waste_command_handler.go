package commands

import (
	"context"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"

	"go.uber.org/zap"
)

// AddWasteCommandHandler records waste weight when the ledger accepts it.
type AddWasteCommandHandler struct {
	gate gate
}

func NewAddWasteCommandHandler(
	uowFactory ClassificationUoWFactory,
	recorder DecisionRecorder,
	logger *zap.Logger,
) AddWasteCommandHandler {
	return AddWasteCommandHandler{gate: newGate(uowFactory, recorder, logger)}
}

func (h *AddWasteCommandHandler) Handle(ctx context.Context, cmd AddWasteCommand) (ledger.ValidationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ledger.ValidationResult{}, err
	}

	return h.gate.run(ctx, "add_waste", cmd.ClassificationID(),
		func(c *classification.Classification) (ledger.ValidationResult, error) {
			return ledger.ValidateOperation(cmd.Weight(), ledger.WasteOperation, []*classification.Classification{c})
		},
		func(c *classification.Classification) error {
			weight, err := kernel.NewPositiveWeight(cmd.Weight())
			if err != nil {
				return err
			}
			_, err = c.AddWaste(weight, cmd.Description())
			return err
		},
	)
}
