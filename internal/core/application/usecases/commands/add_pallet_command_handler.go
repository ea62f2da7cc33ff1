package commands

import (
	"context"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"

	"go.uber.org/zap"
)

// AddPalletCommandHandler adds a pallet when the ledger accepts its weight.
//
// Example:
//
//	cmd, _ := NewAddPalletCommand(id, classification.XL, decimal.RequireFromString("412.5"))
//	result, err := handler.Handle(ctx, cmd)
//	var rejected *ledger.RejectionError
//	if errors.As(err, &rejected) {
//	    // show rejected.Result.Message and rejected.Result.RemainingWeight
//	}
//	if result.HasWarning() {
//	    // lot is nearly complete
//	}
type AddPalletCommandHandler struct {
	gate gate
}

func NewAddPalletCommandHandler(
	uowFactory ClassificationUoWFactory,
	recorder DecisionRecorder,
	logger *zap.Logger,
) AddPalletCommandHandler {
	return AddPalletCommandHandler{gate: newGate(uowFactory, recorder, logger)}
}

func (h *AddPalletCommandHandler) Handle(ctx context.Context, cmd AddPalletCommand) (ledger.ValidationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ledger.ValidationResult{}, err
	}

	return h.gate.run(ctx, "add_pallet", cmd.ClassificationID(),
		func(c *classification.Classification) (ledger.ValidationResult, error) {
			return ledger.ValidateOperation(cmd.Weight(), ledger.PalletOperation, []*classification.Classification{c})
		},
		func(c *classification.Classification) error {
			weight, err := kernel.NewPositiveWeight(cmd.Weight())
			if err != nil {
				return err
			}
			_, err = c.AddPallet(cmd.Category(), weight)
			return err
		},
	)
}
