package commands

import (
	"context"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/services/ledger"

	"go.uber.org/zap"
)

// AdjustCategoryWeightsCommandHandler applies a correction accepted by the ledger.
// Only the non-zero deltas reach the aggregate.
type AdjustCategoryWeightsCommandHandler struct {
	gate gate
}

func NewAdjustCategoryWeightsCommandHandler(
	uowFactory ClassificationUoWFactory,
	recorder DecisionRecorder,
	logger *zap.Logger,
) AdjustCategoryWeightsCommandHandler {
	return AdjustCategoryWeightsCommandHandler{gate: newGate(uowFactory, recorder, logger)}
}

func (h *AdjustCategoryWeightsCommandHandler) Handle(
	ctx context.Context,
	cmd AdjustCategoryWeightsCommand,
) (ledger.AdjustmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ledger.AdjustmentResult{}, err
	}

	var adjustment ledger.AdjustmentResult
	result, err := h.gate.run(ctx, "adjust_category_weights", cmd.ClassificationID(),
		func(c *classification.Classification) (ledger.ValidationResult, error) {
			var err error
			adjustment, err = ledger.ValidateAdjustment(cmd.Deltas(), []*classification.Classification{c})
			return adjustment.ValidationResult, err
		},
		func(c *classification.Classification) error {
			return c.ApplyAdjustment(adjustment.Deltas)
		},
	)

	adjustment.ValidationResult = result
	return adjustment, err
}
