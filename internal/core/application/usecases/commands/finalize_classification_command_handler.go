package commands

import (
	"context"
	"time"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/services/ledger"

	"go.uber.org/zap"
)

// FinalizeClassificationCommandHandler finalizes a classification when the
// finalization gate allows it. A blocked attempt returns every blocking reason
// as a *ledger.FinalizationBlockedError.
type FinalizeClassificationCommandHandler struct {
	gate gate
	now  func() time.Time
}

func NewFinalizeClassificationCommandHandler(
	uowFactory ClassificationUoWFactory,
	recorder DecisionRecorder,
	logger *zap.Logger,
) FinalizeClassificationCommandHandler {
	return FinalizeClassificationCommandHandler{
		gate: newGate(uowFactory, recorder, logger),
		now:  time.Now,
	}
}

func (h *FinalizeClassificationCommandHandler) Handle(
	ctx context.Context,
	cmd FinalizeClassificationCommand,
) (ledger.FinalizationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ledger.FinalizationResult{}, err
	}
	defer h.gate.recorder.ObserveCommand("finalize_classification", time.Now())

	uow := h.gate.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ledger.FinalizationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ClassificationRepository()
	c, err := repo.GetForUpdate(ctx, cmd.ClassificationID())
	if err != nil {
		return ledger.FinalizationResult{}, err
	}

	records := []*classification.Classification{c}
	totals, err := ledger.Aggregate(records)
	if err != nil {
		return ledger.FinalizationResult{}, err
	}

	result, err := ledger.EvaluateFinalization(records, ledger.Progress(totals))
	if err != nil {
		return ledger.FinalizationResult{}, err
	}

	h.gate.recorder.RecordFinalization(result.CanFinalize)
	logger := h.gate.logger.With(zap.Stringer("classification_id", c.ID()), zap.String("lot", c.LotCode()))

	if !result.CanFinalize {
		logger.Info("finalization blocked", zap.Strings("reasons", result.Messages()))
		return result, ledger.NewFinalizationBlockedError(result)
	}

	if err = c.Finalize(h.now()); err != nil {
		return result, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	logger.Info("classification finalized", zap.Float64("progress", totals.Progress))
	return result, nil
}
