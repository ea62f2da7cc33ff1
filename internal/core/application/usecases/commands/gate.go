package commands

import (
	"context"
	"time"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"

	"go.uber.org/zap"
)

// gate runs the lock, decide, apply, persist sequence shared by every ledger
// gated command.
type gate struct {
	uowFactory ClassificationUoWFactory
	recorder   DecisionRecorder
	logger     *zap.Logger
}

func newGate(uowFactory ClassificationUoWFactory, recorder DecisionRecorder, logger *zap.Logger) gate {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return gate{
		uowFactory: uowFactory,
		recorder:   recorder,
		logger:     logger,
	}
}

type (
	decideFunc func(c *classification.Classification) (ledger.ValidationResult, error)
	applyFunc  func(c *classification.Classification) error
)

// run loads the classification under a row lock and calls apply only when
// decide accepts. A rejection is returned both as the result and as a
// *ledger.RejectionError.
func (g gate) run(
	ctx context.Context,
	command string,
	id kernel.UUID,
	decide decideFunc,
	apply applyFunc,
) (ledger.ValidationResult, error) {
	defer g.recorder.ObserveCommand(command, time.Now())

	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ledger.ValidationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ClassificationRepository()
	c, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return ledger.ValidationResult{}, err
	}

	result, err := decide(c)
	if err != nil {
		return ledger.ValidationResult{}, err
	}

	g.recorder.RecordDecision(command, result.Outcome.String(), string(result.Reason))
	logger := g.logger.With(
		zap.String("command", command),
		zap.Stringer("classification_id", id),
		zap.String("lot", c.LotCode()),
		zap.Stringer("outcome", result.Outcome),
	)

	if !result.Accepted() {
		logger.Info("operation rejected",
			zap.String("reason", string(result.Reason)),
			zap.String("message", result.Message),
			zap.Stringer("remaining_kg", result.RemainingWeight))
		return result, ledger.NewRejectionError(result)
	}

	if err = apply(c); err != nil {
		return result, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	if result.HasWarning() {
		logger.Warn("operation accepted near completion", zap.String("message", result.Message))
	} else {
		logger.Debug("operation accepted")
	}

	return result, nil
}
