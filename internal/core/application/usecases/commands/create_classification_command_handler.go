package commands

import (
	"context"
	"time"

	"packhouse/internal/core/domain/model/classification"

	"go.uber.org/zap"
)

// CreateClassificationCommandHandler persists a newly opened classification.
type CreateClassificationCommandHandler struct {
	gate gate
}

func NewCreateClassificationCommandHandler(
	uowFactory ClassificationUoWFactory,
	recorder DecisionRecorder,
	logger *zap.Logger,
) CreateClassificationCommandHandler {
	return CreateClassificationCommandHandler{gate: newGate(uowFactory, recorder, logger)}
}

func (h *CreateClassificationCommandHandler) Handle(ctx context.Context, cmd CreateClassificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	defer h.gate.recorder.ObserveCommand("create_classification", time.Now())

	c, err := classification.NewClassification(
		cmd.ClassificationID(), cmd.OrderID(), cmd.LotCode(), cmd.ExpectedWeight(), cmd.Prices())
	if err != nil {
		return err
	}

	uow := h.gate.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ClassificationRepository().Add(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.gate.logger.Info("classification opened",
		zap.Stringer("classification_id", c.ID()),
		zap.Stringer("order_id", c.OrderID()),
		zap.String("lot", c.LotCode()),
		zap.Stringer("expected_kg", c.ExpectedWeight()))
	return nil
}
