package commands

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SetPricesCommandHandler updates prices. Pricing is not budget-gated; the
// aggregate refuses the change once finalized.
type SetPricesCommandHandler struct {
	gate gate
}

func NewSetPricesCommandHandler(
	uowFactory ClassificationUoWFactory,
	recorder DecisionRecorder,
	logger *zap.Logger,
) SetPricesCommandHandler {
	return SetPricesCommandHandler{gate: newGate(uowFactory, recorder, logger)}
}

func (h *SetPricesCommandHandler) Handle(ctx context.Context, cmd SetPricesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	defer h.gate.recorder.ObserveCommand("set_prices", time.Now())

	uow := h.gate.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ClassificationRepository()
	c, err := repo.GetForUpdate(ctx, cmd.ClassificationID())
	if err != nil {
		return err
	}

	if err = c.SetPrices(cmd.Prices()); err != nil {
		return err
	}

	if err = repo.Update(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.gate.logger.Info("prices updated", zap.Stringer("classification_id", c.ID()), zap.String("lot", c.LotCode()))
	return nil
}
