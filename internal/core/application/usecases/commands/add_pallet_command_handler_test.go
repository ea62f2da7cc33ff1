package commands_test

import (
	"errors"
	"testing"
	"time"

	"packhouse/internal/core/application/usecases/commands"
	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAddPalletCommandHandler_Handle_Accepted(t *testing.T) {
	ctx := t.Context()
	c := openClassification("100")
	cmd, err := commands.NewAddPalletCommand(c.ID(), classification.XL, decimal.NewFromInt(40))
	require.NoError(t, err)

	f := newGatedFixture()
	f.expectLoad(ctx, c)
	f.expectSave(ctx, c)
	f.uow.On("Rollback", ctx).Return(nil).Once()

	recorder := &fakeRecorder{}
	h := commands.NewAddPalletCommandHandler(f.factory, recorder, zap.NewNop())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, ledger.Accepted, result.Outcome)
	require.Len(t, c.Pallets(), 1)
	assert.Equal(t, classification.XL, c.Pallets()[0].Category())
	assert.Equal(t, []decision{{"add_pallet", "accepted", ""}}, recorder.decisions)
	assert.Equal(t, []string{"add_pallet"}, recorder.commands)
	f.assertExpectations(t)
}

func TestAddPalletCommandHandler_Handle_AcceptedWithWarning(t *testing.T) {
	ctx := t.Context()
	c := openClassification("100")
	_, err := c.AddPallet(classification.L, kernel.MustWeight("90"))
	require.NoError(t, err)
	cmd, err := commands.NewAddPalletCommand(c.ID(), classification.M, decimal.NewFromInt(6))
	require.NoError(t, err)

	f := newGatedFixture()
	f.expectLoad(ctx, c)
	f.expectSave(ctx, c)
	f.uow.On("Rollback", ctx).Return(nil).Once()

	core, logs := observer.New(zapcore.InfoLevel)
	h := commands.NewAddPalletCommandHandler(f.factory, nil, zap.New(core))
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.HasWarning())
	assert.Equal(t, ledger.ReasonNearCompletion, result.Reason)
	assert.Len(t, c.Pallets(), 2)
	assert.Equal(t, 1, logs.FilterMessage("operation accepted near completion").Len())
	f.assertExpectations(t)
}

func TestAddPalletCommandHandler_Handle_RejectedOverBudget(t *testing.T) {
	ctx := t.Context()
	c := openClassification("100")
	_, err := c.AddPallet(classification.XL, kernel.MustWeight("95"))
	require.NoError(t, err)
	cmd, err := commands.NewAddPalletCommand(c.ID(), classification.XL, decimal.NewFromInt(10))
	require.NoError(t, err)

	f := newGatedFixture()
	f.expectLoad(ctx, c)
	f.uow.On("Rollback", ctx).Return(nil).Once()

	recorder := &fakeRecorder{}
	h := commands.NewAddPalletCommandHandler(f.factory, recorder, nil)
	result, err := h.Handle(ctx, cmd)

	var rejected *ledger.RejectionError
	require.ErrorAs(t, err, &rejected)
	require.ErrorIs(t, err, ledger.ErrOperationRejected)
	assert.Equal(t, ledger.ReasonBudgetExceeded, rejected.Result.Reason)
	assert.Equal(t, result, rejected.Result)
	assert.True(t, decimal.NewFromInt(5).Equal(result.RemainingWeight))
	assert.Len(t, c.Pallets(), 1, "rejected pallet must not be applied")
	assert.Equal(t, []decision{{"add_pallet", "rejected", "budget_exceeded"}}, recorder.decisions)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestAddPalletCommandHandler_Handle_ZeroWeightIsInvalidInput(t *testing.T) {
	ctx := t.Context()
	c := openClassification("100")
	cmd, err := commands.NewAddPalletCommand(c.ID(), classification.S, decimal.RequireFromString("0.0001"))
	require.NoError(t, err)

	f := newGatedFixture()
	f.expectLoad(ctx, c)
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewAddPalletCommandHandler(f.factory, nil, nil)
	result, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ledger.ErrOperationRejected)
	assert.Equal(t, ledger.ReasonInvalidInput, result.Reason)
	f.assertExpectations(t)
}

func TestAddPalletCommandHandler_Handle_FinalizedClassification(t *testing.T) {
	ctx := t.Context()
	c := openClassification("100")
	require.NoError(t, c.Finalize(time.Now()))
	cmd, err := commands.NewAddPalletCommand(c.ID(), classification.XL, decimal.NewFromInt(1))
	require.NoError(t, err)

	f := newGatedFixture()
	f.expectLoad(ctx, c)
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewAddPalletCommandHandler(f.factory, nil, nil)
	result, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ledger.ErrOperationRejected)
	assert.Equal(t, ledger.ReasonClassificationFinalized, result.Reason)
	f.assertExpectations(t)
}

func TestAddPalletCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockClassificationUoWFactory)
	h := commands.NewAddPalletCommandHandler(factory, nil, nil)

	_, err := h.Handle(t.Context(), commands.AddPalletCommand{})

	require.ErrorIs(t, err, commands.ErrAddPalletCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAddPalletCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAddPalletCommand(kernel.NewUUID(), classification.XL, decimal.NewFromInt(1))

	f := newGatedFixture()
	f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	h := commands.NewAddPalletCommandHandler(f.factory, nil, nil)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	f.assertExpectations(t)
}

func TestAddPalletCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewAddPalletCommand(id, classification.XL, decimal.NewFromInt(1))

	f := newGatedFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("ClassificationRepository").Return(f.repo).Once(),
		f.repo.On("GetForUpdate", ctx, id).Return(nil, errors.New("not found")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewAddPalletCommandHandler(f.factory, nil, nil)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	f.assertExpectations(t)
}

func TestAddPalletCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	c := openClassification("100")
	cmd, _ := commands.NewAddPalletCommand(c.ID(), classification.XL, decimal.NewFromInt(1))

	f := newGatedFixture()
	f.expectLoad(ctx, c)
	f.repo.On("Update", ctx, c).Return(errors.New("version conflict")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewAddPalletCommandHandler(f.factory, nil, nil)
	result, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "version conflict")
	assert.True(t, result.Accepted())
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestNewAddPalletCommand(t *testing.T) {
	_, err := commands.NewAddPalletCommand(kernel.UUID{}, classification.UnknownCategory, decimal.NewFromInt(1))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.Contains(t, err.Error(), "category is invalid")

	cmd, err := commands.NewAddPalletCommand(kernel.NewUUID(), classification.L, decimal.RequireFromString("12.34567"))
	require.NoError(t, err)
	assert.Equal(t, "12.346", cmd.Weight().String())
}
