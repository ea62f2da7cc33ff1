package commands_test

import (
	"context"
	"sync"
	"time"

	"packhouse/internal/core/application/usecases/commands"
	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockClassificationRepository struct{ mock.Mock }

func (m *MockClassificationRepository) Add(ctx context.Context, c *classification.Classification) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClassificationRepository) Update(ctx context.Context, c *classification.Classification) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClassificationRepository) Get(ctx context.Context, id kernel.UUID) (*classification.Classification, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*classification.Classification)
	return c, args.Error(1)
}

func (m *MockClassificationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*classification.Classification, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*classification.Classification)
	return c, args.Error(1)
}

func (m *MockClassificationRepository) ListByOrder(
	_ context.Context,
	_ kernel.UUID,
) ([]*classification.Classification, error) {
	return nil, nil
}

func (m *MockClassificationRepository) ListOpen(_ context.Context) ([]*classification.Classification, error) {
	return nil, nil
}

type MockClassificationUoW struct{ mock.Mock }

func (m *MockClassificationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClassificationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClassificationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClassificationUoW) ClassificationRepository() ports.ClassificationRepository {
	args := m.Called()
	return args.Get(0).(ports.ClassificationRepository)
}

type MockClassificationUoWFactory struct{ mock.Mock }

func (m *MockClassificationUoWFactory) Create() commands.ClassificationUoW {
	args := m.Called()
	return args.Get(0).(commands.ClassificationUoW)
}

type decision struct {
	operation, outcome, reason string
}

type fakeRecorder struct {
	mu            sync.Mutex
	decisions     []decision
	finalizations []bool
	commands      []string
}

func (r *fakeRecorder) RecordDecision(operation, outcome, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, decision{operation, outcome, reason})
}

func (r *fakeRecorder) RecordFinalization(allowed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalizations = append(r.finalizations, allowed)
}

func (r *fakeRecorder) ObserveCommand(command string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, command)
}

// gatedFixture wires mocks for a handler that locks one classification.
type gatedFixture struct {
	repo    *MockClassificationRepository
	uow     *MockClassificationUoW
	factory *MockClassificationUoWFactory
}

func newGatedFixture() gatedFixture {
	repo := new(MockClassificationRepository)
	uow := new(MockClassificationUoW)
	factory := new(MockClassificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	return gatedFixture{repo: repo, uow: uow, factory: factory}
}

func (f gatedFixture) expectLoad(ctx context.Context, c *classification.Classification) {
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("ClassificationRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, c.ID()).Return(c, nil).Once()
}

func (f gatedFixture) expectSave(ctx context.Context, c *classification.Classification) {
	f.repo.On("Update", ctx, c).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
}

func (f gatedFixture) assertExpectations(t mock.TestingT) {
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func openClassification(expected string) *classification.Classification {
	prices := classification.NewPrices(
		kernel.MustPrice("10"), kernel.MustPrice("8"), kernel.MustPrice("6"), kernel.MustPrice("4"))
	c, err := classification.NewClassification(
		kernel.NewUUID(), kernel.NewUUID(), "LOT-CMD", kernel.MustWeight(expected), prices)
	if err != nil {
		panic(err)
	}
	return c
}
