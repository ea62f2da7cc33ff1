package http_test

import (
	"context"
	"sync"

	"packhouse/internal/core/application/usecases/commands"
	"packhouse/internal/core/application/usecases/queries"
	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/ports"
	"packhouse/internal/pkg/errs"
)

// memoryStore keeps aggregates in a map so the real handlers can run without a database.
type memoryStore struct {
	mu      sync.Mutex
	records map[kernel.UUID]*classification.Classification
	order   []kernel.UUID
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[kernel.UUID]*classification.Classification)}
}

func (s *memoryStore) Add(_ context.Context, c *classification.Classification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[c.ID()] = c
	s.order = append(s.order, c.ID())
	return nil
}

func (s *memoryStore) Update(_ context.Context, c *classification.Classification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[c.ID()]; !ok {
		return errs.NewObjectNotFoundError("classification", c.ID().String())
	}
	s.records[c.ID()] = c
	return nil
}

func (s *memoryStore) Get(_ context.Context, id kernel.UUID) (*classification.Classification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.records[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("classification", id.String())
	}
	return c, nil
}

func (s *memoryStore) GetForUpdate(ctx context.Context, id kernel.UUID) (*classification.Classification, error) {
	return s.Get(ctx, id)
}

func (s *memoryStore) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*classification.Classification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*classification.Classification
	for _, id := range s.order {
		if c := s.records[id]; c.OrderID().IsEqual(orderID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memoryStore) ListOpen(_ context.Context) ([]*classification.Classification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*classification.Classification
	for _, id := range s.order {
		if c := s.records[id]; !c.IsFinalized() {
			out = append(out, c)
		}
	}
	return out, nil
}

// Handle serves the open list from memory.
func (s *memoryStore) Handle(
	ctx context.Context,
	_ queries.GetOpenClassificationsQuery,
) ([]queries.GetOpenClassificationsQueryResponse, error) {
	open, _ := s.ListOpen(ctx)
	out := make([]queries.GetOpenClassificationsQueryResponse, 0, len(open))
	for _, c := range open {
		out = append(out, queries.GetOpenClassificationsQueryResponse{
			ID:             c.ID(),
			OrderID:        c.OrderID(),
			LotCode:        c.LotCode(),
			ExpectedWeight: c.ExpectedWeight().Decimal(),
		})
	}
	return out, nil
}

type memoryUoW struct{ store *memoryStore }

func (u memoryUoW) Begin(context.Context) error    { return nil }
func (u memoryUoW) Commit(context.Context) error   { return nil }
func (u memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) ClassificationRepository() ports.ClassificationRepository {
	return u.store
}

type memoryUoWFactory struct{ store *memoryStore }

func (f memoryUoWFactory) Create() commands.ClassificationUoW {
	return memoryUoW(f)
}
