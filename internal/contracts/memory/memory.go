package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"spaarpot/internal/contracts"
	"spaarpot/internal/core"
)

// Store keeps contracts in process memory. It is the fallback
// repository when durable storage is unavailable and the reference
// implementation for repository semantics.
type Store struct {
	mu    sync.Mutex
	items map[string]core.Contract
	order []string

	// now is swappable for tests.
	now func() time.Time
}

func New() *Store {
	return &Store{
		items: make(map[string]core.Contract),
		now:   time.Now,
	}
}

// Add validates the input and stores a new contract with a fresh id.
func (s *Store) Add(_ context.Context, in core.NewContractInput) (core.Contract, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return core.Contract{}, err
	}

	now := s.now()
	c := core.Contract{
		ID:            uuid.NewString(),
		Name:          in.Name,
		AccountNumber: in.AccountNumber,
		Description:   in.Description,
		CreatedAt:     now,
		Obligations:   core.MergeObligations(in.Obligations, nil, now),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.ID] = c
	s.order = append(s.order, c.ID)
	return c.Clone(), nil
}

// List returns all contracts sorted by name, equal names in insertion
// order.
func (s *Store) List(_ context.Context) ([]core.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Contract, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	contracts.SortByName(out)
	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (core.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return core.Contract{}, contracts.ErrNotFound
	}
	return c.Clone(), nil
}

// Update merges the input into the stored contract. Obligations are
// matched by id, rate history only grows.
func (s *Store) Update(_ context.Context, id string, in core.NewContractInput) (core.Contract, error) {
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return core.Contract{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return core.Contract{}, contracts.ErrNotFound
	}

	c.Name = in.Name
	c.AccountNumber = in.AccountNumber
	c.Description = in.Description
	c.Obligations = core.MergeObligations(in.Obligations, c.Obligations, s.now())
	s.items[id] = c
	return c.Clone(), nil
}
