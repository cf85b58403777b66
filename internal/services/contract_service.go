package services

import (
	"context"
	"fmt"
	"log/slog"

	"spaarpot/internal/amqp"
	"spaarpot/internal/backend"
	"spaarpot/internal/contracts"
	"spaarpot/internal/core"
	"spaarpot/internal/store"
)

// EventPublisher publishes contract change notifications.
type EventPublisher interface {
	PublishContractEvent(ctx context.Context, contractID, action string) error
	Close() error
}

// ContractService orchestrates contract operations across the
// repository, the observable store and the optional event publisher.
// Publishing failures never fail the operation; the contract is already
// persisted locally.
type ContractService struct {
	repo    contracts.Repository
	store   *store.ContractStore
	events  EventPublisher
	cleanup backend.CleanupFunc
}

func NewContractService(repo contracts.Repository, st *store.ContractStore, events EventPublisher, cleanup backend.CleanupFunc) *ContractService {
	return &ContractService{
		repo:    repo,
		store:   st,
		events:  events,
		cleanup: cleanup,
	}
}

// Store exposes the observable contract store.
func (s *ContractService) Store() *store.ContractStore {
	return s.store
}

// Submit validates and persists a new contract, refreshes the store and
// publishes a created event.
func (s *ContractService) Submit(ctx context.Context, in core.NewContractInput) (core.Contract, error) {
	c, err := s.repo.Add(ctx, in)
	if err != nil {
		return core.Contract{}, fmt.Errorf("add contract: %w", err)
	}

	if err := s.Refresh(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh contract store after submit",
			"contract_id", c.ID, "error", err)
	}

	s.publishEvent(ctx, c.ID, amqp.ActionCreated)
	return c, nil
}

// EditRequest fetches the contract to edit.
func (s *ContractService) EditRequest(ctx context.Context, id string) (core.Contract, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return core.Contract{}, err
	}
	return c, nil
}

// Save merges the edit into the stored contract, refreshes the store
// and publishes an updated event. Rate history only grows.
func (s *ContractService) Save(ctx context.Context, id string, in core.NewContractInput) (core.Contract, error) {
	c, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return core.Contract{}, err
	}

	if err := s.Refresh(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to refresh contract store after save",
			"contract_id", c.ID, "error", err)
	}

	s.publishEvent(ctx, c.ID, amqp.ActionUpdated)
	return c, nil
}

// Refresh reloads the contract list from the repository into the
// store. The repository returns the list name-sorted.
func (s *ContractService) Refresh(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list contracts: %w", err)
	}
	s.store.Replace(list)
	return nil
}

func (s *ContractService) publishEvent(ctx context.Context, contractID, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishContractEvent(ctx, contractID, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish contract event",
			"contract_id", contractID,
			"action", action,
			"error", err)
	}
}

// Close releases the publisher and the repository resources.
func (s *ContractService) Close() error {
	var errs []error

	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if s.cleanup != nil {
		if err := s.cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close contract service: %v", errs)
	}

	return nil
}
