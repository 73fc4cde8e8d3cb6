package services

import (
	"context"
	"fmt"

	"github.com/ghuser/provchain/services/ledger/domain/models"
	"github.com/ghuser/provchain/services/ledger/domain/repositories"
	domainsvcs "github.com/ghuser/provchain/services/ledger/domain/services"
)

// QueryService is the read side: it bypasses the transition engine and reads
// committed state straight from the repository. Reads never take the engine's
// write lock and may run concurrently with each other.
type QueryService struct {
	repo repositories.LedgerRepository
}

// NewQueryService returns a QueryService over the given repository.
func NewQueryService(repo repositories.LedgerRepository) *QueryService {
	return &QueryService{repo: repo}
}

// GetItem returns the item head or ErrNotFound.
func (s *QueryService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetHistory returns the item's full audit trail in commit order.
func (s *QueryService) GetHistory(ctx context.Context, id string) ([]*models.HistoryEntry, error) {
	history, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return history, nil
}

// Verify reconstructs the item's trail and recomputes the accumulated cost
// independently of the stored head, returning the structured verdict.
func (s *QueryService) Verify(ctx context.Context, id string) (*models.VerifyReport, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verify item: %w", err)
	}
	history, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verify item: %w", err)
	}
	return domainsvcs.VerifyTrail(item, history), nil
}

// Stats returns the ledger-wide aggregate.
func (s *QueryService) Stats(ctx context.Context) (*models.LedgerStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger stats: %w", err)
	}
	return stats, nil
}
