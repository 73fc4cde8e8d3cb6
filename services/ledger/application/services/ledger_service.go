package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ghuser/provchain/services/ledger/domain"
	"github.com/ghuser/provchain/services/ledger/domain/models"
	"github.com/ghuser/provchain/services/ledger/domain/repositories"
	domainsvcs "github.com/ghuser/provchain/services/ledger/domain/services"
)

// RegisterParams carries the caller-supplied registration fields. The item id
// comes from the external identifier supplier; the engine only checks it for
// uniqueness and non-emptiness.
type RegisterParams struct {
	ID         string
	Descriptor string
	Quantity   int64
	BaseCost   int64
	Origin     models.Origin
}

// LedgerService is the transition engine: the sole writer of item and history
// state. Each call commits fully or fails with no effect.
//
// The write path is serialized by a mutex — all ledger invariants are only
// safe under serialized writes, and there is deliberately no internal
// parallelism here. Callers still pass an expected stage to Advance; when
// concurrently submitted calls race on one item, the losers fail with an
// explicit ErrStageMismatch instead of silently corrupting state.
type LedgerService struct {
	repo repositories.LedgerRepository
	mu   sync.Mutex
}

// NewLedgerService returns a LedgerService writing through the given repository.
func NewLedgerService(repo repositories.LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// Register creates a new item at StageRegistered with accumulated cost equal
// to the base cost, and appends the Registered history entry. Any caller may
// register a new id as its origin party.
func (s *LedgerService) Register(ctx context.Context, p RegisterParams, actor string) (*models.Item, error) {
	item, err := models.NewItem(p.ID, p.Descriptor, p.Quantity, p.BaseCost, p.Origin, actor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	entry := domainsvcs.RegistrationEntry(item, time.Now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Register(ctx, item, entry); err != nil {
		return nil, fmt.Errorf("register item: %w", err)
	}
	return item, nil
}

// Advance moves the item exactly one stage forward (Registered→InTransit or
// InTransit→AvailableForSale), adds costAddition to the accumulated cost and
// records the caller as the holder of the new stage. expected must equal the
// item's actual current stage — the stage value acts as a version token.
//
// Custody is first-valid-claimant: there is no allow-list, but a claimed
// stage can never be re-claimed — replays fail instead of silently succeeding.
func (s *LedgerService) Advance(ctx context.Context, id string, expected models.Stage, costAddition int64, note, actor string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("advance item: %w", err)
	}

	entry, err := domainsvcs.Advance(item, expected, costAddition, note, actor, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, item, entry); err != nil {
		return nil, fmt.Errorf("advance item: %w", err)
	}
	return item, nil
}

// Deliver applies the terminal transition from AvailableForSale. The
// accumulated cost is unchanged; the caller becomes the recorded holder of
// StageDelivered and the item is read-only forever after.
func (s *LedgerService) Deliver(ctx context.Context, id, actor string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deliver item: %w", err)
	}

	entry, err := domainsvcs.Deliver(item, actor, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Append(ctx, item, entry); err != nil {
		return nil, fmt.Errorf("deliver item: %w", err)
	}
	return item, nil
}
