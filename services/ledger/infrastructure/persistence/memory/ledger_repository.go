// Package memory provides an in-process LedgerRepository used by unit tests
// and substrate-free deployments. Writes are serialized by a single mutex;
// readers receive defensive copies so committed state can never be mutated
// through a shared pointer.
package memory

import (
	"context"
	"sync"

	"github.com/ghuser/provchain/services/ledger/domain"
	"github.com/ghuser/provchain/services/ledger/domain/models"
)

// LedgerRepository implements repositories.LedgerRepository in memory.
type LedgerRepository struct {
	mu          sync.RWMutex
	items       map[string]*models.Item
	history     map[string][]*models.HistoryEntry
	commitOrder int64
}

// NewLedgerRepository returns an empty in-memory ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		items:   make(map[string]*models.Item),
		history: make(map[string][]*models.HistoryEntry),
	}
}

// Register stores a new item head and its first history entry atomically.
func (r *LedgerRepository) Register(ctx context.Context, item *models.Item, entry *models.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return domain.ErrAlreadyExists
	}

	r.commitOrder++
	entry.CommitOrder = r.commitOrder

	r.items[item.ID] = item.Clone()
	e := *entry
	r.history[item.ID] = append(r.history[item.ID], &e)
	return nil
}

// Append replaces the item head and appends one history entry atomically.
func (r *LedgerRepository) Append(ctx context.Context, item *models.Item, entry *models.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}

	r.commitOrder++
	entry.CommitOrder = r.commitOrder

	r.items[item.ID] = item.Clone()
	e := *entry
	r.history[item.ID] = append(r.history[item.ID], &e)
	return nil
}

// GetByID returns a copy of the item head or ErrNotFound.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item.Clone(), nil
}

// History returns copies of the item's trail in commit order.
func (r *LedgerRepository) History(ctx context.Context, id string) ([]*models.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.items[id]; !ok {
		return nil, domain.ErrNotFound
	}
	entries := r.history[id]
	out := make([]*models.HistoryEntry, len(entries))
	for i, e := range entries {
		cp := *e
		out[i] = &cp
	}
	return out, nil
}

// Exists reports whether the id has a record.
func (r *LedgerRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok, nil
}

// Stats walks all items. O(n), read-only.
func (r *LedgerRepository) Stats(ctx context.Context) (*models.LedgerStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.LedgerStats{}
	for _, item := range r.items {
		stats.TotalItems++
		stats.TotalTransitions += int64(item.Transitions)
		stats.TotalValue += item.AccumulatedCost * item.Quantity
		if item.Stage != models.StageDelivered {
			stats.ActiveItems++
		}
	}
	return stats, nil
}
