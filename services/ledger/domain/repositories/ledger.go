package repositories

import (
	"context"

	"github.com/ghuser/provchain/services/ledger/domain/models"
)

// LedgerRepository is the persistence interface for the custody ledger.
// The domain layer owns this interface; infrastructure implements it.
//
// Write methods are atomic: head mutation, history append and (where the
// implementation supports it) event publication commit together or not at
// all. The store assigns HistoryEntry.CommitOrder at commit time and writes
// it back to the passed entry.
type LedgerRepository interface {
	// Register persists a new item head plus its first history entry.
	// Returns ErrAlreadyExists if the id is already registered.
	Register(ctx context.Context, item *models.Item, entry *models.HistoryEntry) error

	// Append persists the mutated head and appends one history entry for a
	// committed transition. Returns ErrNotFound for an unknown id.
	Append(ctx context.Context, item *models.Item, entry *models.HistoryEntry) error

	// GetByID retrieves an item head. Returns ErrNotFound for an unknown id;
	// an id with no record is never a zero-valued item.
	GetByID(ctx context.Context, id string) (*models.Item, error)

	// History returns the item's full audit trail ordered by commit order.
	// Returns ErrNotFound for an unknown id.
	History(ctx context.Context, id string) ([]*models.HistoryEntry, error)

	// Exists reports whether an item with the given id is registered.
	Exists(ctx context.Context, id string) (bool, error)

	// Stats computes the O(n) aggregate over all items. Read-only diagnostic,
	// never on the write path.
	Stats(ctx context.Context) (*models.LedgerStats, error)
}
