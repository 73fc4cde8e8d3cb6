package models

import "time"

// HistoryEntry is one immutable, append-only audit record of a committed
// transition. Entries are never edited or deleted; corrections are new entries.
type HistoryEntry struct {
	ItemID      string
	Actor       string
	Action      ActionKind
	PriceAfter  int64 // accumulated cost immediately after this entry
	Note        string
	Seq         int   // per-item, 0-based, contiguous
	CommitOrder int64 // global monotonic counter, assigned by the store at commit
	RecordedAt  time.Time
}

// VerifyReport is the structured authenticity verdict for one item.
// Verified is true iff the accumulated cost recomputed from the history trail
// matches the stored head value and the trail itself is well-formed.
type VerifyReport struct {
	Verified   bool
	StepCount  int
	Actors     []string
	Actions    []ActionKind
	Timestamps []time.Time
}

// LedgerStats is the O(n) read-only aggregate over all items.
type LedgerStats struct {
	TotalItems       int64
	TotalTransitions int64
	TotalValue       int64 // Σ accumulated_cost × quantity
	ActiveItems      int64 // stage != Delivered
}
