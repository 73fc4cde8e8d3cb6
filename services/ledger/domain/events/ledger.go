package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/provchain/services/ledger/domain/models"
)

// Watermill topics published per committed transition. One topic per action
// so consumers can subscribe to exactly the lifecycle points they care about.
const (
	TopicItemRegistered = "ledger.item.registered"
	TopicItemAdvanced   = "ledger.item.advanced"
	TopicItemDelivered  = "ledger.item.delivered"
)

// TransitionEvent is published after a transition commits. It mirrors the
// committed HistoryEntry plus the head fields an off-ledger mirror needs to
// stay current without reading the store.
//
// Delivery is transactional with the commit (outbox) but consumers are not
// part of correctness: the ledger is authoritative, mirrors may lag.
type TransitionEvent struct {
	EventID         uuid.UUID         `json:"event_id"` // Unique publish-time identifier for deduplication
	Version         int               `json:"version"`  // Schema version; increment on breaking changes
	ItemID          string            `json:"item_id"`
	Actor           string            `json:"actor"`
	Action          models.ActionKind `json:"action"`
	Stage           string            `json:"stage"` // head stage tag after the transition
	Descriptor      string            `json:"descriptor"`
	Quantity        int64             `json:"quantity"`
	AccumulatedCost int64             `json:"accumulated_cost"`
	Note            string            `json:"note"`
	Seq             int               `json:"seq"`
	OccurredAt      time.Time         `json:"occurred_at"`
}

// TopicFor maps an action to its publish topic.
func TopicFor(action models.ActionKind) string {
	switch action {
	case models.ActionDelivered:
		return TopicItemDelivered
	case models.ActionRegistered:
		return TopicItemRegistered
	default:
		return TopicItemAdvanced
	}
}
