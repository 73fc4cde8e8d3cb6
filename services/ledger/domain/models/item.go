package models

import (
	"fmt"
	"strings"
	"time"
)

// Origin holds the free-text provenance metadata fixed at registration.
type Origin struct {
	Label        string
	ProducedOn   string
	QualityGrade string
	Location     string
}

// Item is the core aggregate for this bounded context: the tracked good's
// ledger record. The head fields Stage, AccumulatedCost, Holders and
// Transitions mutate only through the transition engine; everything else is
// immutable after registration.
type Item struct {
	ID              string
	Descriptor      string
	Quantity        int64
	BaseCost        int64 // smallest currency unit
	AccumulatedCost int64 // BaseCost + every cost addition, never decreases
	Origin          Origin
	Stage           Stage
	Holders         map[Stage]string // stage → identity that claimed it, set once
	RegisteredBy    string
	RegisteredAt    time.Time
	Transitions     int // committed history length; next entry gets Seq=Transitions
}

// NewItem constructs a valid Item aggregate at StageRegistered.
// Structural constraints: non-empty id and descriptor, quantity and base cost
// strictly positive. The application layer wraps violations with the
// ErrInvalidInput sentinel.
func NewItem(id, descriptor string, quantity, baseCost int64, origin Origin, registeredBy string) (*Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("item id must not be empty")
	}
	if strings.TrimSpace(descriptor) == "" {
		return nil, fmt.Errorf("descriptor must not be empty")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if baseCost <= 0 {
		return nil, fmt.Errorf("base cost must be positive, got %d", baseCost)
	}
	if registeredBy == "" {
		return nil, fmt.Errorf("registering actor must not be empty")
	}
	return &Item{
		ID:              id,
		Descriptor:      descriptor,
		Quantity:        quantity,
		BaseCost:        baseCost,
		AccumulatedCost: baseCost,
		Origin:          origin,
		Stage:           StageRegistered,
		Holders:         make(map[Stage]string),
		RegisteredBy:    registeredBy,
		RegisteredAt:    time.Now().UTC(),
		Transitions:     1, // the registration entry itself
	}, nil
}

// Holder returns the identity that claimed the given stage, if any.
func (i *Item) Holder(stage Stage) (string, bool) {
	actor, ok := i.Holders[stage]
	return actor, ok
}

// Clone returns a deep copy. Repositories hand out clones so callers can
// never mutate committed state through a shared map.
func (i *Item) Clone() *Item {
	cp := *i
	cp.Holders = make(map[Stage]string, len(i.Holders))
	for k, v := range i.Holders {
		cp.Holders[k] = v
	}
	return &cp
}
