// Package services contains the stateless custody transition rules for the
// ledger bounded context. These operate purely on domain types and have zero
// external dependencies beyond stdlib and the domain layer; persistence and
// serialization of the write path live in the application layer.
package services

import (
	"fmt"
	"time"

	"github.com/ghuser/provchain/services/ledger/domain"
	"github.com/ghuser/provchain/services/ledger/domain/models"
)

// RegistrationEntry builds the first history entry for a freshly constructed
// item. PriceAfter equals the base cost by definition.
func RegistrationEntry(item *models.Item, now time.Time) *models.HistoryEntry {
	return &models.HistoryEntry{
		ItemID:     item.ID,
		Actor:      item.RegisteredBy,
		Action:     models.ActionRegistered,
		PriceAfter: item.AccumulatedCost,
		Seq:        0,
		RecordedAt: now,
	}
}

// Advance applies one advance transition (Registered→InTransit or
// InTransit→AvailableForSale) to the item in place and returns the history
// entry to append. The item is NOT mutated when an error is returned.
//
// expected acts as an optimistic concurrency token: it must equal the item's
// actual current stage or the call fails ErrStageMismatch, turning a lost
// update race into an explicit failure for the loser.
//
// The actor becomes the recorded holder of the new stage — first valid
// claimant wins; a claimed stage can never be re-claimed or reassigned.
func Advance(item *models.Item, expected models.Stage, costAddition int64, note, actor string, now time.Time) (*models.HistoryEntry, error) {
	if actor == "" {
		return nil, fmt.Errorf("%w: actor must not be empty", domain.ErrInvalidInput)
	}
	if costAddition < 0 {
		return nil, fmt.Errorf("%w: cost addition must not be negative, got %d", domain.ErrInvalidInput, costAddition)
	}
	if item.Stage == models.StageDelivered {
		return nil, fmt.Errorf("%w: item %s is already delivered", domain.ErrInvalidTransition, item.ID)
	}
	if expected != models.StageRegistered && expected != models.StageInTransit {
		return nil, fmt.Errorf("%w: cannot advance from stage %s", domain.ErrInvalidTransition, expected)
	}
	if expected != item.Stage {
		return nil, fmt.Errorf("%w: expected %s but item %s is at %s",
			domain.ErrStageMismatch, expected, item.ID, item.Stage)
	}

	next, ok := item.Stage.Next()
	if !ok {
		return nil, fmt.Errorf("%w: stage %s has no successor", domain.ErrInvalidTransition, item.Stage)
	}

	item.AccumulatedCost += costAddition
	item.Stage = next
	item.Holders[next] = actor
	item.Transitions++

	return &models.HistoryEntry{
		ItemID:     item.ID,
		Actor:      actor,
		Action:     next.Action(),
		PriceAfter: item.AccumulatedCost,
		Note:       note,
		Seq:        item.Transitions - 1,
		RecordedAt: now,
	}, nil
}

// Deliver applies the terminal transition. Only valid from AvailableForSale;
// the accumulated cost is unchanged. The item is NOT mutated on error.
func Deliver(item *models.Item, actor string, now time.Time) (*models.HistoryEntry, error) {
	if actor == "" {
		return nil, fmt.Errorf("%w: actor must not be empty", domain.ErrInvalidInput)
	}
	if item.Stage != models.StageAvailableForSale {
		return nil, fmt.Errorf("%w: item %s is at %s, delivery requires %s",
			domain.ErrInvalidTransition, item.ID, item.Stage, models.StageAvailableForSale)
	}

	item.Stage = models.StageDelivered
	item.Holders[models.StageDelivered] = actor
	item.Transitions++

	return &models.HistoryEntry{
		ItemID:     item.ID,
		Actor:      actor,
		Action:     models.ActionDelivered,
		PriceAfter: item.AccumulatedCost,
		Seq:        item.Transitions - 1,
		RecordedAt: now,
	}, nil
}

// VerifyTrail independently recomputes the accumulated cost from the history
// trail and compares it to the stored head value. This is a lightweight,
// re-derivable tamper check, not a cryptographic proof.
//
// The trail is well-formed when:
//   - it is non-empty and entry 0 is a Registered entry priced at BaseCost
//   - Seq values are contiguous from 0
//   - PriceAfter never decreases (every cost addition is ≥ 0)
//   - the final PriceAfter equals the head's AccumulatedCost
//   - the trail length matches the head's transition count and stage depth
func VerifyTrail(item *models.Item, history []*models.HistoryEntry) *models.VerifyReport {
	report := &models.VerifyReport{
		StepCount:  len(history),
		Actors:     make([]string, 0, len(history)),
		Actions:    make([]models.ActionKind, 0, len(history)),
		Timestamps: make([]time.Time, 0, len(history)),
	}
	for _, e := range history {
		report.Actors = append(report.Actors, e.Actor)
		report.Actions = append(report.Actions, e.Action)
		report.Timestamps = append(report.Timestamps, e.RecordedAt)
	}

	if len(history) == 0 {
		return report
	}
	first := history[0]
	if first.Action != models.ActionRegistered || first.Seq != 0 || first.PriceAfter != item.BaseCost {
		return report
	}

	price := first.PriceAfter
	for i, e := range history {
		if e.Seq != i {
			return report
		}
		if e.PriceAfter < price {
			return report
		}
		price = e.PriceAfter
	}

	if price != item.AccumulatedCost {
		return report
	}
	if len(history) != item.Transitions || len(history) != int(item.Stage)+1 {
		return report
	}

	report.Verified = true
	return report
}
