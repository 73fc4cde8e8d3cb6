package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/provchain/pkg/database"
	"github.com/ghuser/provchain/pkg/events"
	"github.com/ghuser/provchain/services/ledger/domain"
	domainevents "github.com/ghuser/provchain/services/ledger/domain/events"
	"github.com/ghuser/provchain/services/ledger/domain/models"
)

// LedgerRepository implements repositories.LedgerRepository against PostgreSQL.
// Head rows live in ledger_items (update-in-place), the audit trail in
// ledger_history (append-only, BIGSERIAL commit order). Every write commits
// head mutation, history append and event publication in one transaction.
type LedgerRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewLedgerRepository returns a LedgerRepository backed by the given pool and
// event bus. The bus publishes a TransitionEvent per committed write; pass nil
// to disable publishing (migrations, tooling).
func NewLedgerRepository(db *database.Database, bus *events.EventBus) *LedgerRepository {
	return &LedgerRepository{db: db, bus: bus}
}

// Register inserts the item head plus its first history entry.
// Returns ErrAlreadyExists on a duplicate id.
func (r *LedgerRepository) Register(ctx context.Context, item *models.Item, entry *models.HistoryEntry) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		holders, err := marshalHolders(item.Holders)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO ledger_items
				(id, descriptor, quantity, base_cost, accumulated_cost, stage, holders,
				 origin_label, produced_on, quality_grade, origin_location,
				 registered_by, registered_at, transitions)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			item.ID, item.Descriptor, item.Quantity, item.BaseCost, item.AccumulatedCost,
			item.Stage.String(), holders,
			item.Origin.Label, item.Origin.ProducedOn, item.Origin.QualityGrade, item.Origin.Location,
			item.RegisteredBy, item.RegisteredAt, item.Transitions,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domain.ErrAlreadyExists
			}
			return fmt.Errorf("insert item: %w", err)
		}

		if err := r.appendEntry(ctx, tx, entry); err != nil {
			return err
		}
		return r.publish(tx, item, entry)
	})
}

// Append updates the head row and appends one history entry.
// Returns ErrNotFound when the id has no record.
func (r *LedgerRepository) Append(ctx context.Context, item *models.Item, entry *models.HistoryEntry) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		holders, err := marshalHolders(item.Holders)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE ledger_items
			SET accumulated_cost = $2, stage = $3, holders = $4, transitions = $5
			WHERE id = $1`,
			item.ID, item.AccumulatedCost, item.Stage.String(), holders, item.Transitions,
		)
		if err != nil {
			return fmt.Errorf("update item head: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("update item head: %w", err)
		} else if n == 0 {
			return domain.ErrNotFound
		}

		if err := r.appendEntry(ctx, tx, entry); err != nil {
			return err
		}
		return r.publish(tx, item, entry)
	})
}

// GetByID retrieves an item head. Returns ErrNotFound for an unknown id.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, descriptor, quantity, base_cost, accumulated_cost, stage, holders,
		       origin_label, produced_on, quality_grade, origin_location,
		       registered_by, registered_at, transitions
		FROM ledger_items WHERE id = $1`, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// History returns the item's trail ordered by global commit order.
func (r *LedgerRepository) History(ctx context.Context, id string) ([]*models.HistoryEntry, error) {
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT commit_order, item_id, seq, actor, action, price_after, note, recorded_at
		FROM ledger_history WHERE item_id = $1 ORDER BY commit_order`, id)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []*models.HistoryEntry
	for rows.Next() {
		var (
			e      models.HistoryEntry
			action string
		)
		if err := rows.Scan(&e.CommitOrder, &e.ItemID, &e.Seq, &e.Actor, &action,
			&e.PriceAfter, &e.Note, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Action = models.ActionKind(action)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Exists reports whether an item with the given id is registered.
func (r *LedgerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM ledger_items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

// Stats computes the ledger-wide aggregate in a single scan.
func (r *LedgerRepository) Stats(ctx context.Context) (*models.LedgerStats, error) {
	var stats models.LedgerStats
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(transitions), 0),
		       COALESCE(SUM(accumulated_cost * quantity), 0),
		       COUNT(*) FILTER (WHERE stage <> 'Delivered')
		FROM ledger_items`).
		Scan(&stats.TotalItems, &stats.TotalTransitions, &stats.TotalValue, &stats.ActiveItems)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return &stats, nil
}

// appendEntry inserts the history row and writes the assigned commit order
// back into entry.
func (r *LedgerRepository) appendEntry(ctx context.Context, tx *sql.Tx, entry *models.HistoryEntry) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO ledger_history (item_id, seq, actor, action, price_after, note, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING commit_order`,
		entry.ItemID, entry.Seq, entry.Actor, string(entry.Action),
		entry.PriceAfter, entry.Note, entry.RecordedAt,
	).Scan(&entry.CommitOrder)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// publish emits the TransitionEvent on the bus within the write transaction.
func (r *LedgerRepository) publish(tx *sql.Tx, item *models.Item, entry *models.HistoryEntry) error {
	if r.bus == nil {
		return nil
	}

	event := domainevents.TransitionEvent{
		EventID:         uuid.New(),
		Version:         1,
		ItemID:          item.ID,
		Actor:           entry.Actor,
		Action:          entry.Action,
		Stage:           item.Stage.String(),
		Descriptor:      item.Descriptor,
		Quantity:        item.Quantity,
		AccumulatedCost: item.AccumulatedCost,
		Note:            entry.Note,
		Seq:             entry.Seq,
		OccurredAt:      entry.RecordedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicFor(entry.Action), msg)
}

func marshalHolders(holders map[models.Stage]string) ([]byte, error) {
	m := make(map[string]string, len(holders))
	for stage, actor := range holders {
		m[stage.String()] = actor
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal holders: %w", err)
	}
	return b, nil
}

func unmarshalHolders(b []byte) (map[models.Stage]string, error) {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal holders: %w", err)
	}
	holders := make(map[models.Stage]string, len(m))
	for name, actor := range m {
		stage, err := models.ParseStage(name)
		if err != nil {
			return nil, fmt.Errorf("unmarshal holders: %w", err)
		}
		holders[stage] = actor
	}
	return holders, nil
}

// scanItem maps one ledger_items row to a domain Item.
func scanItem(row *sql.Row) (*models.Item, error) {
	var (
		item    models.Item
		stage   string
		holders []byte
		regAt   time.Time
	)
	if err := row.Scan(&item.ID, &item.Descriptor, &item.Quantity, &item.BaseCost,
		&item.AccumulatedCost, &stage, &holders,
		&item.Origin.Label, &item.Origin.ProducedOn, &item.Origin.QualityGrade, &item.Origin.Location,
		&item.RegisteredBy, &regAt, &item.Transitions); err != nil {
		return nil, err
	}

	parsed, err := models.ParseStage(stage)
	if err != nil {
		return nil, fmt.Errorf("parse stage: %w", err)
	}
	item.Stage = parsed

	item.Holders, err = unmarshalHolders(holders)
	if err != nil {
		return nil, err
	}
	item.RegisteredAt = regAt.UTC()
	return &item, nil
}
