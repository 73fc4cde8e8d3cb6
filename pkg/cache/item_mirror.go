package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// MirrorTTL is the time-to-live for mirrored item heads.
	MirrorTTL = 24 * time.Hour

	mirrorKeyPrefix = "ledger:item"
)

// MirroredItem is the denormalized, off-ledger copy of an item head kept in
// Redis for external consumers (dashboards, search). It is maintained from
// committed transition events and is never authoritative — it may lag the
// ledger, and correctness-sensitive reads must go to the store.
type MirroredItem struct {
	ID              string    `json:"id"`
	Descriptor      string    `json:"descriptor"`
	Stage           string    `json:"stage"`
	Quantity        int64     `json:"quantity"`
	AccumulatedCost int64     `json:"accumulated_cost"`
	LastActor       string    `json:"last_actor"`
	Seq             int       `json:"seq"` // seq of the last applied transition
	UpdatedAt       time.Time `json:"updated_at"`
}

// ItemMirror provides structured read/write operations for mirrored item heads.
// Key format: "ledger:item:{itemID}"
type ItemMirror struct {
	client *RedisClient
}

// NewItemMirror creates an ItemMirror backed by the given RedisClient.
func NewItemMirror(r *RedisClient) *ItemMirror {
	return &ItemMirror{client: r}
}

// Get retrieves a mirrored item head by id.
// Returns redis.Nil error when the key does not exist or has expired.
func (m *ItemMirror) Get(ctx context.Context, itemID string) (*MirroredItem, error) {
	vals, err := m.client.Client().HGetAll(ctx, m.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("mirror get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	quantity, err := strconv.ParseInt(vals["quantity"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("mirror parse quantity: %w", err)
	}
	cost, err := strconv.ParseInt(vals["accumulated_cost"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("mirror parse accumulated_cost: %w", err)
	}
	seq, err := strconv.Atoi(vals["seq"])
	if err != nil {
		return nil, fmt.Errorf("mirror parse seq: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("mirror parse updated_at: %w", err)
	}

	return &MirroredItem{
		ID:              vals["id"],
		Descriptor:      vals["descriptor"],
		Stage:           vals["stage"],
		Quantity:        quantity,
		AccumulatedCost: cost,
		LastActor:       vals["last_actor"],
		Seq:             seq,
		UpdatedAt:       updatedAt,
	}, nil
}

// Set writes a mirrored item head as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (m *ItemMirror) Set(ctx context.Context, item *MirroredItem) error {
	key := m.key(item.ID)
	pipe := m.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", item.ID,
		"descriptor", item.Descriptor,
		"stage", item.Stage,
		"quantity", strconv.FormatInt(item.Quantity, 10),
		"accumulated_cost", strconv.FormatInt(item.AccumulatedCost, 10),
		"last_actor", item.LastActor,
		"seq", strconv.Itoa(item.Seq),
		"updated_at", item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, MirrorTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mirror set: %w", err)
	}
	return nil
}

// Delete removes a mirrored item head.
func (m *ItemMirror) Delete(ctx context.Context, itemID string) error {
	if err := m.client.Client().Del(ctx, m.key(itemID)).Err(); err != nil {
		return fmt.Errorf("mirror delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "ledger:item:{itemID}"
func (m *ItemMirror) key(itemID string) string {
	return fmt.Sprintf("%s:%s", mirrorKeyPrefix, itemID)
}
