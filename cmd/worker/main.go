package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/provchain/pkg/app"
	"github.com/ghuser/provchain/pkg/cache"
	"github.com/ghuser/provchain/pkg/config"
	"github.com/ghuser/provchain/pkg/database"
	"github.com/ghuser/provchain/pkg/events"
	"github.com/ghuser/provchain/pkg/logger"
	"github.com/ghuser/provchain/pkg/telemetry"
	ledgerEvents "github.com/ghuser/provchain/services/ledger/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.LedgerDatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// mirrorTopics are the transition topics the worker projects into the
// off-ledger mirror.
var mirrorTopics = []string{
	ledgerEvents.TopicItemRegistered,
	ledgerEvents.TopicItemAdvanced,
	ledgerEvents.TopicItemDelivered,
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	mirror := cache.NewItemMirror(a.Redis)

	for _, topic := range mirrorTopics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handleTransition(a, mirror))
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		topic := topic
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}()
	}

	a.Logger.Info("event subscribers registered", "topics", mirrorTopics)
	return nil
}

// handleTransition returns a handler that projects committed transitions into
// the Redis mirror. Handlers must be idempotent — EventBus retries up to 3×
// and the forwarder gives at-least-once delivery, so the same event may
// arrive more than once and transitions may arrive out of order after a
// redelivery. The per-item seq decides: an event older than the mirrored head
// is skipped.
func handleTransition(a *app.Application, mirror *cache.ItemMirror) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt ledgerEvents.TransitionEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		current, err := mirror.Get(ctx, evt.ItemID)
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != nil && current.Seq >= evt.Seq {
			a.Logger.DebugContext(ctx, "mirror already current, skipping",
				"item_id", evt.ItemID, "seq", evt.Seq, "mirror_seq", current.Seq)
			return nil
		}

		if err := mirror.Set(ctx, &cache.MirroredItem{
			ID:              evt.ItemID,
			Descriptor:      evt.Descriptor,
			Stage:           evt.Stage,
			Quantity:        evt.Quantity,
			AccumulatedCost: evt.AccumulatedCost,
			LastActor:       evt.Actor,
			Seq:             evt.Seq,
			UpdatedAt:       evt.OccurredAt,
		}); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "mirror updated",
			"item_id", evt.ItemID, "action", evt.Action, "seq", evt.Seq)
		return nil
	}
}
