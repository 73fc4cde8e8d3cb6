package app

import (
	"github.com/ghuser/provchain/pkg/cache"
	"github.com/ghuser/provchain/pkg/database"
	"github.com/ghuser/provchain/pkg/events"
	"github.com/ghuser/provchain/pkg/logger"
	"github.com/ghuser/provchain/pkg/workflows"
	"github.com/gorilla/sessions"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route-registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "transition committed", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to append", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store // Redis-backed session store; nil in worker process
}
