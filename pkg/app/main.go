package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/objectstore"
	"github.com/ghuser/stockroom/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to every service's route registration during server start-up.
//
// Logging: app.Logger is backed by a trace-aware handler; use the context
// methods so trace_id, span_id and request_id are attached:
//
//	app.Logger.InfoContext(ctx, "order created", "order_id", id)
//
// Plain Info/Error are for start-up and shutdown only.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	ObjectStore  *objectstore.Store       // nil when exports upload is disabled
	SessionStore sessions.Store           // Redis-backed; nil in the worker process
	Metrics      *telemetry.DomainMetrics // nil-safe
}
