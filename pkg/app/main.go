package app

import (
	"github.com/theEquinoxDev/LocalLoop/pkg/auth"
	"github.com/theEquinoxDev/LocalLoop/pkg/cache"
	"github.com/theEquinoxDev/LocalLoop/pkg/config"
	"github.com/theEquinoxDev/LocalLoop/pkg/database"
	"github.com/theEquinoxDev/LocalLoop/pkg/events"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	"github.com/theEquinoxDev/LocalLoop/pkg/objectstore"
	"github.com/theEquinoxDev/LocalLoop/pkg/telemetry"
	"github.com/theEquinoxDev/LocalLoop/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each bounded context's services.New during initialization.
//
// Which store fields are set depends on Config.StorageDriver: Db for
// "postgres", Mongo for "mongo", neither for "memory". EventBus exists only
// with the postgres driver, since the outbox shares its transactions.
// Redis, ObjectStore and TemporalClient are optional and may be nil.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item claimed", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to credit points", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Mongo          *database.Mongo
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	ObjectStore    *objectstore.Store
	Tokens         *auth.TokenManager
	Metrics        *telemetry.Metrics
	TemporalClient *workflows.TemporalClient
}
