package app

import (
	"context"
	"fmt"

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

// Options selects process-specific wiring for Open.
type Options struct {
	// Forwarder makes published events go through the outbox forwarder and
	// starts its daemon. Only the API process sets it.
	Forwarder bool
}

// Open connects every dependency cfg enables and returns the container with
// a func that releases them in reverse order. Redis and object storage are
// optional: when they cannot be reached the process continues without the
// read cache or image uploads.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*Application, func(), error) {
	a := &Application{Config: cfg, Logger: log}
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*Application, func(), error) {
		closeAll()
		return nil, func() {}, err
	}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.DefinitionDatabaseURL, log)
		if err != nil {
			return fail(fmt.Errorf("connect to database: %w", err))
		}
		closers = append(closers, func() { _ = pool.Close() })
		a.Db = pool
		log.Info("database pool connected")

		newBus := events.NewEventBus
		if opts.Forwarder {
			newBus = events.NewEventBusWithForwarder
		}
		bus, err := newBus(cfg, log)
		if err != nil {
			return fail(fmt.Errorf("setup event bus: %w", err))
		}
		closers = append(closers, func() { _ = bus.Close() })
		if opts.Forwarder {
			if err := bus.StartForwarder(ctx); err != nil {
				return fail(fmt.Errorf("start event forwarder: %w", err))
			}
		}
		a.EventBus = bus
	case config.StorageMongo:
		m, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return fail(fmt.Errorf("connect to mongo: %w", err))
		}
		closers = append(closers, func() { _ = m.Close(context.Background()) })
		if err := m.CreateIndexes(ctx); err != nil {
			return fail(err)
		}
		a.Mongo = m
		log.Info("mongo connected", "database", cfg.MongoDatabase)
	case config.StorageMemory:
		log.Warn("using in-memory storage; data is lost on restart")
	default:
		return fail(fmt.Errorf("unknown storage driver %q", cfg.StorageDriver))
	}

	if cfg.CacheEnabled {
		rc, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Warn("redis unavailable, continuing without item cache", "error", err)
		} else {
			closers = append(closers, func() { _ = rc.Close() })
			a.Redis = rc
			log.Info("redis connected")
		}
	}

	if cfg.MinioEndpoint != "" {
		store, err := objectstore.New(ctx, cfg)
		if err != nil {
			log.Warn("object storage unavailable, image uploads disabled", "error", err)
		} else {
			a.ObjectStore = store
			log.Info("object storage ready", "bucket", cfg.MinioBucket)
		}
	}

	tokens, err := newTokenManager(cfg)
	if err != nil {
		return fail(err)
	}
	a.Tokens = tokens

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return fail(fmt.Errorf("register metrics: %w", err))
	}
	a.Metrics = metrics

	if cfg.TemporalEnabled {
		tc, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			return fail(fmt.Errorf("initialize temporal client: %w", err))
		}
		closers = append(closers, tc.Close)
		a.TemporalClient = tc
	}

	return a, closeAll, nil
}

func newTokenManager(cfg *config.Config) (*auth.TokenManager, error) {
	keys, err := cfg.JWTKeyMap()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	}
	return auth.NewTokenManagerFromKeys(keys, cfg.JWTActiveKID, cfg.JWTTTL)
}
