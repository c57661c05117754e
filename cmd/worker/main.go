package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/theEquinoxDev/LocalLoop/pkg/app"
	"github.com/theEquinoxDev/LocalLoop/pkg/config"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	"github.com/theEquinoxDev/LocalLoop/pkg/telemetry"
	"github.com/theEquinoxDev/LocalLoop/pkg/workflows"
	itemServices "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
	itemWorkflows "github.com/theEquinoxDev/LocalLoop/services/item/application/workflows"
	userServices "github.com/theEquinoxDev/LocalLoop/services/user/application/services"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	a, closeDeps, err := app.Open(ctx, cfg, log, app.Options{})
	if err != nil {
		log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	// EventBus.Close waits up to 30s for in-flight handlers.
	defer closeDeps()

	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("worker started with in-memory storage; it cannot see items held by the api process")
	}

	users, err := userServices.New(a)
	if err != nil {
		log.Error("failed to wire user services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	items, err := itemServices.New(a, users.User)
	if err != nil {
		log.Error("failed to wire item services", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if a.EventBus != nil {
		if err := registerSubscribers(ctx, a, items.Item); err != nil {
			log.Error("failed to register subscribers", "error", err)
			os.Exit(1) //nolint:gocritic
		}
	} else {
		log.Info("no event bus for this storage driver; cache is refreshed on read only")
	}

	if a.TemporalClient != nil {
		stop, err := startTemporalSweep(ctx, a.TemporalClient, cfg, items.Item)
		if err != nil {
			log.Error("failed to start temporal sweep", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer stop()
	} else {
		go runSweepTicker(ctx, cfg, items.Item, log)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()
	log.Info("worker stopped")
}

// startTemporalSweep runs the sweep workflow worker and makes sure the cron
// execution exists. The returned func stops the worker.
func startTemporalSweep(ctx context.Context, tc *workflows.TemporalClient, cfg *config.Config, sweeper itemWorkflows.Sweeper) (func(), error) {
	w := tc.NewWorker(cfg.TemporalTaskQueue)
	itemWorkflows.Register(w, sweeper)
	if err := w.Start(); err != nil {
		return nil, err
	}

	if err := tc.EnsureCron(ctx, workflows.CronSpec{
		ID:        itemWorkflows.ExpirySweepWorkflowID,
		TaskQueue: cfg.TemporalTaskQueue,
		Schedule:  cfg.ExpirySweepCron,
		Workflow:  itemWorkflows.ExpirySweepWorkflow,
		Args:      []any{cfg.ExpirySweepBatch},
	}); err != nil {
		w.Stop()
		return nil, err
	}
	return w.Stop, nil
}
