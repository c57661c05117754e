package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/theEquinoxDev/LocalLoop/docs/swagger"
	"github.com/theEquinoxDev/LocalLoop/pkg/app"
	"github.com/theEquinoxDev/LocalLoop/pkg/auth"
	"github.com/theEquinoxDev/LocalLoop/pkg/config"
	"github.com/theEquinoxDev/LocalLoop/pkg/errhttp"
	"github.com/theEquinoxDev/LocalLoop/pkg/httpx"
	"github.com/theEquinoxDev/LocalLoop/pkg/logger"
	"github.com/theEquinoxDev/LocalLoop/pkg/telemetry"
	itemApi "github.com/theEquinoxDev/LocalLoop/services/item/application/api"
	itemServices "github.com/theEquinoxDev/LocalLoop/services/item/application/services"
	userApi "github.com/theEquinoxDev/LocalLoop/services/user/application/api"
	userServices "github.com/theEquinoxDev/LocalLoop/services/user/application/services"
)

// @title					LocalLoop API
// @version				1.0
// @description			Community lost-and-found: report, find nearby, claim and resolve items.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
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
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Sentry is optional; log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	a, closeDeps, err := app.Open(ctx, cfg, log, app.Options{Forwarder: true})
	if err != nil {
		log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer closeDeps()

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

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(healthChecks(a)))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	errs := errhttp.NewResponder(log, cfg.Environment == config.EnvProduction)
	requireAuth := auth.RequireAuth(a.Tokens, users.User, log)
	r.Route("/api", func(r chi.Router) {
		userApi.UserRoutes(r, users, errs, requireAuth, cfg.AuthRateLimitRPM)
		itemApi.ItemRoutes(r, items, errs, requireAuth)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// healthChecks lists the dependencies this process actually opened.
func healthChecks(a *app.Application) httpx.HealthChecks {
	checks := httpx.HealthChecks{}
	if a.Db != nil {
		checks["database"] = a.Db
	}
	if a.Mongo != nil {
		checks["mongo"] = a.Mongo
	}
	if a.EventBus != nil {
		checks["event_bus"] = a.EventBus
	}
	if a.Redis != nil {
		checks["redis"] = a.Redis
	}
	if a.ObjectStore != nil {
		checks["object_store"] = a.ObjectStore
	}
	return checks
}
