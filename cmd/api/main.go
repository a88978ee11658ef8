package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/httpx"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/objectstore"
	"github.com/ghuser/stockroom/pkg/operator"
	"github.com/ghuser/stockroom/pkg/telemetry"
	auditApi "github.com/ghuser/stockroom/services/audit/application/api"
	auditSvcs "github.com/ghuser/stockroom/services/audit/application/services"
	historyApi "github.com/ghuser/stockroom/services/history/application/api"
	historySvcs "github.com/ghuser/stockroom/services/history/application/services"
	orderApi "github.com/ghuser/stockroom/services/order/application/api"
	orderSvcs "github.com/ghuser/stockroom/services/order/application/services"
	stockApi "github.com/ghuser/stockroom/services/stock/application/api"
	stockSvcs "github.com/ghuser/stockroom/services/stock/application/services"
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
	errhttp.HideInternalErrors(cfg.Environment == config.EnvProduction)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	metrics, err := telemetry.NewDomainMetrics(otel.Meter(cfg.ServiceName))
	if err != nil {
		log.Warn("domain metrics unavailable", "error", err)
	}

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	objects, err := objectstore.New(ctx, cfg)
	if err != nil {
		log.Error("failed to setup object store", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if objects != nil {
		if err := objects.EnsureBucket(ctx); err != nil {
			log.Warn("export bucket unavailable, uploads will fail", "bucket", objects.Bucket(), "error", err)
		}
	} else {
		log.Info("export uploads disabled")
	}

	sessionStore := operator.NewSessionStore(
		redisClient.Client(),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.Environment == config.EnvProduction,
	)
	log.Info("session store initialized", "backend", "redis")

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		ObjectStore:  objects,
		SessionStore: sessionStore,
		Metrics:      metrics,
	}

	// The revision log exists before the order store, which appends to it.
	audit := auditSvcs.New(appConfig)
	revisions := historySvcs.NewRevisionLogFor(appConfig, audit.Trail)
	orders := orderSvcs.New(appConfig, revisions, audit.Trail)
	history := historySvcs.New(appConfig, revisions, orders.Store)
	stock := stockSvcs.New(appConfig)

	if err := orders.Store.Load(ctx); err != nil {
		log.Error("failed to load orders", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if err := revisions.Load(ctx); err != nil {
		log.Warn("revision log not loaded, starting empty", "error", err)
	}
	if err := stock.Catalog.Warm(ctx); err != nil {
		log.Info("no cached stock feed", "error", err)
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

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		Database: pool,
		Redis:    redisClient,
		EventBus: eventBus,
		Stock:    stock.Catalog,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Route("/api", func(r chi.Router) {
		r.Use(operator.Identify(sessionStore, log), telemetry.SentryOperatorScope())
		orderApi.OrderRoutes(r, orders)
		historyApi.HistoryRoutes(r, history)
		stockApi.StockRoutes(r, stock)
		auditApi.AuditRoutes(r, audit)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return stock.Catalog.Run(gctx, cfg.StockSyncInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("server stopped")
}
