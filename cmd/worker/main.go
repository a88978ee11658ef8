package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	auditHandlers "github.com/ghuser/stockroom/services/audit/application/handlers"
	auditEvents "github.com/ghuser/stockroom/services/audit/domain/events"
	auditPostgres "github.com/ghuser/stockroom/services/audit/infrastructure/persistence/postgres"
	orderHandlers "github.com/ghuser/stockroom/services/order/application/handlers"
	orderEvents "github.com/ghuser/stockroom/services/order/domain/events"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
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
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	<-ctx.Done()
	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

type subscription struct {
	topic   string
	handler func(context.Context, *message.Message) error
}

// registerSubscribers wires all domain event handlers.
// Handlers must be idempotent: EventBus retries them on failure.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	subs := []subscription{
		{
			topic:   auditEvents.TopicAuditRecorded,
			handler: auditHandlers.NewAuditRecordedConsumer(auditPostgres.NewAuditRepository(a.Db), a.Logger).Handle,
		},
		{
			topic:   orderEvents.TopicOrdersChanged,
			handler: orderHandlers.NewOrdersChangedConsumer(cache.NewOrderSummaryCache(a.Redis), a.Logger).Handle,
		},
	}

	topics := make([]string, 0, len(subs))
	for _, s := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, s.topic, s.handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(s.topic)
		topics = append(topics, s.topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}
