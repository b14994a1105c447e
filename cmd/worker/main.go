package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/adapters/cache"
	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/adapters/persistence"
	dashboardUC "github.com/khoahotran/portfolio-admin/internal/application/usecase/dashboard"
	"github.com/khoahotran/portfolio-admin/internal/bootstrap"
	"github.com/khoahotran/portfolio-admin/internal/config"
	"github.com/khoahotran/portfolio-admin/internal/domain/dashboard"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
	"github.com/khoahotran/portfolio-admin/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Portfolio Admin Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("Worker needs kafka.brokers", nil)
	}
	if cfg.DB.Driver == config.DriverMemory {
		appLogger.Fatal("Worker cannot share an in-memory store with the API server", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Jaeger.OTLPEndpoint != "" {
		shutdownTracing, err := tracing.Setup(ctx, tracing.OptionsFromConfig(cfg, "portfolio-admin-worker"), appLogger)
		if err != nil {
			appLogger.Fatal("Cannot initialize tracer", err)
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				appLogger.Error("Tracer shutdown failed", err)
			}
		}()
	}

	stores, err := bootstrap.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open store", err)
	}
	defer stores.Close()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	var summaryCache dashboard.Cache
	if redisClient != nil {
		defer redisClient.Close()
		summaryCache = cache.NewRedisSummaryCache(redisClient, cfg.Dashboard.CacheTTL)
	} else {
		appLogger.Warn("No Redis configured, refreshed summaries stay local to the worker")
		summaryCache = cache.NewMemorySummaryCache(cfg.Dashboard.CacheTTL)
	}

	summaryUseCase := dashboardUC.NewSummaryUseCase(stores.Projects, stores.Experiences, stores.Feedback,
		summaryCache, cfg.Dashboard.Months, appLogger)
	processEventUC := dashboardUC.NewProcessContentEventUseCase(summaryUseCase, appLogger)

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicContentEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicContentEvents), zap.String("group_id", cfg.Kafka.GroupID))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.ContentEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal event, skipping", err, zap.ByteString("key", msg.Key))
			commitMessage(ctx, consumer, msg, appLogger)
			continue
		}

		if err := processEventUC.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process content event", err, zap.String("resource_id", payload.ResourceID.String()))
			continue
		}

		commitMessage(ctx, consumer, msg, appLogger)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}
