package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/victordehoyos/ProductCatalog/pkg/app"
	"github.com/victordehoyos/ProductCatalog/pkg/cache"
	"github.com/victordehoyos/ProductCatalog/pkg/clock"
	"github.com/victordehoyos/ProductCatalog/pkg/config"
	"github.com/victordehoyos/ProductCatalog/pkg/database"
	"github.com/victordehoyos/ProductCatalog/pkg/events"
	"github.com/victordehoyos/ProductCatalog/pkg/logger"
	"github.com/victordehoyos/ProductCatalog/pkg/telemetry"
	orderEvents "github.com/victordehoyos/ProductCatalog/services/catalog/domain/events"
	"github.com/victordehoyos/ProductCatalog/services/catalog/domain/models"
	"github.com/victordehoyos/ProductCatalog/services/catalog/infrastructure/persistence/postgres"
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

	pool, err := database.NewPool(ctx, cfg.CatalogDatabaseURL, log)
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
		Clock:    clock.NewSystem(),
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

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, orderEvents.TopicOrderPlaced, handleOrderPlaced(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", orderEvents.TopicOrderPlaced,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{orderEvents.TopicOrderPlaced})
	return nil
}

// handleOrderPlaced returns a handler for order.placed events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Refreshes the product read-model cache so reads observe the reduced stock
// without hitting Postgres.
func handleOrderPlaced(a *app.Application) func(context.Context, *message.Message) error {
	productCache := cache.NewProductCache(a.Redis)
	products := postgres.NewProductRepository(a.Db)
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderEvents.OrderPlacedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		product, err := products.GetByID(ctx, evt.ProductID)
		if err != nil {
			// The product may have been deleted after the order committed;
			// drop the stale cache entry and move on.
			if delErr := productCache.Delete(ctx, evt.ProductID); delErr != nil {
				a.Logger.WarnContext(ctx, "cache invalidation failed for order.placed",
					"product_id", evt.ProductID, "error", delErr)
			}
			return nil
		}

		if err := productCache.Set(ctx, cachedFromProduct(product)); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for order.placed",
				"product_id", evt.ProductID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"product_id", evt.ProductID, "order_id", evt.OrderID)
		}

		return nil
	}
}

func cachedFromProduct(p *models.Product) *cache.CachedProduct {
	return &cache.CachedProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
	}
}
