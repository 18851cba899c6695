package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zorofrizzy/breatheBack/internal/api"
	"github.com/zorofrizzy/breatheBack/internal/config"
	"github.com/zorofrizzy/breatheBack/internal/redis"
	"github.com/zorofrizzy/breatheBack/internal/service"
	"github.com/zorofrizzy/breatheBack/internal/storage"
	filestorage "github.com/zorofrizzy/breatheBack/internal/storage/file"
	pgstorage "github.com/zorofrizzy/breatheBack/internal/storage/postgres"
	"github.com/zorofrizzy/breatheBack/internal/zonestore"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Storage    storage.Storage
	Postgres   *pgstorage.Storage // nil for the file backend
	Redis      *redis.Redis       // nil when no REDIS_ADDR configured
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	var (
		st storage.Storage
		pg *pgstorage.Storage
	)

	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		logger.Info("Initializing Postgres storage")
		var err error
		pg, err = pgstorage.New(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres storage: %w", err)
		}
		st = pg
	default:
		logger.Info("Initializing file storage", slog.String("dir", cfg.Storage.Dir))
		fs, err := filestorage.New(cfg.Storage.Dir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init file storage: %w", err)
		}
		st = fs
	}

	var (
		redisClient *redis.Redis
		cache       service.ZoneViewCache
	)
	if cfg.Redis.Addr != "" {
		logger.Info("Initializing Redis")
		var err error
		redisClient, err = redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		cache = redis.NewZoneViewCache(redisClient, cfg.Redis.TTL)
	}

	store := zonestore.New()
	zones, err := st.LoadZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load zones: %w", err)
	}
	if err := store.Restore(zones); err != nil {
		return nil, fmt.Errorf("failed to restore zones: %w", err)
	}
	logger.Info("Zones loaded", slog.Int("count", store.Len()))

	ledger, err := service.NewLedger(ctx, st, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init points ledger: %w", err)
	}

	events, err := service.NewEventLog(ctx, st, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init event log: %w", err)
	}

	svc := service.NewService(
		service.NewReportService(store, st, cache, logger),
		service.NewActionService(store, ledger, st, cache, logger),
		service.NewZoneService(store, cache, logger),
		ledger,
		events,
		service.NewAdminService(store, ledger, events, st, cache, logger),
	)

	httpServer := api.NewServer(cfg, logger, svc)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Storage:    st,
		Postgres:   pg,
		Redis:      redisClient,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("shutting down components")

	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped",
		slog.Duration("latency", time.Since(start)))
}
