package app

import (
	"context"
	"fmt"

	"github.com/propshare-labs/propshare/internal/engine"
	"github.com/propshare-labs/propshare/internal/events"
	"github.com/propshare-labs/propshare/internal/storage"
	"github.com/propshare-labs/propshare/pkg/cache"
	"github.com/propshare-labs/propshare/pkg/config"
	"github.com/propshare-labs/propshare/pkg/healthprobe"
	"github.com/propshare-labs/propshare/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New()

	bus := setupBus(cfg, logger)

	eng, err := setupEngine(cfg, logger, bus)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup engine: %w", err)
	}

	journal, err := setupJournal(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup journal: %w", err)
	}

	recorder := storage.NewRecorder(&storage.RecorderConfig{
		Storage: journal,
		Events:  bus.Subscribe(),
		Logger:  logger.Named("recorder"),
	})

	displayCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	httpServer := setupHTTPServer(cfg, logger, healthChecker, eng, bus, displayCache)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		engine:        eng,
		bus:           bus,
		recorder:      recorder,
		journal:       journal,
		displayCache:  displayCache,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupBus(cfg *config.Config, logger *zap.Logger) *events.Bus {
	return events.NewBus(&events.Config{
		BufferSize: cfg.EventBufferSize,
		Logger:     logger.Named("bus"),
	})
}

func setupEngine(cfg *config.Config, logger *zap.Logger, bus *events.Bus) (*engine.Engine, error) {
	return engine.New(&engine.Config{
		Owner:                  cfg.Owner(),
		ListingFeePct:          cfg.ListingFeePct,
		CancellationPenaltyPct: cfg.CancellationPenaltyPct,
		ShareTradingFeePct:     cfg.ShareTradingFeePct,
		Logger:                 logger.Named("engine"),
		Bus:                    bus,
	})
}

func setupJournal(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.StorageMode {
	case "postgres":
		return storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger.Named("journal"),
		})
	case "sqlite":
		return storage.NewSQLiteStorage(cfg.SQLitePath, logger.Named("journal"))
	default:
		return storage.NewConsoleStorage(logger.Named("journal")), nil
	}
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10000,
		MaxCost:     1000,
		BufferItems: 64,
		Logger:      logger.Named("cache"),
	})
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	eng *engine.Engine,
	bus *events.Bus,
	displayCache cache.Cache,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger.Named("http"),
		HealthChecker: healthChecker,
		Engine:        eng,
		Bus:           bus,
		Cache:         displayCache,
		CacheTTL:      cfg.DisplayCacheTTL,
	})
}
