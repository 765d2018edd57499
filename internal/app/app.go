package app

import (
	"context"
	"sync"

	"github.com/propshare-labs/propshare/internal/engine"
	"github.com/propshare-labs/propshare/internal/events"
	"github.com/propshare-labs/propshare/internal/storage"
	"github.com/propshare-labs/propshare/pkg/cache"
	"github.com/propshare-labs/propshare/pkg/config"
	"github.com/propshare-labs/propshare/pkg/healthprobe"
	"github.com/propshare-labs/propshare/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	engine        *engine.Engine
	bus           *events.Bus
	recorder      *storage.Recorder
	journal       storage.Storage
	displayCache  cache.Cache
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Engine exposes the ledger engine, used by the simulate command.
func (a *App) Engine() *engine.Engine {
	return a.engine
}
