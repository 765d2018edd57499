package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Shutdown gracefully shuts down the application. The bus closes before
// the recorder so the recorder drains the remaining events, then the
// journal closes last.
func (a *App) Shutdown() error {
	a.logger.Info("application-shutting-down")

	a.healthChecker.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Stop accepting requests first so no new events get published
	err := a.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error("http-server-shutdown-error", zap.Error(err))
	}

	a.bus.Close()

	err = a.recorder.Close()
	if err != nil {
		a.logger.Error("recorder-close-error", zap.Error(err))
	}

	a.cancel()

	err = a.journal.Close()
	if err != nil {
		a.logger.Error("journal-close-error", zap.Error(err))
	}

	a.displayCache.Close()

	a.wg.Wait()

	a.logger.Info("application-shutdown-complete")

	return nil
}
