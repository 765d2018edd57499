package storage

import (
	"context"
	"sync"

	"github.com/propshare-labs/propshare/internal/events"
	"go.uber.org/zap"
)

// Recorder drains a bus subscription into the journal. A journal write
// failure is logged and counted, never propagated back into the engine.
type Recorder struct {
	storage Storage
	events  <-chan *events.Event
	logger  *zap.Logger
	ctx     context.Context
	wg      sync.WaitGroup
}

// RecorderConfig holds recorder configuration.
type RecorderConfig struct {
	Storage Storage
	Events  <-chan *events.Event
	Logger  *zap.Logger
}

// NewRecorder creates a recorder over an existing bus subscription.
func NewRecorder(cfg *RecorderConfig) *Recorder {
	return &Recorder{
		storage: cfg.Storage,
		events:  cfg.Events,
		logger:  cfg.Logger,
	}
}

// Start starts the recorder loop.
func (r *Recorder) Start(ctx context.Context) error {
	r.ctx = ctx
	r.logger.Info("event-recorder-starting")

	r.wg.Add(1)
	go r.run()

	return nil
}

func (r *Recorder) run() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Info("event-recorder-stopping")
			return
		case ev, ok := <-r.events:
			if !ok {
				r.logger.Info("event-channel-closed")
				return
			}

			err := r.storage.StoreEvent(r.ctx, ev)
			if err != nil {
				StoreErrorsTotal.Inc()
				r.logger.Error("store-event-error",
					zap.Error(err),
					zap.String("event-id", ev.ID.String()),
					zap.String("type", ev.Type))
			}
		}
	}
}

// Close waits for the recorder loop to drain.
func (r *Recorder) Close() error {
	r.wg.Wait()
	return nil
}
