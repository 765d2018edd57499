package storage

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/propshare-labs/propshare/internal/events"
	"go.uber.org/zap"
)

// ConsoleStorage implements Storage by printing events to stdout. Default
// backend for local runs without a database.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console journal.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	return &ConsoleStorage{logger: logger}
}

// StoreEvent prints ev to stdout.
func (c *ConsoleStorage) StoreEvent(_ context.Context, ev *events.Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	fmt.Printf("DOMAIN EVENT %s %s %s %s\n",
		ev.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		ev.Type, ev.ID, payload)

	EventsStoredTotal.WithLabelValues("console").Inc()
	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	return nil
}
