// Package storage persists the engine's domain events so external indexing
// and notification collaborators can replay them. Three backends: postgres,
// sqlite, and a console fallback for local runs.
package storage

import (
	"context"

	"github.com/propshare-labs/propshare/internal/events"
)

// Storage is the interface for the domain event journal.
type Storage interface {
	// StoreEvent appends one domain event to the journal.
	StoreEvent(ctx context.Context, ev *events.Event) error

	// Close closes the storage connection.
	Close() error
}
