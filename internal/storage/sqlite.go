package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/propshare-labs/propshare/internal/events"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS domain_events (
    id          TEXT PRIMARY KEY,
    event_type  TEXT NOT NULL,
    occurred_at TIMESTAMP NOT NULL,
    payload     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_domain_events_type ON domain_events (event_type);
`

// SQLiteStorage implements Storage on an embedded sqlite database. Suited
// for single-node deployments without a postgres instance.
type SQLiteStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStorage opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStorage(path string, logger *zap.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The journal is written by a single recorder goroutine.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(sqliteSchema)
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Info("sqlite-journal-opened", zap.String("path", path))

	return &SQLiteStorage{
		db:     db,
		logger: logger,
	}, nil
}

// StoreEvent appends ev to the domain_events table.
func (s *SQLiteStorage) StoreEvent(ctx context.Context, ev *events.Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	query := `
		INSERT INTO domain_events (id, event_type, occurred_at, payload)
		VALUES (?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query, ev.ID.String(), ev.Type, ev.Timestamp, string(payload))
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	EventsStoredTotal.WithLabelValues("sqlite").Inc()
	return nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	s.logger.Info("closing-sqlite-journal")
	return s.db.Close()
}
