package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/goccy/go-json"
	_ "github.com/lib/pq"
	"github.com/propshare-labs/propshare/internal/events"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage connects, runs pending migrations, and returns the
// journal.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	cfg.Logger.Info("postgres-journal-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.Int("migrations-applied", n))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// StoreEvent appends ev to the domain_events table.
func (p *PostgresStorage) StoreEvent(ctx context.Context, ev *events.Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	query := `
		INSERT INTO domain_events (id, event_type, occurred_at, payload)
		VALUES ($1, $2, $3, $4)
	`
	_, err = p.db.ExecContext(ctx, query, ev.ID, ev.Type, ev.Timestamp, payload)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	EventsStoredTotal.WithLabelValues("postgres").Inc()
	p.logger.Debug("event-stored",
		zap.String("event-id", ev.ID.String()),
		zap.String("type", ev.Type))

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-journal")
	return p.db.Close()
}
