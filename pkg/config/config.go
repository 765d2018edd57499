package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Marketplace
	OwnerAddress           string
	ListingFeePct          uint64
	CancellationPenaltyPct uint64
	ShareTradingFeePct     uint64

	// Events
	EventBufferSize int

	// Projection cache
	DisplayCacheTTL time.Duration

	// Event journal
	StorageMode  string // "postgres", "sqlite" or "console"
	SQLitePath   string
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Marketplace defaults
		OwnerAddress:           os.Getenv("MARKETPLACE_OWNER_ADDRESS"),
		ListingFeePct:          getUint64OrDefault("MARKETPLACE_LISTING_FEE_PCT", 3),
		CancellationPenaltyPct: getUint64OrDefault("MARKETPLACE_CANCELLATION_PENALTY_PCT", 1),
		ShareTradingFeePct:     getUint64OrDefault("MARKETPLACE_SHARE_TRADING_FEE_PCT", 2),

		// Event defaults
		EventBufferSize: getIntOrDefault("EVENT_BUFFER_SIZE", 1024),

		// Cache defaults
		DisplayCacheTTL: getDurationOrDefault("DISPLAY_CACHE_TTL", 2*time.Second),

		// Journal defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		SQLitePath:   getEnvOrDefault("SQLITE_PATH", "propshare.db"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "propshare"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "propshare123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "propshare"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.OwnerAddress == "" {
		return fmt.Errorf("MARKETPLACE_OWNER_ADDRESS cannot be empty")
	}
	if !common.IsHexAddress(c.OwnerAddress) {
		return fmt.Errorf("MARKETPLACE_OWNER_ADDRESS is not a valid address: %q", c.OwnerAddress)
	}
	if common.HexToAddress(c.OwnerAddress) == (common.Address{}) {
		return fmt.Errorf("MARKETPLACE_OWNER_ADDRESS cannot be the zero address")
	}

	if c.ListingFeePct >= 100 {
		return fmt.Errorf("MARKETPLACE_LISTING_FEE_PCT must be below 100, got %d", c.ListingFeePct)
	}
	if c.CancellationPenaltyPct >= 100 {
		return fmt.Errorf("MARKETPLACE_CANCELLATION_PENALTY_PCT must be below 100, got %d", c.CancellationPenaltyPct)
	}
	if c.ShareTradingFeePct >= 100 {
		return fmt.Errorf("MARKETPLACE_SHARE_TRADING_FEE_PCT must be below 100, got %d", c.ShareTradingFeePct)
	}

	if c.StorageMode != "postgres" && c.StorageMode != "sqlite" && c.StorageMode != "console" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres', 'sqlite' or 'console', got %q", c.StorageMode)
	}

	return nil
}

// Owner returns the parsed marketplace owner address.
func (c *Config) Owner() common.Address {
	return common.HexToAddress(c.OwnerAddress)
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getUint64OrDefault(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	uintVal, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return uintVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
