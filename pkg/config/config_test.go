package config

import (
	"testing"
	"time"
)

const testOwner = "0x1111111111111111111111111111111111111111"

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("MARKETPLACE_OWNER_ADDRESS", testOwner)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.ListingFeePct != 3 || cfg.CancellationPenaltyPct != 1 || cfg.ShareTradingFeePct != 2 {
		t.Errorf("unexpected default fees: %d/%d/%d",
			cfg.ListingFeePct, cfg.CancellationPenaltyPct, cfg.ShareTradingFeePct)
	}
	if cfg.StorageMode != "console" {
		t.Errorf("expected console storage default, got %s", cfg.StorageMode)
	}
	if cfg.Owner().Hex() != testOwner {
		t.Errorf("owner parse mismatch: %s", cfg.Owner().Hex())
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("MARKETPLACE_OWNER_ADDRESS", testOwner)
	t.Setenv("MARKETPLACE_LISTING_FEE_PCT", "5")
	t.Setenv("STORAGE_MODE", "sqlite")
	t.Setenv("DISPLAY_CACHE_TTL", "10s")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.ListingFeePct != 5 {
		t.Errorf("expected fee 5, got %d", cfg.ListingFeePct)
	}
	if cfg.StorageMode != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.StorageMode)
	}
	if cfg.DisplayCacheTTL != 10*time.Second {
		t.Errorf("expected 10s TTL, got %s", cfg.DisplayCacheTTL)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing-owner",
			env:  map[string]string{},
		},
		{
			name: "bad-owner",
			env:  map[string]string{"MARKETPLACE_OWNER_ADDRESS": "not-an-address"},
		},
		{
			name: "zero-owner",
			env: map[string]string{
				"MARKETPLACE_OWNER_ADDRESS": "0x0000000000000000000000000000000000000000",
			},
		},
		{
			name: "fee-too-high",
			env: map[string]string{
				"MARKETPLACE_OWNER_ADDRESS":   testOwner,
				"MARKETPLACE_LISTING_FEE_PCT": "100",
			},
		},
		{
			name: "bad-storage-mode",
			env: map[string]string{
				"MARKETPLACE_OWNER_ADDRESS": testOwner,
				"STORAGE_MODE":              "redis",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadFromEnv(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
