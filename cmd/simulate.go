package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/propshare-labs/propshare/internal/engine"
	"github.com/propshare-labs/propshare/internal/events"
	"github.com/propshare-labs/propshare/internal/storage"
	"github.com/propshare-labs/propshare/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted marketplace scenario",
	Long: `Runs a self-contained marketplace scenario against an in-memory
engine and prints every domain event to the console:

1. The owner registers a seller, the seller lists two assets
2. An admin verifies both, a buyer purchases one whole through escrow
3. The other asset is fractionalized and two buyers take positions
4. A dividend is distributed and shares are traded on the secondary market

Useful for demos and for eyeballing fee and dividend arithmetic.`,
	RunE: runSimulate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(simulateCmd)
}

//nolint:gochecknoglobals // Fixed scenario identities
var (
	simSeller = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	simBuyer1 = common.HexToAddress("0x00000000000000000000000000000000000000B1")
	simBuyer2 = common.HexToAddress("0x00000000000000000000000000000000000000B2")
)

func runSimulate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	bus := events.NewBus(&events.Config{BufferSize: cfg.EventBufferSize, Logger: logger.Named("bus")})
	defer bus.Close()

	journal := storage.NewConsoleStorage(logger.Named("journal"))
	recorder := storage.NewRecorder(&storage.RecorderConfig{
		Storage: journal,
		Events:  bus.Subscribe(),
		Logger:  logger.Named("recorder"),
	})
	err = recorder.Start(cmd.Context())
	if err != nil {
		return fmt.Errorf("start recorder: %w", err)
	}

	eng, err := engine.New(&engine.Config{
		Owner:                  cfg.Owner(),
		ListingFeePct:          cfg.ListingFeePct,
		CancellationPenaltyPct: cfg.CancellationPenaltyPct,
		ShareTradingFeePct:     cfg.ShareTradingFeePct,
		Logger:                 logger.Named("engine"),
		Bus:                    bus,
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	err = runScenario(eng, cfg.Owner())
	if err != nil {
		return err
	}

	// Drain remaining events before exiting
	bus.Close()
	err = recorder.Close()
	if err != nil {
		return fmt.Errorf("close recorder: %w", err)
	}

	stats := eng.Snapshot()
	logger.Info("simulation-complete",
		zap.Int("assets", stats.Assets),
		zap.Int("fractionalized-assets", stats.FractionalizedAssets),
		zap.Int("active-listings", stats.ActiveListings),
		zap.Uint64("custody-balance", stats.CustodyBalance),
		zap.Uint64("seller-balance", eng.Balance(simSeller)),
		zap.Uint64("buyer1-balance", eng.Balance(simBuyer1)),
		zap.Uint64("buyer2-balance", eng.Balance(simBuyer2)))

	return nil
}

func runScenario(eng *engine.Engine, owner common.Address) error {
	// Fund participants
	steps := []struct {
		name string
		fn   func() error
	}{
		{"fund-buyer1", func() error { return eng.Deposit(simBuyer1, 100_000) }},
		{"fund-buyer2", func() error { return eng.Deposit(simBuyer2, 100_000) }},
		{"fund-custody", func() error { return eng.FundCustody(owner, 10_000) }},

		{"register-seller", func() error { return eng.RegisterSeller(owner, simSeller) }},
		{"create-asset-1", func() error {
			_, err := eng.CreateAsset(simSeller, 50_000, "ipfs://sim/villa")
			return err
		}},
		{"create-asset-2", func() error {
			_, err := eng.CreateAsset(simSeller, 10_000, "ipfs://sim/apartment")
			return err
		}},
		{"verify-asset-1", func() error { return eng.VerifyAsset(owner, 1) }},
		{"verify-asset-2", func() error { return eng.VerifyAsset(owner, 2) }},

		// Whole purchase through escrow
		{"buy-asset-1", func() error { return eng.BuyAsset(simBuyer1, 1) }},
		{"confirm-asset-1", func() error { return eng.ConfirmAssetPayment(simBuyer1, 1) }},

		// Fractional positions
		{"fractionalize-asset-2", func() error { return eng.CreateFractionalAsset(owner, 2, 100) }},
		{"buy-shares-buyer1", func() error { return eng.BuyFractionalAsset(simBuyer1, 2, 30) }},
		{"buy-shares-buyer2", func() error { return eng.BuyFractionalAsset(simBuyer2, 2, 20) }},

		// Dividend out of custody
		{"distribute-dividends", func() error { return eng.DistributeFractionalDividends(owner, 2, 1_000) }},

		// Secondary market
		{"list-shares", func() error {
			_, err := eng.ListSharesForSale(simBuyer1, 2, 10, 150)
			return err
		}},
		{"buy-listed-shares", func() error { return eng.BuyListedShares(simBuyer2, 1) }},
		{"transfer-shares", func() error { return eng.TransferShares(simBuyer2, 2, simBuyer1, 5) }},
	}

	for _, step := range steps {
		err := step.fn()
		if err != nil {
			return fmt.Errorf("scenario step %s: %w", step.name, err)
		}
	}

	return nil
}
