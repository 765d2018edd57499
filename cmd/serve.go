package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/propshare-labs/propshare/internal/app"
	"github.com/propshare-labs/propshare/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the marketplace server",
	Long: `Starts the marketplace ledger and its HTTP surface:
1. Read projections and mutation endpoints under /api/v1
2. Domain event stream at /ws/events
3. Prometheus metrics at /metrics, health probes at /health and /ready

Configuration comes from environment variables. A .env file in the working
directory is loaded when present.`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional
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

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
