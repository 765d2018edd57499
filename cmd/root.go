package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "propshare",
	Short: "Property asset tokenization marketplace",
	Long: `Propshare runs a marketplace ledger for tokenized property assets:
sellers list assets, admins verify them, buyers purchase them whole through
escrow or in fractional shares, and share holders trade on a secondary
market and receive dividend distributions.

State is held in memory by a single-writer ledger engine. Every committed
change emits a domain event that is streamed over websocket and journaled
to PostgreSQL, SQLite or the console.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
