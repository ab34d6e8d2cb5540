package cmd

import (
	"github.com/courtside/watchdex/core"
	"github.com/courtside/watchdex/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd explains the sub-indices behind the watch index.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Describe the sub-indices that make up the watch index.",
	Long: `Describe each sub-index, its inputs, and its weight in the composite score.

Useful as a reference when reading rank output, or when deciding how
much to trust a particular score for your taste in games.

Examples:
  # Human-readable descriptions
  watchdex metrics

  # Machine-readable definitions
  watchdex metrics --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWatchMetrics(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot describe metrics", err)
		}
	},
}
