package cmd

import (
	"github.com/courtside/watchdex/core"
	"github.com/courtside/watchdex/internal/contract"
	"github.com/spf13/cobra"
)

// recentCmd ranks games from a rolling lookback window.
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Rank games from the last N days.",
	Long: `Rank games completed within a rolling lookback window ending today.

The season and date window are derived from the current date, so this
is the quickest way to answer "what did I miss this week?". Seasons
roll over in October, so a January run resolves to the season that
started the previous fall.

Examples:
  # Rank the last two weeks (default window)
  watchdex recent

  # Rank the last three days
  watchdex recent --days-back 3

  # Rank the last month, top 20 only
  watchdex recent --days-back 30 --limit 20`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWatchRecent(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot rank recent games", err)
		}
	},
}
