package cmd

import (
	"github.com/courtside/watchdex/core"
	"github.com/courtside/watchdex/internal/contract"
	"github.com/spf13/cobra"
)

// previewCmd shows the schedule for a single day.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the matchups scheduled for a given day.",
	Long: `List the games scheduled for a calendar date, with live status text.

No scoring happens here. The scoreboard is fetched fresh on every call
so status text stays current for in-progress games.

Examples:
  # Tonight's slate
  watchdex preview

  # A specific date
  watchdex preview --date 2025-01-15`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWatchPreview(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot preview games", err)
		}
	},
}
