package cmd

import (
	"github.com/courtside/watchdex/core"
	"github.com/courtside/watchdex/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd ranks completed games by watch index.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank completed games by how watchable they were.",
	Long: `Fetch box scores and play-by-play for completed games and rank them by watch index.

Combines per-game metrics into five sub-indices, helping you:
- Find the most entertaining games of a season or date window
- Surface close, clutch finishes you may have missed
- Compare offensive showcases against defensive grinders
- Spot overtime thrillers and star performances at a glance

Games are scored on percentile ranks within the selected window,
so the index always reflects the games you asked about, not the
whole league history.

Examples:
  # Rank the first week of a season
  watchdex rank --season 2024-25 --start 2024-10-22 --end 2024-10-28

  # Rank a whole season, showing the top 25
  watchdex rank --season 2024-25 --limit 25

  # Cap the number of games fetched while testing
  watchdex rank --season 2024-25 --games 50

  # Export full results to CSV
  watchdex rank --season 2024-25 --output csv --output-file games.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWatchRank(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot rank games", err)
		}
	},
}
