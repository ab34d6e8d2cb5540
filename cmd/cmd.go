// Package cmd defines the command-line interface for watchdex.
package cmd

import (
	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("season", "s", "", "Season label in YYYY-YY format (e.g. 2024-25)")
	rootCmd.PersistentFlags().String("start", "", "Inclusive start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("end", "", "Inclusive end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Int("games", 0, "Cap on the number of games processed (0 = all in window)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent extraction workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("base-url", "", "Override the upstream stats API base URL")
	rootCmd.PersistentFlags().String("api-timeout", contract.DefaultAPITimeout.String(), "HTTP timeout for upstream calls")
	rootCmd.PersistentFlags().Int("retries", contract.DefaultRetries, "Retry attempts for failed upstream calls")
	rootCmd.PersistentFlags().String("pace-delay", contract.DefaultPaceDelay.String(), "Minimum spacing between upstream calls")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Response cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of recentCmd to Viper
	recentCmd.Flags().Int("days-back", contract.DefaultDaysBack, "Lookback window in days")
	if err := viper.BindPFlags(recentCmd.Flags()); err != nil {
		contract.LogFatal("Error binding recent flags", err)
	}

	// Bind all flags of previewCmd to Viper
	previewCmd.Flags().String("date", "", "Calendar date to preview (YYYY-MM-DD, defaults to today)")
	if err := viper.BindPFlags(previewCmd.Flags()); err != nil {
		contract.LogFatal("Error binding preview flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
