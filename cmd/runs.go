package cmd

import (
	"fmt"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/internal/iocache"
	"github.com/courtside/watchdex/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run store operations.
// This is used by commands that need run history without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run-tracking config values
	backendStr := viper.GetString("runs-backend")
	connStr := viper.GetString("runs-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = schema.NoneBackend
	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr

	// Get output-related config values (used by export command)
	cfg.OutputFile = viper.GetString("output-file")

	// Initialize stores with the loaded config (no caching for run commands)
	if err := iocache.InitStores(cfg); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for run commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run-tracking config values
	backendStr := viper.GetString("runs-backend")
	connStr := viper.GetString("runs-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunsDBFilePath()
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run history management.
//
// Note: Run subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by ranking commands. This avoids season validation
// and complex config processing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage historical ranking runs and exports",
	Long: `Manage historical ranking data used for trend tracking and reporting.

When enabled, watchdex records every ranking run, storing:
- Run metadata (timestamps, configuration, games ranked)
- Per-game sub-indices and watch index scores

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show stored run statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check stored runs
  watchdex runs status --runs-backend sqlite

  # Export for analysis in pandas/DuckDB
  watchdex runs export --runs-backend sqlite --output-file rank-data`,
}

// runsStatusCmd shows recorded runs.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display recorded ranking runs and connection details",
	Long: `Show the recorded ranking runs in the configured backend.

Displays for each run:
- Run ID and start/end timestamps
- Number of games ranked
- Configuration parameters used

Use this to:
- Verify run tracking is enabled and working
- Find a run ID to inspect or compare
- Check database connection health

Examples:
  # Check run history
  watchdex runs status --runs-backend sqlite`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := iocache.Manager.GetRunStore().Runs(0)
		if err != nil {
			contract.LogFatal("Failed to get run history", err)
		}
		iocache.PrintRuns(runs)
	},
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical ranking runs",
	Long: `Delete all stored ranking runs and per-game scores.

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting trend tracking
- Database storage is full
- Starting fresh ranking history

Examples:
  # Export before clearing
  watchdex runs export --runs-backend sqlite --output-file backup
  watchdex runs clear --runs-backend sqlite`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.Manager.GetRunStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsExportCmd exports run history to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored ranking data to Parquet format for use with analytics tools.

Exports two datasets:
- Rank runs - metadata about each ranking execution
- Game scores - per-game sub-indices and watch index values

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  watchdex runs export --runs-backend sqlite --output-file rank-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('rank-data.game_scores.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteRunsExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

Migrations allow:
- Upgrading to new schema versions when watchdex is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  watchdex runs migrate --runs-backend sqlite

  # Migrate to specific version
  watchdex runs migrate --runs-backend sqlite --target-version 1

  # Rollback to initial state
  watchdex runs migrate --runs-backend sqlite --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateRuns(cfg.RunsBackend, cfg.RunsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
