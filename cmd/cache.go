package cmd

import (
	"fmt"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/internal/iocache"
	"github.com/courtside/watchdex/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	cfg.RunsBackend = schema.NoneBackend

	// Initialize caching with the loaded config (no run tracking for cache commands)
	if err := iocache.InitStores(cfg); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by ranking commands. This avoids season validation
// and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the API response cache (improves performance)",
	Long: `Manage the response cache that speeds up repeated rankings.

Watchdex caches upstream stats responses to avoid hammering the API on every
run. Box scores and play-by-play for finished games never change, so cached
responses stay valid indefinitely.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no caching)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  watchdex cache status

  # Clear cache to force fresh fetches
  watchdex cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached API responses",
	Long: `Delete all cached API responses from the configured backend.

Use this when:
- The cache format changed between releases
- Cache may be stale or corrupted
- Testing fetch performance without cache
- Reclaiming disk space after large season runs

Examples:
  # Clear SQLite cache (default)
  watchdex cache clear

  # Clear MySQL cache (set connection string via env variable)
  WATCHDEX_CACHE_BACKEND=mysql WATCHDEX_CACHE_DB_CONNECT="..." watchdex cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.Manager.GetCacheStore().Clear(); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the API response cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Total size of cached payloads

Use this to:
- Verify cache is working and connected
- Monitor cache growth over time
- Debug cache-related issues

Examples:
  # Check cache status
  watchdex cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetCacheStore().Status()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
