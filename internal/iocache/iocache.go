// Package iocache provides the durable stores behind watchdex: the response
// cache that shields the upstream stats API and the run store that tracks
// ranking runs.
package iocache

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

// StoreManagerImpl manages the store instances for a process.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	cache        contract.CacheStore
	runs         contract.RunStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetCacheStore returns the response cache store.
func (mgr *StoreManagerImpl) GetCacheStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.cache
}

// GetRunStore returns the run-tracking store.
func (mgr *StoreManagerImpl) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}

// Close closes both stores. Safe to call when stores were never opened.
func (mgr *StoreManagerImpl) Close() error {
	mgr.Lock()
	defer mgr.Unlock()
	var firstErr error
	if mgr.cache != nil {
		if err := mgr.cache.Close(); err != nil {
			firstErr = err
		}
		mgr.cache = nil
	}
	if mgr.runs != nil {
		if err := mgr.runs.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		mgr.runs = nil
	}
	return firstErr
}

// Global manager instance for command entrypoints.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global store manager from the validated config.
// The function body runs exactly once, even with concurrent calls.
func InitStores(cfg *contract.Config) error {
	var initErr error

	initOnce.Do(func() {
		cacheStore, err := NewCacheStore(apiCacheTable, cfg.CacheBackend, cfg.CacheDBConnect)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize response cache: %w", err)
			return
		}

		runsBackend := cfg.RunsBackend
		if runsBackend == "" {
			runsBackend = schema.NoneBackend
		}
		runStore, err := NewRunStore(runsBackend, cfg.RunsDBConnect)
		if err != nil {
			_ = cacheStore.Close()
			initErr = fmt.Errorf("failed to initialize run store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.cache = cacheStore
		Manager.runs = runStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		_ = Manager.Close()
	})
}

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName guards dynamic table names used in queries.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern %s)", name, tableNamePattern)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}
