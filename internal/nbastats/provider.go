package nbastats

import (
	"github.com/courtside/watchdex/internal/contract"
)

// NewProvider assembles the full provider stack from validated
// configuration: HTTP client, call pacing, bounded retry, then response
// caching. Cache hits skip retry and pacing entirely, so a warm cache
// replays a batch without touching the upstream.
func NewProvider(cfg *contract.Config, store contract.CacheStore) contract.StatsProvider {
	var provider contract.StatsProvider = NewClient(Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.APITimeout,
	})
	provider = NewPacedProvider(provider, cfg.PaceDelay)
	provider = NewRetryingProvider(provider, cfg.Retries, defaultBackoff)
	provider = NewCachingProvider(provider, store)
	return provider
}
