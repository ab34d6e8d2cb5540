package nbastats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

// cacheVersion is bumped whenever the cached payload shape changes so stale
// entries from older builds are ignored rather than misdecoded.
const cacheVersion = 1

// cachingProvider serves per-game lookups from the cache store before
// touching the upstream. Box scores of finished games are immutable, so
// entries never expire. Schedule and scoreboard lookups change while a
// season is in flight and are never cached.
type cachingProvider struct {
	inner contract.StatsProvider
	store contract.CacheStore
}

// NewCachingProvider wraps the given provider with response caching.
// A nil store disables caching.
func NewCachingProvider(inner contract.StatsProvider, store contract.CacheStore) contract.StatsProvider {
	if store == nil {
		return inner
	}
	return &cachingProvider{inner: inner, store: store}
}

// cached fetches key from the store, falling back to fn and storing its
// result on a miss. Cache failures degrade to the upstream call.
func cached[T any](c *cachingProvider, key string, fn func() (T, error)) (T, error) {
	if data, version, _, err := c.store.Get(key); err == nil && version == cacheVersion {
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			return value, nil
		}
	}

	value, err := fn()
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := c.store.Set(key, data, cacheVersion); err != nil {
			contract.LogWarn("cache write failed for "+key, err)
		}
	}
	return value, nil
}

func (c *cachingProvider) GameSummary(ctx context.Context, gameID string) (*schema.GameSummary, error) {
	return cached(c, "summary:"+gameID, func() (*schema.GameSummary, error) {
		return c.inner.GameSummary(ctx, gameID)
	})
}

func (c *cachingProvider) TraditionalBoxScore(ctx context.Context, gameID string) ([]schema.PlayerTraditionalLine, error) {
	return cached(c, "boxtrad:"+gameID, func() ([]schema.PlayerTraditionalLine, error) {
		return c.inner.TraditionalBoxScore(ctx, gameID)
	})
}

func (c *cachingProvider) AdvancedBoxScore(ctx context.Context, gameID string) ([]schema.PlayerAdvancedLine, error) {
	return cached(c, "boxadv:"+gameID, func() ([]schema.PlayerAdvancedLine, error) {
		return c.inner.AdvancedBoxScore(ctx, gameID)
	})
}

func (c *cachingProvider) PlayByPlay(ctx context.Context, gameID string) ([]schema.PlayEvent, error) {
	return cached(c, "pbp:"+gameID, func() ([]schema.PlayEvent, error) {
		return c.inner.PlayByPlay(ctx, gameID)
	})
}

func (c *cachingProvider) SeasonSchedule(ctx context.Context, season string) ([]schema.ScheduledGame, error) {
	return c.inner.SeasonSchedule(ctx, season)
}

func (c *cachingProvider) Scoreboard(ctx context.Context, date time.Time) ([]schema.ScoreboardGame, error) {
	return c.inner.Scoreboard(ctx, date)
}
