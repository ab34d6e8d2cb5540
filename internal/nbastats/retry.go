package nbastats

import (
	"context"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 500 * time.Millisecond
)

// retryingProvider wraps a StatsProvider with bounded retry and linear
// backoff on every fetch.
type retryingProvider struct {
	inner       contract.StatsProvider
	maxAttempts int
	backoff     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner contract.StatsProvider, maxAttempts int, backoff time.Duration) contract.StatsProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{inner: inner, maxAttempts: maxAttempts, backoff: backoff}
}

// retry runs fn up to maxAttempts times, sleeping between attempts with
// context awareness.
func retry[T any](ctx context.Context, r *retryingProvider, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		delay := time.Duration(attempt) * r.backoff
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, lastErr
}

func (r *retryingProvider) GameSummary(ctx context.Context, gameID string) (*schema.GameSummary, error) {
	return retry(ctx, r, func() (*schema.GameSummary, error) {
		return r.inner.GameSummary(ctx, gameID)
	})
}

func (r *retryingProvider) TraditionalBoxScore(ctx context.Context, gameID string) ([]schema.PlayerTraditionalLine, error) {
	return retry(ctx, r, func() ([]schema.PlayerTraditionalLine, error) {
		return r.inner.TraditionalBoxScore(ctx, gameID)
	})
}

func (r *retryingProvider) AdvancedBoxScore(ctx context.Context, gameID string) ([]schema.PlayerAdvancedLine, error) {
	return retry(ctx, r, func() ([]schema.PlayerAdvancedLine, error) {
		return r.inner.AdvancedBoxScore(ctx, gameID)
	})
}

func (r *retryingProvider) PlayByPlay(ctx context.Context, gameID string) ([]schema.PlayEvent, error) {
	return retry(ctx, r, func() ([]schema.PlayEvent, error) {
		return r.inner.PlayByPlay(ctx, gameID)
	})
}

func (r *retryingProvider) SeasonSchedule(ctx context.Context, season string) ([]schema.ScheduledGame, error) {
	return retry(ctx, r, func() ([]schema.ScheduledGame, error) {
		return r.inner.SeasonSchedule(ctx, season)
	})
}

func (r *retryingProvider) Scoreboard(ctx context.Context, date time.Time) ([]schema.ScoreboardGame, error) {
	return retry(ctx, r, func() ([]schema.ScoreboardGame, error) {
		return r.inner.Scoreboard(ctx, date)
	})
}
