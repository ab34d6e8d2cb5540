package nbastats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider fails a configured number of calls before succeeding.
type countingProvider struct {
	stubProvider

	failures int
	calls    int
}

func (c *countingProvider) GameSummary(_ context.Context, gameID string) (*schema.GameSummary, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, errors.New("transient")
	}
	return &schema.GameSummary{GameID: gameID}, nil
}

// TestRetrySucceedsAfterFailures recovers within the attempt budget.
func TestRetrySucceedsAfterFailures(t *testing.T) {
	inner := &countingProvider{failures: 2}
	provider := NewRetryingProvider(inner, 3, time.Millisecond)

	summary, err := provider.GameSummary(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", summary.GameID)
	assert.Equal(t, 3, inner.calls)
}

// TestRetryExhaustsAttempts returns the last error once the budget is spent.
func TestRetryExhaustsAttempts(t *testing.T) {
	inner := &countingProvider{failures: 10}
	provider := NewRetryingProvider(inner, 3, time.Millisecond)

	_, err := provider.GameSummary(context.Background(), "g1")
	assert.ErrorContains(t, err, "transient")
	assert.Equal(t, 3, inner.calls)
}

// TestRetryNoRetryOnSuccess calls the inner provider exactly once.
func TestRetryNoRetryOnSuccess(t *testing.T) {
	inner := &countingProvider{}
	provider := NewRetryingProvider(inner, 3, time.Millisecond)

	_, err := provider.GameSummary(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

// TestRetryContextCancelled aborts the backoff wait.
func TestRetryContextCancelled(t *testing.T) {
	inner := &countingProvider{failures: 10}
	provider := NewRetryingProvider(inner, 5, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := provider.GameSummary(ctx, "g1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, inner.calls)
}

// TestRetryDefaults substitutes defaults for non-positive settings.
func TestRetryDefaults(t *testing.T) {
	inner := &countingProvider{failures: defaultRetryAttempts - 1}
	provider := NewRetryingProvider(inner, 0, 0)

	rp, ok := provider.(*retryingProvider)
	require.True(t, ok)
	assert.Equal(t, defaultRetryAttempts, rp.maxAttempts)
	assert.Equal(t, defaultBackoff, rp.backoff)
}
