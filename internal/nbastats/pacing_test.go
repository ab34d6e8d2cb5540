package nbastats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPacingSpacesCalls enforces the minimum interval between calls.
func TestPacingSpacesCalls(t *testing.T) {
	interval := 20 * time.Millisecond
	provider := NewPacedProvider(stubProvider{}, interval)

	start := time.Now()
	for range 3 {
		_, err := provider.GameSummary(context.Background(), "g1")
		require.NoError(t, err)
	}
	elapsed := time.Since(start)

	// Three calls need at least two full intervals of spacing.
	assert.GreaterOrEqual(t, elapsed, 2*interval)
}

// TestPacingDisabled passes through for a non-positive interval.
func TestPacingDisabled(t *testing.T) {
	inner := stubProvider{}
	provider := NewPacedProvider(inner, 0)

	_, ok := provider.(*pacedProvider)
	assert.False(t, ok)
}

// TestPacingContextCancelled gives up while waiting for a slot.
func TestPacingContextCancelled(t *testing.T) {
	provider := NewPacedProvider(stubProvider{}, time.Minute)

	// First call takes the immediate slot.
	_, err := provider.GameSummary(context.Background(), "g1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = provider.GameSummary(ctx, "g2")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
