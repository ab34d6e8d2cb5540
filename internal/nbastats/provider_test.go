package nbastats

import (
	"context"
	"testing"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a zero-value StatsProvider for decorator tests.
type stubProvider struct{}

func (stubProvider) GameSummary(_ context.Context, gameID string) (*schema.GameSummary, error) {
	return &schema.GameSummary{GameID: gameID}, nil
}

func (stubProvider) TraditionalBoxScore(_ context.Context, _ string) ([]schema.PlayerTraditionalLine, error) {
	return nil, nil
}

func (stubProvider) AdvancedBoxScore(_ context.Context, _ string) ([]schema.PlayerAdvancedLine, error) {
	return nil, nil
}

func (stubProvider) PlayByPlay(_ context.Context, _ string) ([]schema.PlayEvent, error) {
	return nil, nil
}

func (stubProvider) SeasonSchedule(_ context.Context, _ string) ([]schema.ScheduledGame, error) {
	return nil, nil
}

func (stubProvider) Scoreboard(_ context.Context, _ time.Time) ([]schema.ScoreboardGame, error) {
	return nil, nil
}

// TestNewProviderStack assembles the full decorator chain.
func TestNewProviderStack(t *testing.T) {
	cfg := &contract.Config{
		APITimeout: time.Second,
		Retries:    2,
		PaceDelay:  time.Millisecond,
	}
	provider := NewProvider(cfg, newMemoryCacheStore())
	require.NotNil(t, provider)

	_, ok := provider.(*cachingProvider)
	assert.True(t, ok, "outermost layer should be the cache")
}

// TestNewProviderWithoutCache skips the caching layer for a nil store.
func TestNewProviderWithoutCache(t *testing.T) {
	cfg := &contract.Config{APITimeout: time.Second}
	provider := NewProvider(cfg, nil)

	_, ok := provider.(*cachingProvider)
	assert.False(t, ok)
}
