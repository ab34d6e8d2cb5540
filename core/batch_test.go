package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
)

// flakyProvider fails summaries for configured game ids.
type flakyProvider struct {
	fakeProvider

	mu      sync.Mutex
	badIDs  map[string]bool
	fetched []string
}

func (f *flakyProvider) GameSummary(_ context.Context, gameID string) (*schema.GameSummary, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, gameID)
	bad := f.badIDs[gameID]
	f.mu.Unlock()

	if bad {
		return nil, errors.New("boom")
	}
	summary := baseSummary()
	summary.GameID = gameID
	return summary, nil
}

// TestExtractBatchOrder keeps schedule order with concurrent workers.
func TestExtractBatchOrder(t *testing.T) {
	provider := &flakyProvider{}
	cfg := &contract.Config{Workers: 4}
	ids := []string{"g1", "g2", "g3", "g4", "g5"}

	records := extractBatch(context.Background(), cfg, provider, ids)

	got := make([]string, len(records))
	for i, rec := range records {
		got[i] = rec.GameID
	}
	assert.Equal(t, ids, got)
}

// TestExtractBatchDropsFailures drops failed games without aborting.
func TestExtractBatchDropsFailures(t *testing.T) {
	provider := &flakyProvider{badIDs: map[string]bool{"g2": true}}
	cfg := &contract.Config{Workers: 2}

	records := extractBatch(context.Background(), cfg, provider, []string{"g1", "g2", "g3"})

	got := make([]string, len(records))
	for i, rec := range records {
		got[i] = rec.GameID
	}
	assert.Equal(t, []string{"g1", "g3"}, got)
}

// TestExtractBatchEmpty handles an empty id list.
func TestExtractBatchEmpty(t *testing.T) {
	provider := &flakyProvider{}
	cfg := &contract.Config{Workers: 2}
	assert.Empty(t, extractBatch(context.Background(), cfg, provider, nil))
}

// TestExtractBatchCancellation stops fetching once the context is done.
func TestExtractBatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &flakyProvider{}
	cfg := &contract.Config{Workers: 1}

	done := make(chan struct{})
	go func() {
		extractBatch(ctx, cfg, provider, []string{"g1", "g2"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("extractBatch did not return after cancellation")
	}
}
