package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRunStore captures run-tracking calls for pipeline tests.
type recordingRunStore struct {
	nextID   int64
	begun    []int64
	ended    map[int64]int
	recorded map[int64]int
}

var _ contract.RunStore = &recordingRunStore{} // Compile-time check

func newRecordingRunStore() *recordingRunStore {
	return &recordingRunStore{nextID: 7, ended: map[int64]int{}, recorded: map[int64]int{}}
}

func (r *recordingRunStore) BeginRun(_ time.Time, _ map[string]any) (int64, error) {
	id := r.nextID
	r.nextID++
	r.begun = append(r.begun, id)
	return id, nil
}

func (r *recordingRunStore) EndRun(runID int64, _ time.Time, gamesRanked int) error {
	r.ended[runID] = gamesRanked
	return nil
}

func (r *recordingRunStore) RecordScores(runID int64, games []schema.RankedGame) error {
	r.recorded[runID] = len(games)
	return nil
}

func (r *recordingRunStore) Runs(int) ([]contract.RunInfo, error)          { return nil, nil }
func (r *recordingRunStore) Scores(int64) ([]contract.GameScoreRow, error) { return nil, nil }
func (r *recordingRunStore) Clear() error                                  { return nil }
func (r *recordingRunStore) Close() error                                  { return nil }

// fakeStoreManager hands the pipeline a run store and no cache.
type fakeStoreManager struct {
	runs contract.RunStore
}

func (m *fakeStoreManager) GetCacheStore() contract.CacheStore { return nil }
func (m *fakeStoreManager) GetRunStore() contract.RunStore     { return m.runs }
func (m *fakeStoreManager) Close() error                       { return nil }

// TestRankWithProviderEmptySelectionEndsRun ensures an empty window does
// not leave an in-progress run row behind.
func TestRankWithProviderEmptySelectionEndsRun(t *testing.T) {
	store := newRecordingRunStore()
	mgr := &fakeStoreManager{runs: store}
	provider := &fakeProvider{schedule: []schema.ScheduledGame{}}
	cfg := &contract.Config{Season: "2024-25", Workers: 1, ResultLimit: 10}

	ranked, err := rankWithProvider(context.Background(), cfg, provider, mgr)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	require.Len(t, store.begun, 1)
	gamesRanked, closed := store.ended[store.begun[0]]
	assert.True(t, closed, "run row should be finalized")
	assert.Zero(t, gamesRanked)
}

// TestRankWithProviderSelectionErrorEndsRun ensures a schedule fetch
// failure still finalizes the run row.
func TestRankWithProviderSelectionErrorEndsRun(t *testing.T) {
	store := newRecordingRunStore()
	mgr := &fakeStoreManager{runs: store}
	provider := &fakeProvider{err: errors.New("upstream down")}
	cfg := &contract.Config{Season: "2024-25", Workers: 1, ResultLimit: 10}

	_, err := rankWithProvider(context.Background(), cfg, provider, mgr)
	require.Error(t, err)

	require.Len(t, store.begun, 1)
	_, closed := store.ended[store.begun[0]]
	assert.True(t, closed, "run row should be finalized")
}

// TestRankWithProviderRecordsCompletedRun covers the happy path: scores
// recorded and the run closed with the ranked count.
func TestRankWithProviderRecordsCompletedRun(t *testing.T) {
	store := newRecordingRunStore()
	mgr := &fakeStoreManager{runs: store}
	provider := &fakeProvider{
		summary: baseSummary(),
		traditional: []schema.PlayerTraditionalLine{
			{TeamID: 1, PlayerName: "Alpha", Minutes: 36, Points: 40, FGM: 15, FGA: 25, FG3M: 5, FG3A: 10, FTA: 6, FTM: 5, STL: 2, BLK: 1, TO: 3},
			{TeamID: 2, PlayerName: "Beta", Minutes: 34, Points: 30, FGM: 12, FGA: 22, FG3M: 3, FG3A: 8, FTA: 4, FTM: 3, STL: 1, BLK: 2, TO: 4},
		},
		advanced: []schema.PlayerAdvancedLine{
			{TeamID: 1, Possessions: 100, TSPct: 0.60, NetRating: 8},
			{TeamID: 2, Possessions: 100, TSPct: 0.55, NetRating: -8},
		},
		schedule: []schema.ScheduledGame{
			{GameID: "0022400001", GameDate: day(2024, time.October, 22)},
		},
	}
	cfg := &contract.Config{Season: "2024-25", Workers: 1, ResultLimit: 10}

	ranked, err := rankWithProvider(context.Background(), cfg, provider, mgr)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	require.Len(t, store.begun, 1)
	runID := store.begun[0]
	assert.Equal(t, 1, store.recorded[runID])
	assert.Equal(t, 1, store.ended[runID])
}
