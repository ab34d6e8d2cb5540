package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRunStore opens a SQLite run store in a temp directory.
func newTestRunStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

// sampleRanked returns two ranked games for persistence tests.
func sampleRanked() []schema.RankedGame {
	return []schema.RankedGame{
		{
			GameRecord: schema.GameRecord{
				GameID:    "g1",
				GameDate:  time.Date(2024, 10, 22, 0, 0, 0, 0, time.UTC),
				HomeTeam:  "BOS",
				AwayTeam:  "NYK",
				HomeScore: 120,
				AwayScore: 110,
			},
			Scoring:         0.9,
			Competitiveness: 0.8,
			Highlights:      0.7,
			Pace:            0.6,
			StarPower:       0.5,
			WatchIndex:      0.78,
		},
		{
			GameRecord: schema.GameRecord{
				GameID:    "g2",
				GameDate:  time.Date(2024, 10, 23, 0, 0, 0, 0, time.UTC),
				HomeTeam:  "LAL",
				AwayTeam:  "GSW",
				HomeScore: 100,
				AwayScore: 95,
			},
			WatchIndex: 0.41,
		},
	}
}

// TestRunStoreLifecycle covers begin, record, end and readback.
func TestRunStoreLifecycle(t *testing.T) {
	store := newTestRunStore(t)

	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"season": "2024-25"})
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, store.RecordScores(runID, sampleRanked()))
	require.NoError(t, store.EndRun(runID, start.Add(time.Minute), 2))

	runs, err := store.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.True(t, runs[0].StartTime.Equal(start))
	require.NotNil(t, runs[0].EndTime)
	assert.True(t, runs[0].EndTime.Equal(start.Add(time.Minute)))
	assert.Equal(t, 2, runs[0].GamesRanked)
	assert.Contains(t, runs[0].ConfigParams, "2024-25")

	scores, err := store.Scores(runID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 1, scores[0].Rank)
	assert.Equal(t, "g1", scores[0].GameID)
	assert.Equal(t, "BOS", scores[0].HomeTeam)
	assert.InDelta(t, 0.78, scores[0].WatchIndex, 1e-9)
	assert.Equal(t, 2, scores[1].Rank)
}

// TestRunStoreInProgress leaves end_time nil until EndRun.
func TestRunStoreInProgress(t *testing.T) {
	store := newTestRunStore(t)

	_, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)

	runs, err := store.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Zero(t, runs[0].GamesRanked)
}

// TestRunStoreRunsOrderAndLimit lists newest first with an optional cap.
func TestRunStoreRunsOrderAndLimit(t *testing.T) {
	store := newTestRunStore(t)

	var ids []int64
	for range 3 {
		id, err := store.BeginRun(time.Now().UTC(), nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := store.Runs(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].RunID)

	runs, err = store.Runs(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

// TestRunStoreScoresLatest treats run id 0 as the latest run.
func TestRunStoreScoresLatest(t *testing.T) {
	store := newTestRunStore(t)

	first, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordScores(first, sampleRanked()[:1]))

	second, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordScores(second, sampleRanked()))

	scores, err := store.Scores(0)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, second, scores[0].RunID)
}

// TestRunStoreScoresEmpty returns nothing when no runs exist.
func TestRunStoreScoresEmpty(t *testing.T) {
	store := newTestRunStore(t)
	scores, err := store.Scores(0)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

// TestRunStoreClear wipes both tables.
func TestRunStoreClear(t *testing.T) {
	store := newTestRunStore(t)

	runID, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordScores(runID, sampleRanked()))

	require.NoError(t, store.Clear())

	runs, err := store.Runs(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	scores, err := store.Scores(runID)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

// TestRunStoreNoneBackend checks the no-op store.
func TestRunStoreNoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, runID)
	assert.NoError(t, store.RecordScores(runID, sampleRanked()))
	assert.NoError(t, store.EndRun(runID, time.Now(), 2))

	runs, err := store.Runs(0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, store.Close())
}
