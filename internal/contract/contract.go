// Package contract defines the interfaces and configuration shared across
// watchdex packages: the upstream stats provider, the persistence stores,
// and the validated runtime configuration.
package contract

import (
	"context"
	"time"

	"github.com/courtside/watchdex/schema"
)

// StatsProvider is the narrow gateway to the upstream statistics source.
// The core pipeline depends on game data only through this interface.
type StatsProvider interface {
	// GameSummary fetches header facts and the line score for one game.
	GameSummary(ctx context.Context, gameID string) (*schema.GameSummary, error)

	// TraditionalBoxScore fetches per-player counting stats for one game.
	TraditionalBoxScore(ctx context.Context, gameID string) ([]schema.PlayerTraditionalLine, error)

	// AdvancedBoxScore fetches per-player efficiency stats for one game.
	AdvancedBoxScore(ctx context.Context, gameID string) ([]schema.PlayerAdvancedLine, error)

	// PlayByPlay fetches the chronological event log for one game.
	PlayByPlay(ctx context.Context, gameID string) ([]schema.PlayEvent, error)

	// SeasonSchedule fetches the season's game log in schedule order.
	// Rows arrive one per team, so game ids repeat.
	SeasonSchedule(ctx context.Context, season string) ([]schema.ScheduledGame, error)

	// Scoreboard fetches the games slated for a calendar day.
	Scoreboard(ctx context.Context, date time.Time) ([]schema.ScoreboardGame, error)
}

// CacheStore handles durable storage of upstream responses.
type CacheStore interface {
	// Get retrieves a value, its version and its timestamp by key.
	Get(key string) ([]byte, int, int64, error)

	// Set stores a value with the given version.
	Set(key string, value []byte, version int) error

	// Clear removes all entries.
	Clear() error

	// Status returns entry count and total payload size.
	Status() (CacheStatus, error)

	// Close releases the underlying connection.
	Close() error
}

// CacheStatus summarizes the state of a cache store.
type CacheStatus struct {
	Backend    schema.DatabaseBackend
	Entries    int
	TotalBytes int64
}

// RunStore records ranking runs and their per-game scores.
type RunStore interface {
	// BeginRun opens a run row and returns its id.
	BeginRun(start time.Time, params map[string]any) (int64, error)

	// EndRun closes a run row with its end time and game count.
	EndRun(runID int64, end time.Time, gamesRanked int) error

	// RecordScores persists the ranked results of a run.
	RecordScores(runID int64, games []schema.RankedGame) error

	// Runs lists the most recent runs, newest first.
	Runs(limit int) ([]RunInfo, error)

	// Scores lists the per-game rows of a run in rank order.
	// A runID of 0 means the latest run.
	Scores(runID int64) ([]GameScoreRow, error)

	// Clear removes all runs and scores.
	Clear() error

	// Close releases the underlying connection.
	Close() error
}

// RunInfo is one row of the run-tracking table.
type RunInfo struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	GamesRanked  int
	ConfigParams string // JSON-encoded run parameters
}

// GameScoreRow is one persisted per-game score of a run.
type GameScoreRow struct {
	RunID           int64
	Rank            int
	GameID          string
	GameDate        time.Time
	HomeTeam        string
	AwayTeam        string
	HomeScore       int
	AwayScore       int
	Scoring         float64
	Competitiveness float64
	Highlights      float64
	Pace            float64
	StarPower       float64
	WatchIndex      float64
}

// StoreManager bundles the persistence stores used by a command run.
type StoreManager interface {
	GetCacheStore() CacheStore
	GetRunStore() RunStore
	Close() error
}
