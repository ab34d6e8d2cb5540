// Package parquet provides data structures and functions for exporting
// watch-index data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
	"github.com/parquet-go/parquet-go"
)

// RankRun represents a single ranking run with metadata.
// This struct maps to the watchdex_rank_runs database table.
type RankRun struct {
	// RunID is the unique identifier for this ranking run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// GamesRanked is the number of games scored in this run
	GamesRanked int32 `parquet:"games_ranked,snappy"`

	// ConfigParams contains the JSON-encoded run parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// GameScore represents one persisted per-game score of a ranking run.
// This struct maps to the watchdex_game_scores database table.
type GameScore struct {
	// RunID references the parent ranking run
	RunID int64 `parquet:"run_id,snappy"`

	// Rank is the game's position within the run, 1 being the best watch
	Rank int32 `parquet:"rank,snappy"`

	// GameID is the league's game identifier
	GameID string `parquet:"game_id,snappy"`

	// GameDate is the calendar date the game was played
	GameDate time.Time `parquet:"game_date,snappy"`

	HomeTeam  string `parquet:"home_team,snappy"`
	AwayTeam  string `parquet:"away_team,snappy"`
	HomeScore int32  `parquet:"home_score,snappy"`
	AwayScore int32  `parquet:"away_score,snappy"`

	Scoring         float64 `parquet:"scoring,snappy"`
	Competitiveness float64 `parquet:"competitiveness,snappy"`
	Highlights      float64 `parquet:"highlights,snappy"`
	Pace            float64 `parquet:"pace,snappy"`
	StarPower       float64 `parquet:"star_power,snappy"`
	WatchIndex      float64 `parquet:"watch_index,snappy"`
}

// writeParquet writes a slice of records to a Parquet file using struct
// schema inference from the record type's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRankRunsParquet writes a slice of RankRun structs to a Parquet file.
func WriteRankRunsParquet(data []RankRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteGameScoresParquet writes a slice of GameScore structs to a Parquet file.
func WriteGameScoresParquet(data []GameScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRankedGamesParquet exports a freshly ranked batch to a Parquet file.
// The batch is written as GameScore rows with a zero run id, since no run
// row exists for a direct export.
func WriteRankedGamesParquet(games []schema.RankedGame, outputPath string) error {
	rows := make([]GameScore, len(games))
	for i, g := range games {
		rows[i] = GameScore{
			Rank:            int32(i + 1),
			GameID:          g.GameID,
			GameDate:        g.GameDate,
			HomeTeam:        g.HomeTeam,
			AwayTeam:        g.AwayTeam,
			HomeScore:       int32(g.HomeScore),
			AwayScore:       int32(g.AwayScore),
			Scoring:         g.Scoring,
			Competitiveness: g.Competitiveness,
			Highlights:      g.Highlights,
			Pace:            g.Pace,
			StarPower:       g.StarPower,
			WatchIndex:      g.WatchIndex,
		}
	}
	return WriteGameScoresParquet(rows, outputPath)
}

// ConvertRunInfos converts contract.RunInfo rows to RankRun for Parquet export.
func ConvertRunInfos(records []contract.RunInfo) []RankRun {
	result := make([]RankRun, len(records))
	for i, record := range records {
		var params *string
		if record.ConfigParams != "" {
			p := record.ConfigParams
			params = &p
		}
		result[i] = RankRun{
			RunID:        record.RunID,
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			GamesRanked:  int32(record.GamesRanked),
			ConfigParams: params,
		}
	}
	return result
}

// ConvertGameScoreRows converts contract.GameScoreRow rows to GameScore for Parquet export.
func ConvertGameScoreRows(records []contract.GameScoreRow) []GameScore {
	result := make([]GameScore, len(records))
	for i, record := range records {
		result[i] = GameScore{
			RunID:           record.RunID,
			Rank:            int32(record.Rank),
			GameID:          record.GameID,
			GameDate:        record.GameDate,
			HomeTeam:        record.HomeTeam,
			AwayTeam:        record.AwayTeam,
			HomeScore:       int32(record.HomeScore),
			AwayScore:       int32(record.AwayScore),
			Scoring:         record.Scoring,
			Competitiveness: record.Competitiveness,
			Highlights:      record.Highlights,
			Pace:            record.Pace,
			StarPower:       record.StarPower,
			WatchIndex:      record.WatchIndex,
		}
	}
	return result
}
