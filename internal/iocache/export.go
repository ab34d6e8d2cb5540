package iocache

import (
	"errors"
	"fmt"

	"github.com/courtside/watchdex/internal/parquet"
)

// ExecuteRunsExport exports the run store contents to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetRunStore()

	// Check if there's any data to export
	runs, err := store.Runs(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve ranking runs: %w", err)
	}
	if len(runs) == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting %d ranking runs...\n", len(runs))

	// Collect the per-game scores of every run
	var scores []parquet.GameScore
	for _, run := range runs {
		rows, err := store.Scores(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to retrieve scores for run %d: %w", run.RunID, err)
		}
		scores = append(scores, parquet.ConvertGameScoreRows(rows)...)
	}

	// Write ranking runs to Parquet
	runsFile := outputFile + ".rank_runs.parquet"
	if err := parquet.WriteRankRunsParquet(parquet.ConvertRunInfos(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write ranking runs: %w", err)
	}
	fmt.Printf("Exported %d ranking runs to: %s\n", len(runs), runsFile)

	// Write game scores to Parquet
	scoresFile := outputFile + ".game_scores.parquet"
	if err := parquet.WriteGameScoresParquet(scores, scoresFile); err != nil {
		return fmt.Errorf("failed to write game scores: %w", err)
	}
	fmt.Printf("Exported %d game score records to: %s\n", len(scores), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
