// Package core has the watch-index pipeline: selecting games, extracting
// per-game metrics, and ranking batches by the composite index.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/watchdex/core/algo"
	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/internal/nbastats"
	"github.com/courtside/watchdex/internal/outwriter"
	"github.com/courtside/watchdex/schema"
)

// ExecuteWatchRank runs the full pipeline for the configured season and
// window, then prints the ranked results. It serves as the main entry
// point for the 'rank' mode.
func ExecuteWatchRank(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	ranked, err := GetWatchRankResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Println("No games found in the requested window.")
		return nil
	}
	duration := time.Since(start)
	return outwriter.WriteRankedGames(ranked, cfg, duration)
}

// ExecuteWatchRecent resolves the season and window from "N days back" and
// runs the same pipeline. It serves as the entry point for the 'recent'
// mode.
func ExecuteWatchRecent(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	season, windowStart, windowEnd := RecentWindow(time.Now(), cfg.DaysBack)
	return ExecuteWatchRank(ctx, cfg.CloneWithWindow(season, windowStart, windowEnd), mgr)
}

// GetWatchRankResults runs the pipeline and returns the ranked batch
// without printing. Exposed for the MCP server and tests.
func GetWatchRankResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.RankedGame, error) {
	if cfg.Season == "" {
		return nil, fmt.Errorf("season is required (e.g. --season 2024-25)")
	}

	provider := nbastats.NewProvider(cfg, mgr.GetCacheStore())
	return rankWithProvider(ctx, cfg, provider, mgr)
}

// rankWithProvider is the provider-injected pipeline body.
func rankWithProvider(ctx context.Context, cfg *contract.Config, provider contract.StatsProvider, mgr contract.StoreManager) ([]schema.RankedGame, error) {
	// --- 0. Begin run tracking (if configured) ---
	var runID int64
	runStore := mgr.GetRunStore()
	if runStore != nil {
		var err error
		runID, err = runStore.BeginRun(time.Now(), cfg.RunParams())
		if err != nil {
			contract.LogWarn("run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Game selection ---
	ids, err := SelectGames(ctx, provider, cfg.Season, cfg.StartDate, cfg.EndDate, cfg.MaxGames)
	if err != nil {
		closeRun(runStore, runID)
		return nil, err
	}
	if len(ids) == 0 {
		closeRun(runStore, runID)
		return nil, nil
	}

	// --- 2. Metric extraction ---
	records := extractBatch(ctx, cfg, provider, ids)
	if err := ctx.Err(); err != nil {
		closeRun(runStore, runID)
		return nil, err
	}

	// --- 3. Ranking ---
	ranked := algo.RankGames(records)

	// --- 4. End run tracking ---
	if runStore != nil && runID > 0 {
		if err := runStore.RecordScores(runID, ranked); err != nil {
			contract.LogWarn("failed to record run scores", err)
		}
		if err := runStore.EndRun(runID, time.Now(), len(ranked)); err != nil {
			contract.LogWarn("failed to finalize run tracking", err)
		}
	}

	return ranked, nil
}

// closeRun finalizes a run row that recorded no scores, so early exits do
// not leave phantom in-progress runs behind.
func closeRun(runStore contract.RunStore, runID int64) {
	if runStore == nil || runID == 0 {
		return
	}
	if err := runStore.EndRun(runID, time.Now(), 0); err != nil {
		contract.LogWarn("failed to finalize run tracking", err)
	}
}

// ExecuteWatchPreview lists the games slated for the configured date.
// No index is computed; this is a listing of upcoming matchups only.
func ExecuteWatchPreview(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	date := cfg.PreviewDate
	if date.IsZero() {
		date = time.Now()
	}

	provider := nbastats.NewProvider(cfg, mgr.GetCacheStore())
	games, err := provider.Scoreboard(ctx, date)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Printf("No games scheduled for %s.\n", date.Format(contract.DateFormat))
		return nil
	}
	return outwriter.WritePreview(games, date, cfg)
}

// ExecuteWatchMetrics displays the formal definitions of the sub-indices
// and their composite weights. This is a static display that needs no
// upstream data.
func ExecuteWatchMetrics(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.WriteMetricsDefinitions(algo.Definitions(), cfg)
}
