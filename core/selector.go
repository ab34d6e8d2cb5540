package core

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/watchdex/internal/contract"
)

// SelectGames resolves the game ids to analyze for a season, optionally
// bounded by an inclusive calendar-date window and capped at maxGames.
// The schedule emits one row per team, so ids are deduplicated preserving
// first (schedule) appearance. An empty selection is a valid result, not
// an error.
func SelectGames(ctx context.Context, provider contract.StatsProvider, season string, start, end time.Time, maxGames int) ([]string, error) {
	schedule, err := provider.SeasonSchedule(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule for season %s: %w", season, err)
	}

	seen := make(map[string]struct{}, len(schedule))
	var ids []string
	for _, game := range schedule {
		if !start.IsZero() && dateOnly(game.GameDate).Before(dateOnly(start)) {
			continue
		}
		if !end.IsZero() && dateOnly(game.GameDate).After(dateOnly(end)) {
			continue
		}
		if _, ok := seen[game.GameID]; ok {
			continue
		}
		seen[game.GameID] = struct{}{}
		ids = append(ids, game.GameID)
		if maxGames > 0 && len(ids) == maxGames {
			break
		}
	}
	return ids, nil
}

// RecentWindow derives the season and inclusive date window covering the
// last daysBack days from now, using the October season boundary: a season
// labeled Y-(Y+1) is active from October of year Y through September of
// year Y+1.
func RecentWindow(now time.Time, daysBack int) (season string, start, end time.Time) {
	end = now
	start = now.AddDate(0, 0, -daysBack)
	return contract.SeasonForDate(now), start, end
}

// dateOnly strips the time-of-day component; window comparisons are by
// calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
