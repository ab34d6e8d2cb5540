// Package schema has models and shared constants for all parts of watchdex.
package schema

import "time"

// GameRecord holds the raw per-game metrics produced by the extractor.
// Every field is computed from a single game's box score and play-by-play
// log; nothing here depends on other games in the batch.
type GameRecord struct {
	GameID    string    `json:"game_id"`
	GameDate  time.Time `json:"game_date"`
	HomeTeam  string    `json:"home_team"` // Team abbreviation, e.g. "BOS"
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`

	TotalScore          int     `json:"total_score"`
	PtsPerPoss          float64 `json:"pts_per_poss"`          // Total score over average team possessions
	ThreesMade          int     `json:"threes_made"`           // Both teams combined
	ThreesAttempted     int     `json:"threes_attempted"`      // Both teams combined
	ThreePtPct          float64 `json:"three_pt_pct"`          // Made over attempted, 0 when no attempts
	AvgTS               float64 `json:"avg_ts"`                // Mean of the two team true-shooting averages
	LeadChanges         int     `json:"lead_changes"`          // Leader flips in the play-by-play log
	ScoreDiff           int     `json:"score_diff"`            // Absolute final margin
	Closeness           float64 `json:"closeness"`             // 1 - margin/total, 0 term when total is 0
	ClutchTime          float64 `json:"clutch_time"`           // Fraction of late events within 5 points
	Overtime            int     `json:"overtime"`              // 1 when the game finished in OT
	Dunks               int     `json:"dunks"`                 // Substring heuristic over play descriptions
	Blocks              int     `json:"blocks"`                // All players combined
	Turnovers           int     `json:"turnovers"`             // Both teams combined
	Steals              int     `json:"steals"`                // All players combined
	FreeThrowsAttempted int     `json:"free_throws_attempted"` // All players combined
	NetRatingDiff       float64 `json:"net_rating_diff"`       // Absolute gap between team net ratings
	StarPlayer          string  `json:"star_player"`           // Best qualifying player by game score
	MaxGameScore        float64 `json:"max_game_score"`
}

// RankedGame is the ranked view of a GameRecord within one batch.
// Percentile ranks, sub-indices and the composite index are only meaningful
// relative to the batch they were computed in, so they live here rather than
// on the GameRecord itself.
type RankedGame struct {
	GameRecord

	// Ranks maps each metric to its fractional percentile rank in [0,1].
	// The turnovers entry is already inverted (fewer turnovers ranks higher).
	Ranks map[MetricKey]float64 `json:"percentile_ranks"`

	Scoring         float64 `json:"scoring"`
	Competitiveness float64 `json:"competitiveness"`
	Highlights      float64 `json:"highlights"`
	Pace            float64 `json:"pace"`
	StarPower       float64 `json:"star_power"`
	WatchIndex      float64 `json:"watch_index"`
}

// PlayEvent is one row of a game's play-by-play log. Consumed entirely
// within the extractor, never persisted.
type PlayEvent struct {
	Period             int
	Score              string // "AWAY - HOME", empty for non-scoring events
	HomeDescription    string
	VisitorDescription string
}

// GameSummary carries the header-level facts about a single game.
type GameSummary struct {
	GameID     string
	GameDate   time.Time
	HomeTeamID int
	AwayTeamID int
	StatusText string // e.g. "Final" or "Final/OT"
	Lines      []TeamLine
}

// TeamLine is one team's row of the line score.
type TeamLine struct {
	TeamID       int
	Abbreviation string
	Points       int
}

// PlayerTraditionalLine is one player's row of the traditional box score.
type PlayerTraditionalLine struct {
	TeamID     int
	PlayerName string
	Minutes    float64

	Points int
	FGM    int
	FGA    int
	FG3M   int
	FG3A   int
	FTM    int
	FTA    int
	OREB   int
	DREB   int
	STL    int
	AST    int
	BLK    int
	PF     int
	TO     int
}

// PlayerAdvancedLine is one player's row of the advanced box score.
type PlayerAdvancedLine struct {
	TeamID      int
	PlayerName  string
	Possessions float64
	TSPct       float64
	NetRating   float64
}

// ScheduledGame is one entry of a season's schedule. The upstream game log
// emits one row per team, so the same GameID appears twice.
type ScheduledGame struct {
	GameID   string
	GameDate time.Time
}

// ScoreboardGame is one game of a day's scoreboard, used for previews.
type ScoreboardGame struct {
	GameID     string
	HomeTeam   string
	AwayTeam   string
	StatusText string // Tip-off time for games that have not started
}

// Metric returns the value of the given rankable metric for this record.
// Integer metrics are widened so that ranking can treat all columns alike.
func (g *GameRecord) Metric(key MetricKey) float64 {
	switch key {
	case MetricTotalScore:
		return float64(g.TotalScore)
	case MetricPtsPerPoss:
		return g.PtsPerPoss
	case MetricThreesMade:
		return float64(g.ThreesMade)
	case MetricThreePtPct:
		return g.ThreePtPct
	case MetricAvgTS:
		return g.AvgTS
	case MetricLeadChanges:
		return float64(g.LeadChanges)
	case MetricCloseness:
		return g.Closeness
	case MetricClutchTime:
		return g.ClutchTime
	case MetricOvertime:
		return float64(g.Overtime)
	case MetricDunks:
		return float64(g.Dunks)
	case MetricBlocks:
		return float64(g.Blocks)
	case MetricTurnovers:
		return float64(g.Turnovers)
	case MetricSteals:
		return float64(g.Steals)
	case MetricFreeThrows:
		return float64(g.FreeThrowsAttempted)
	case MetricMaxGameScore:
		return g.MaxGameScore
	default:
		return 0
	}
}

// Matchup formats the game as "AWY @ HOM".
func (g *GameRecord) Matchup() string {
	return g.AwayTeam + " @ " + g.HomeTeam
}
