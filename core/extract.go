package core

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

// Extraction thresholds.
const (
	// clutchMargin is the score gap, in points, below which a late-game
	// event counts as clutch.
	clutchMargin = 5

	// clutchPeriod is the first period considered late-game (4th quarter
	// and every overtime period).
	clutchPeriod = 4

	// starMinMinutes is the playing-time floor for star-power eligibility.
	starMinMinutes = 15.0

	// overtimeStatusPrefix marks a final status text of an overtime finish.
	overtimeStatusPrefix = "Final/OT"
)

// ExtractGame pulls one game's summary, box scores and play-by-play log and
// derives the full set of raw metrics. Any failed fetch or missing team
// aborts the record; malformed play-by-play events and zero denominators
// are handled locally and never do.
func ExtractGame(ctx context.Context, provider contract.StatsProvider, gameID string) (schema.GameRecord, error) {
	var rec schema.GameRecord

	summary, err := provider.GameSummary(ctx, gameID)
	if err != nil {
		return rec, err
	}

	homeLine, ok := findTeamLine(summary.Lines, summary.HomeTeamID)
	if !ok {
		return rec, fmt.Errorf("game %s: home team %d missing from line score", gameID, summary.HomeTeamID)
	}
	awayLine, ok := findTeamLine(summary.Lines, summary.AwayTeamID)
	if !ok {
		return rec, fmt.Errorf("game %s: away team %d missing from line score", gameID, summary.AwayTeamID)
	}

	traditional, err := provider.TraditionalBoxScore(ctx, gameID)
	if err != nil {
		return rec, err
	}
	advanced, err := provider.AdvancedBoxScore(ctx, gameID)
	if err != nil {
		return rec, err
	}
	plays, err := provider.PlayByPlay(ctx, gameID)
	if err != nil {
		return rec, err
	}

	rec = schema.GameRecord{
		GameID:    gameID,
		GameDate:  summary.GameDate,
		HomeTeam:  homeLine.Abbreviation,
		AwayTeam:  awayLine.Abbreviation,
		HomeScore: homeLine.Points,
		AwayScore: awayLine.Points,
	}

	homeID, awayID := summary.HomeTeamID, summary.AwayTeamID

	// Scoring.
	rec.TotalScore = rec.HomeScore + rec.AwayScore
	avgPoss := (teamMeanAdvanced(advanced, homeID, possessions) + teamMeanAdvanced(advanced, awayID, possessions)) / 2
	rec.PtsPerPoss = safeRatio(float64(rec.TotalScore), avgPoss)

	// Three-point shooting across both teams.
	rec.ThreesMade = sumTraditional(traditional, func(p *schema.PlayerTraditionalLine) int { return p.FG3M })
	rec.ThreesAttempted = sumTraditional(traditional, func(p *schema.PlayerTraditionalLine) int { return p.FG3A })
	rec.ThreePtPct = safeRatio(float64(rec.ThreesMade), float64(rec.ThreesAttempted))

	// Efficiency: mean of the two team true-shooting averages.
	rec.AvgTS = (teamMeanAdvanced(advanced, homeID, trueShooting) + teamMeanAdvanced(advanced, awayID, trueShooting)) / 2

	// Competitiveness.
	rec.ScoreDiff = absInt(rec.HomeScore - rec.AwayScore)
	rec.Closeness = 1 - safeRatio(float64(rec.ScoreDiff), float64(rec.TotalScore))
	rec.LeadChanges = countLeadChanges(plays)
	rec.ClutchTime = clutchTimeShare(plays)
	if strings.HasPrefix(summary.StatusText, overtimeStatusPrefix) {
		rec.Overtime = 1
	}

	// Highlights. Dunk counting is a substring heuristic over the play
	// descriptions; it is a best-effort signal, not an exact count.
	rec.Dunks = countDunks(plays)
	rec.Blocks = sumTraditional(traditional, func(p *schema.PlayerTraditionalLine) int { return p.BLK })
	rec.Steals = sumTraditional(traditional, func(p *schema.PlayerTraditionalLine) int { return p.STL })

	// Pace and chaos.
	rec.Turnovers = sumTraditional(traditional, func(p *schema.PlayerTraditionalLine) int { return p.TO })
	rec.FreeThrowsAttempted = sumTraditional(traditional, func(p *schema.PlayerTraditionalLine) int { return p.FTA })
	rec.NetRatingDiff = math.Abs(teamMeanAdvanced(advanced, homeID, netRating) - teamMeanAdvanced(advanced, awayID, netRating))

	// Star power.
	rec.StarPlayer, rec.MaxGameScore = bestGameScore(traditional)

	return rec, nil
}

// leader identifies which side holds the lead at a point in the log.
type leader int

const (
	leaderNone leader = iota
	leaderHome
	leaderAway
)

// parseScore splits a running score string ("AWAY - HOME") into its parts.
// Anything that is not two dash-separated integers reports ok=false; the
// caller skips such events without breaking continuity.
func parseScore(s string) (away, home int, ok bool) {
	left, right, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	away, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, false
	}
	home, err = strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, false
	}
	return away, home, true
}

// countLeadChanges scans the log in order and counts every flip of the
// leading side. Ties and unparseable score strings carry no leader and do
// not interrupt the previous leader for comparison purposes.
func countLeadChanges(plays []schema.PlayEvent) int {
	changes := 0
	last := leaderNone
	for _, play := range plays {
		if play.Score == "" {
			continue
		}
		away, home, ok := parseScore(play.Score)
		if !ok {
			continue
		}

		current := leaderNone
		switch {
		case home > away:
			current = leaderHome
		case away > home:
			current = leaderAway
		}

		if current != leaderNone && last != leaderNone && current != last {
			changes++
		}
		if current != leaderNone {
			last = current
		}
	}
	return changes
}

// clutchTimeShare returns the fraction of late-game events (4th quarter
// onward) played within clutchMargin points. Events without a parseable
// score still count toward the denominator, matching the published index.
func clutchTimeShare(plays []schema.PlayEvent) float64 {
	var late, clutch int
	for _, play := range plays {
		if play.Period < clutchPeriod {
			continue
		}
		late++
		away, home, ok := parseScore(play.Score)
		if !ok {
			continue
		}
		if absInt(home-away) <= clutchMargin {
			clutch++
		}
	}
	return safeRatio(float64(clutch), float64(late))
}

// countDunks counts events whose combined descriptions mention a dunk.
func countDunks(plays []schema.PlayEvent) int {
	dunks := 0
	for _, play := range plays {
		text := strings.ToLower(play.HomeDescription + play.VisitorDescription)
		if strings.Contains(text, "dunk") {
			dunks++
		}
	}
	return dunks
}

// gameScore computes the linear single-game impact score for one player.
func gameScore(p *schema.PlayerTraditionalLine) float64 {
	return float64(p.Points) +
		0.4*float64(p.FGM) -
		0.7*float64(p.FGA) -
		0.4*float64(p.FTA-p.FTM) +
		0.7*float64(p.OREB) +
		0.3*float64(p.DREB) +
		float64(p.STL) +
		0.7*float64(p.AST) +
		0.7*float64(p.BLK) -
		0.4*float64(p.PF) -
		float64(p.TO)
}

// bestGameScore returns the name and game score of the best qualifying
// player (at least starMinMinutes on the floor). Ties go to the
// lexicographically smallest name so the result does not depend on table
// order. When nobody qualifies the star is empty with a zero score.
func bestGameScore(players []schema.PlayerTraditionalLine) (string, float64) {
	best := ""
	bestScore := 0.0
	found := false
	for i := range players {
		p := &players[i]
		if p.Minutes < starMinMinutes {
			continue
		}
		score := gameScore(p)
		switch {
		case !found, score > bestScore:
			best, bestScore, found = p.PlayerName, score, true
		case score == bestScore && p.PlayerName < best:
			best = p.PlayerName
		}
	}
	return best, bestScore
}

// findTeamLine locates a team's line-score row by team id.
func findTeamLine(lines []schema.TeamLine, teamID int) (schema.TeamLine, bool) {
	for _, line := range lines {
		if line.TeamID == teamID {
			return line, true
		}
	}
	return schema.TeamLine{}, false
}

// sumTraditional sums a counting stat across every player row.
func sumTraditional(players []schema.PlayerTraditionalLine, pick func(*schema.PlayerTraditionalLine) int) int {
	total := 0
	for i := range players {
		total += pick(&players[i])
	}
	return total
}

// Advanced-stat selectors for teamMeanAdvanced.
func possessions(p *schema.PlayerAdvancedLine) float64  { return p.Possessions }
func trueShooting(p *schema.PlayerAdvancedLine) float64 { return p.TSPct }
func netRating(p *schema.PlayerAdvancedLine) float64    { return p.NetRating }

// teamMeanAdvanced averages an advanced stat over one team's player rows.
// A team with no rows contributes 0.
func teamMeanAdvanced(players []schema.PlayerAdvancedLine, teamID int, pick func(*schema.PlayerAdvancedLine) float64) float64 {
	var sum float64
	var count int
	for i := range players {
		if players[i].TeamID != teamID {
			continue
		}
		sum += pick(&players[i])
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// safeRatio divides, defining anything over zero as 0 by convention.
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
