package algo

import (
	"sort"

	"github.com/courtside/watchdex/schema"
)

// Sub-index and composite weights. These are fixed design constants, not
// tunable per call; changing them changes every published index value.
const (
	scoringDivisor = 4.0

	competitivenessLeadChanges = 2.0
	competitivenessCloseness   = 2.0
	competitivenessClutch      = 2.0
	competitivenessOvertime    = 1.0
	competitivenessDivisor     = 7.0

	highlightsDivisor = 3.0

	paceFreeThrows = 0.5
	paceDivisor    = 2.5

	compositeScoring         = 2.0
	compositeCompetitiveness = 3.0
	compositeHighlights      = 1.5
	compositePace            = 1.0
	compositeStarPower       = 0.5
	compositeDivisor         = 8.0
)

// RankGames computes percentile ranks and the composite watch index for a
// batch of game records, and returns the ranked views sorted descending by
// watch index. Ties keep their original relative order, so re-ranking an
// unchanged batch is deterministic. The input slice is never mutated; ranks
// are only meaningful within the returned batch.
func RankGames(records []schema.GameRecord) []schema.RankedGame {
	ranked := make([]schema.RankedGame, len(records))
	if len(records) == 0 {
		return ranked
	}

	for i, rec := range records {
		ranked[i] = schema.RankedGame{
			GameRecord: rec,
			Ranks:      make(map[schema.MetricKey]float64, len(schema.RankedMetrics)),
		}
	}

	values := make([]float64, len(records))
	for _, key := range schema.RankedMetrics {
		for i := range records {
			values[i] = records[i].Metric(key)
		}
		ranks := FractionalRanks(values)
		_, inverted := schema.InvertedMetrics[key]
		for i, r := range ranks {
			if inverted {
				r = 1 - r
			}
			ranked[i].Ranks[key] = r
		}
	}

	for i := range ranked {
		computeIndices(&ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WatchIndex > ranked[j].WatchIndex
	})
	return ranked
}

// computeIndices fills the five sub-indices and the composite index from
// the game's percentile ranks.
func computeIndices(g *schema.RankedGame) {
	pr := g.Ranks

	g.Scoring = (pr[schema.MetricTotalScore] +
		pr[schema.MetricPtsPerPoss] +
		pr[schema.MetricThreesMade] +
		pr[schema.MetricAvgTS]) / scoringDivisor

	g.Competitiveness = (competitivenessLeadChanges*pr[schema.MetricLeadChanges] +
		competitivenessCloseness*pr[schema.MetricCloseness] +
		competitivenessClutch*pr[schema.MetricClutchTime] +
		competitivenessOvertime*pr[schema.MetricOvertime]) / competitivenessDivisor

	g.Highlights = (pr[schema.MetricDunks] +
		pr[schema.MetricBlocks] +
		pr[schema.MetricSteals]) / highlightsDivisor

	g.Pace = (pr[schema.MetricPtsPerPoss] +
		pr[schema.MetricTurnovers] +
		paceFreeThrows*pr[schema.MetricFreeThrows]) / paceDivisor

	g.StarPower = pr[schema.MetricMaxGameScore]

	g.WatchIndex = (compositeScoring*g.Scoring +
		compositeCompetitiveness*g.Competitiveness +
		compositeHighlights*g.Highlights +
		compositePace*g.Pace +
		compositeStarPower*g.StarPower) / compositeDivisor
}

// SubIndexDefinition describes one sub-index for the metrics command.
type SubIndexDefinition struct {
	Name        string
	Description string
	Inputs      []string
	Weight      float64 // Weight within the composite index
}

// Definitions returns the published sub-index definitions in composite
// weight order.
func Definitions() []SubIndexDefinition {
	return []SubIndexDefinition{
		{
			Name:        "Competitiveness",
			Description: "Lead changes, closeness and clutch time, with a bonus for overtime",
			Inputs:      []string{"lead_changes (x2)", "closeness (x2)", "clutch_time (x2)", "overtime (x1)"},
			Weight:      compositeCompetitiveness,
		},
		{
			Name:        "Scoring",
			Description: "Raw and pace-adjusted scoring plus shooting efficiency",
			Inputs:      []string{"total_score", "pts_per_poss", "threes_made", "avg_ts"},
			Weight:      compositeScoring,
		},
		{
			Name:        "Highlights",
			Description: "Dunks, blocks and steals",
			Inputs:      []string{"dunks", "blocks", "steals"},
			Weight:      compositeHighlights,
		},
		{
			Name:        "Pace",
			Description: "Possession-normalized scoring, ball security and trips to the line",
			Inputs:      []string{"pts_per_poss", "turnovers (inverted)", "free_throws_attempted (x0.5)"},
			Weight:      compositePace,
		},
		{
			Name:        "StarPower",
			Description: "Best single-player game score",
			Inputs:      []string{"max_game_score"},
			Weight:      compositeStarPower,
		},
	}
}
