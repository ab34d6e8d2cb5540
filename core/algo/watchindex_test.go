package algo

import (
	"testing"

	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRankGamesEmpty ensures an empty batch ranks to an empty batch.
func TestRankGamesEmpty(t *testing.T) {
	assert.Empty(t, RankGames(nil))
	assert.Empty(t, RankGames([]schema.GameRecord{}))
}

// TestRankGamesSingle checks that a lone game ranks 1.0 on everything
// except the inverted turnover column.
func TestRankGamesSingle(t *testing.T) {
	ranked := RankGames([]schema.GameRecord{{
		GameID:     "0022400001",
		TotalScore: 230,
		Turnovers:  25,
	}})
	require.Len(t, ranked, 1)

	g := ranked[0]
	assert.Equal(t, 1.0, g.Ranks[schema.MetricTotalScore])
	assert.Equal(t, 0.0, g.Ranks[schema.MetricTurnovers], "turnover rank is inverted")
	assert.Equal(t, 1.0, g.Scoring)
	assert.Equal(t, 1.0, g.StarPower)
}

// TestRankGamesTurnoversInverted checks that the sloppiest game ranks
// lowest on turnovers and the cleanest highest.
func TestRankGamesTurnoversInverted(t *testing.T) {
	ranked := RankGames([]schema.GameRecord{
		{GameID: "a", Turnovers: 10},
		{GameID: "b", Turnovers: 15},
		{GameID: "c", Turnovers: 20},
	})
	require.Len(t, ranked, 3)

	byID := make(map[string]schema.RankedGame, 3)
	for _, g := range ranked {
		byID[g.GameID] = g
	}

	assert.Greater(t, byID["a"].Ranks[schema.MetricTurnovers], byID["b"].Ranks[schema.MetricTurnovers])
	assert.Greater(t, byID["b"].Ranks[schema.MetricTurnovers], byID["c"].Ranks[schema.MetricTurnovers])
}

// TestRankGamesSortAndStability checks descending order with stable ties.
func TestRankGamesSortAndStability(t *testing.T) {
	// Two identical games and one blowout. The identical games tie on
	// every metric and must keep their input order.
	records := []schema.GameRecord{
		{GameID: "first", TotalScore: 240, LeadChanges: 12, Dunks: 9},
		{GameID: "second", TotalScore: 240, LeadChanges: 12, Dunks: 9},
		{GameID: "dull", TotalScore: 180, LeadChanges: 0, Dunks: 1},
	}
	ranked := RankGames(records)
	require.Len(t, ranked, 3)

	assert.Equal(t, "first", ranked[0].GameID)
	assert.Equal(t, "second", ranked[1].GameID)
	assert.Equal(t, "dull", ranked[2].GameID)
	assert.GreaterOrEqual(t, ranked[0].WatchIndex, ranked[1].WatchIndex)
	assert.Greater(t, ranked[1].WatchIndex, ranked[2].WatchIndex)
}

// TestComputeIndicesWeights verifies the sub-index composition against a
// hand-computed rank set.
func TestComputeIndicesWeights(t *testing.T) {
	g := schema.RankedGame{Ranks: map[schema.MetricKey]float64{}}
	for _, key := range schema.RankedMetrics {
		g.Ranks[key] = 0.5
	}
	computeIndices(&g)

	// With every rank at 0.5, every weighted mean is 0.5.
	assert.InDelta(t, 0.5, g.Scoring, 1e-9)
	assert.InDelta(t, 0.5, g.Competitiveness, 1e-9)
	assert.InDelta(t, 0.5, g.Highlights, 1e-9)
	assert.InDelta(t, 0.5, g.Pace, 1e-9)
	assert.InDelta(t, 0.5, g.StarPower, 1e-9)
	assert.InDelta(t, 0.5, g.WatchIndex, 1e-9)

	// Competitiveness alone moves the composite by 3/8 per unit.
	g.Ranks[schema.MetricLeadChanges] = 1.0
	g.Ranks[schema.MetricCloseness] = 1.0
	g.Ranks[schema.MetricClutchTime] = 1.0
	g.Ranks[schema.MetricOvertime] = 1.0
	computeIndices(&g)
	assert.InDelta(t, 1.0, g.Competitiveness, 1e-9)
	assert.InDelta(t, 0.5+3.0/8.0*0.5, g.WatchIndex, 1e-9)
}

// TestDefinitions checks the published sub-index catalog.
func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 5)

	var total float64
	for _, def := range defs {
		assert.NotEmpty(t, def.Name)
		assert.NotEmpty(t, def.Description)
		assert.NotEmpty(t, def.Inputs)
		total += def.Weight
	}
	assert.InDelta(t, 8.0, total, 1e-9)

	// Sorted by composite weight, heaviest first.
	for i := 1; i < len(defs); i++ {
		assert.GreaterOrEqual(t, defs[i-1].Weight, defs[i].Weight)
	}
}
