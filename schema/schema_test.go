package schema

import "testing"

func TestGameRecordMetric(t *testing.T) {
	g := &GameRecord{
		TotalScore:          230,
		PtsPerPoss:          1.12,
		LeadChanges:         9,
		Overtime:            1,
		Turnovers:           27,
		FreeThrowsAttempted: 41,
		MaxGameScore:        33.4,
	}

	cases := []struct {
		key      MetricKey
		expected float64
	}{
		{MetricTotalScore, 230},
		{MetricPtsPerPoss, 1.12},
		{MetricLeadChanges, 9},
		{MetricOvertime, 1},
		{MetricTurnovers, 27},
		{MetricFreeThrows, 41},
		{MetricMaxGameScore, 33.4},
	}
	for _, c := range cases {
		if got := g.Metric(c.key); got != c.expected {
			t.Errorf("Metric(%s) = %v, expected %v", c.key, got, c.expected)
		}
	}

	if got := g.Metric(MetricKey("bogus")); got != 0 {
		t.Errorf("Metric(bogus) = %v, expected 0", got)
	}
}

func TestGameRecordMatchup(t *testing.T) {
	g := &GameRecord{HomeTeam: "BOS", AwayTeam: "NYK"}
	if got := g.Matchup(); got != "NYK @ BOS" {
		t.Errorf("Matchup() = %q, expected %q", got, "NYK @ BOS")
	}
}
