package nbastats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statsHandler routes fake endpoint responses by path.
type statsHandler map[string]statsResponse

func (h statsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, ok := h[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second})
}

// TestGameSummary decodes the header and line score sets.
func TestGameSummary(t *testing.T) {
	client := newTestClient(t, statsHandler{
		"/boxscoresummaryv2": {ResultSets: []resultSet{
			{
				Name:    setGameSummary,
				Headers: []string{"GAME_DATE_EST", "HOME_TEAM_ID", "VISITOR_TEAM_ID", "GAME_STATUS_TEXT"},
				RowSet:  [][]any{{"2024-10-22T00:00:00", float64(1610612738), float64(1610612752), "Final/OT"}},
			},
			{
				Name:    setLineScore,
				Headers: []string{"TEAM_ID", "TEAM_ABBREVIATION", "PTS"},
				RowSet: [][]any{
					{float64(1610612738), "BOS", float64(126)},
					{float64(1610612752), "NYK", float64(124)},
				},
			},
		}},
	})

	summary, err := client.GameSummary(context.Background(), "0022400001")
	require.NoError(t, err)

	assert.Equal(t, "0022400001", summary.GameID)
	assert.Equal(t, 1610612738, summary.HomeTeamID)
	assert.Equal(t, 1610612752, summary.AwayTeamID)
	assert.Equal(t, "Final/OT", summary.StatusText)
	assert.Equal(t, time.Date(2024, 10, 22, 0, 0, 0, 0, time.UTC), summary.GameDate)
	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "BOS", summary.Lines[0].Abbreviation)
	assert.Equal(t, 126, summary.Lines[0].Points)
}

// TestGameSummaryMissingSet reports a fetch error for a bad payload.
func TestGameSummaryMissingSet(t *testing.T) {
	client := newTestClient(t, statsHandler{
		"/boxscoresummaryv2": {ResultSets: []resultSet{}},
	})

	_, err := client.GameSummary(context.Background(), "0022400001")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "boxscoresummaryv2", fetchErr.Endpoint)
}

// TestTraditionalBoxScore decodes player rows including minutes.
func TestTraditionalBoxScore(t *testing.T) {
	client := newTestClient(t, statsHandler{
		"/boxscoretraditionalv2": {ResultSets: []resultSet{{
			Name:    setPlayerStats,
			Headers: []string{"TEAM_ID", "PLAYER_NAME", "MIN", "PTS", "FG3M", "TO"},
			RowSet: [][]any{
				{float64(1), "Tatum", "36:30", float64(31), float64(4), float64(2)},
				{float64(1), "DNP Guy", nil, float64(0), float64(0), float64(0)},
			},
		}}},
	})

	players, err := client.TraditionalBoxScore(context.Background(), "0022400001")
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, "Tatum", players[0].PlayerName)
	assert.InDelta(t, 36.5, players[0].Minutes, 1e-9)
	assert.Equal(t, 31, players[0].Points)
	assert.Equal(t, 4, players[0].FG3M)
	assert.Zero(t, players[1].Minutes)
}

// TestPlayByPlay decodes the event log.
func TestPlayByPlay(t *testing.T) {
	client := newTestClient(t, statsHandler{
		"/playbyplayv2": {ResultSets: []resultSet{{
			Name:    setPlayByPlay,
			Headers: []string{"PERIOD", "SCORE", "HOMEDESCRIPTION", "VISITORDESCRIPTION"},
			RowSet: [][]any{
				{float64(1), "2 - 0", nil, "Brunson Driving Layup"},
				{float64(4), "110 - 108", "Tatum 26' 3PT Jump Shot", nil},
			},
		}}},
	})

	plays, err := client.PlayByPlay(context.Background(), "0022400001")
	require.NoError(t, err)
	require.Len(t, plays, 2)

	assert.Equal(t, 1, plays[0].Period)
	assert.Equal(t, "2 - 0", plays[0].Score)
	assert.Equal(t, "Brunson Driving Layup", plays[0].VisitorDescription)
	assert.Equal(t, "Tatum 26' 3PT Jump Shot", plays[1].HomeDescription)
}

// TestSeasonSchedule decodes the game log rows in order.
func TestSeasonSchedule(t *testing.T) {
	client := newTestClient(t, statsHandler{
		"/leaguegamelog": {ResultSets: []resultSet{{
			Name:    setLeagueGameLog,
			Headers: []string{"GAME_ID", "GAME_DATE"},
			RowSet: [][]any{
				{"0022400001", "2024-10-22"},
				{"0022400001", "2024-10-22"},
				{"0022400002", "2024-10-22"},
			},
		}}},
	})

	games, err := client.SeasonSchedule(context.Background(), "2024-25")
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "0022400001", games[0].GameID)
	assert.Equal(t, time.Date(2024, 10, 22, 0, 0, 0, 0, time.UTC), games[0].GameDate)
}

// TestScoreboard joins game headers with line-score abbreviations.
func TestScoreboard(t *testing.T) {
	client := newTestClient(t, statsHandler{
		"/scoreboardv2": {ResultSets: []resultSet{
			{
				Name:    setGameHeader,
				Headers: []string{"GAME_ID", "HOME_TEAM_ID", "VISITOR_TEAM_ID", "GAME_STATUS_TEXT"},
				RowSet:  [][]any{{"0022400050", float64(1), float64(2), "7:30 pm ET"}},
			},
			{
				Name:    setLineScore,
				Headers: []string{"TEAM_ID", "TEAM_ABBREVIATION"},
				RowSet: [][]any{
					{float64(1), "BOS"},
					{float64(2), "NYK"},
				},
			},
		}},
	})

	games, err := client.Scoreboard(context.Background(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "BOS", games[0].HomeTeam)
	assert.Equal(t, "NYK", games[0].AwayTeam)
	assert.Equal(t, "7:30 pm ET", games[0].StatusText)
}

// TestClientHTTPError reports non-200 statuses.
func TestClientHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)
	client := NewClient(Config{BaseURL: server.URL})

	_, err := client.GameSummary(context.Background(), "0022400001")
	assert.ErrorContains(t, err, "429")
}

// TestNewClientDefaults falls back to the production base URL.
func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
}
