// Package nbastats implements the upstream stats provider: an HTTP client
// for the league's stats API plus the retry, pacing and caching decorators
// that the pipeline wraps around it.
package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

// DefaultBaseURL is the production stats API host.
const DefaultBaseURL = "https://stats.nba.com/stats"

// Date layouts the stats endpoints use.
const (
	estDateLayout      = "2006-01-02T15:04:05"
	scheduleDateLayout = "2006-01-02"
	queryDateLayout    = "01/02/2006"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches game data from the stats API and maps the resultSet
// payloads to schema models.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ contract.StatsProvider = (*Client)(nil) // Compile-time check

// NewClient constructs a stats client with the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = contract.DefaultAPITimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// GameSummary fetches header facts and the line score for one game.
func (c *Client) GameSummary(ctx context.Context, gameID string) (*schema.GameSummary, error) {
	resp, err := c.get(ctx, "boxscoresummaryv2", url.Values{"GameID": {gameID}})
	if err != nil {
		return nil, &FetchError{Endpoint: "boxscoresummaryv2", GameID: gameID, Err: err}
	}

	header, ok := resp.set(setGameSummary)
	if !ok || len(header.RowSet) == 0 {
		return nil, &FetchError{Endpoint: "boxscoresummaryv2", GameID: gameID, Err: ErrMissingResultSet}
	}
	cols := header.columns()
	row := header.RowSet[0]

	summary := &schema.GameSummary{
		GameID:     gameID,
		HomeTeamID: cellInt(row, cols, "HOME_TEAM_ID"),
		AwayTeamID: cellInt(row, cols, "VISITOR_TEAM_ID"),
		StatusText: cellString(row, cols, "GAME_STATUS_TEXT"),
	}
	if raw := cellString(row, cols, "GAME_DATE_EST"); raw != "" {
		if t, err := time.Parse(estDateLayout, raw); err == nil {
			summary.GameDate = t
		}
	}

	lines, ok := resp.set(setLineScore)
	if !ok {
		return nil, &FetchError{Endpoint: "boxscoresummaryv2", GameID: gameID, Err: ErrMissingResultSet}
	}
	lineCols := lines.columns()
	for _, row := range lines.RowSet {
		summary.Lines = append(summary.Lines, schema.TeamLine{
			TeamID:       cellInt(row, lineCols, "TEAM_ID"),
			Abbreviation: cellString(row, lineCols, "TEAM_ABBREVIATION"),
			Points:       cellInt(row, lineCols, "PTS"),
		})
	}

	return summary, nil
}

// TraditionalBoxScore fetches per-player counting stats for one game.
func (c *Client) TraditionalBoxScore(ctx context.Context, gameID string) ([]schema.PlayerTraditionalLine, error) {
	resp, err := c.get(ctx, "boxscoretraditionalv2", boxScoreQuery(gameID))
	if err != nil {
		return nil, &FetchError{Endpoint: "boxscoretraditionalv2", GameID: gameID, Err: err}
	}

	stats, ok := resp.set(setPlayerStats)
	if !ok {
		return nil, &FetchError{Endpoint: "boxscoretraditionalv2", GameID: gameID, Err: ErrMissingResultSet}
	}
	cols := stats.columns()
	minIdx, hasMin := cols["MIN"]

	players := make([]schema.PlayerTraditionalLine, 0, len(stats.RowSet))
	for _, row := range stats.RowSet {
		line := schema.PlayerTraditionalLine{
			TeamID:     cellInt(row, cols, "TEAM_ID"),
			PlayerName: cellString(row, cols, "PLAYER_NAME"),
			Points:     cellInt(row, cols, "PTS"),
			FGM:        cellInt(row, cols, "FGM"),
			FGA:        cellInt(row, cols, "FGA"),
			FG3M:       cellInt(row, cols, "FG3M"),
			FG3A:       cellInt(row, cols, "FG3A"),
			FTM:        cellInt(row, cols, "FTM"),
			FTA:        cellInt(row, cols, "FTA"),
			OREB:       cellInt(row, cols, "OREB"),
			DREB:       cellInt(row, cols, "DREB"),
			STL:        cellInt(row, cols, "STL"),
			AST:        cellInt(row, cols, "AST"),
			BLK:        cellInt(row, cols, "BLK"),
			PF:         cellInt(row, cols, "PF"),
			TO:         cellInt(row, cols, "TO"),
		}
		if hasMin && minIdx < len(row) {
			line.Minutes = parseMinutes(row[minIdx])
		}
		players = append(players, line)
	}
	return players, nil
}

// AdvancedBoxScore fetches per-player efficiency stats for one game.
func (c *Client) AdvancedBoxScore(ctx context.Context, gameID string) ([]schema.PlayerAdvancedLine, error) {
	resp, err := c.get(ctx, "boxscoreadvancedv2", boxScoreQuery(gameID))
	if err != nil {
		return nil, &FetchError{Endpoint: "boxscoreadvancedv2", GameID: gameID, Err: err}
	}

	stats, ok := resp.set(setPlayerStats)
	if !ok {
		return nil, &FetchError{Endpoint: "boxscoreadvancedv2", GameID: gameID, Err: ErrMissingResultSet}
	}
	cols := stats.columns()

	players := make([]schema.PlayerAdvancedLine, 0, len(stats.RowSet))
	for _, row := range stats.RowSet {
		players = append(players, schema.PlayerAdvancedLine{
			TeamID:      cellInt(row, cols, "TEAM_ID"),
			PlayerName:  cellString(row, cols, "PLAYER_NAME"),
			Possessions: cellFloat(row, cols, "POSS"),
			TSPct:       cellFloat(row, cols, "TS_PCT"),
			NetRating:   cellFloat(row, cols, "NET_RATING"),
		})
	}
	return players, nil
}

// PlayByPlay fetches the chronological event log for one game.
func (c *Client) PlayByPlay(ctx context.Context, gameID string) ([]schema.PlayEvent, error) {
	query := url.Values{
		"GameID":      {gameID},
		"StartPeriod": {"0"},
		"EndPeriod":   {"14"},
	}
	resp, err := c.get(ctx, "playbyplayv2", query)
	if err != nil {
		return nil, &FetchError{Endpoint: "playbyplayv2", GameID: gameID, Err: err}
	}

	plays, ok := resp.set(setPlayByPlay)
	if !ok {
		return nil, &FetchError{Endpoint: "playbyplayv2", GameID: gameID, Err: ErrMissingResultSet}
	}
	cols := plays.columns()

	events := make([]schema.PlayEvent, 0, len(plays.RowSet))
	for _, row := range plays.RowSet {
		events = append(events, schema.PlayEvent{
			Period:             cellInt(row, cols, "PERIOD"),
			Score:              cellString(row, cols, "SCORE"),
			HomeDescription:    cellString(row, cols, "HOMEDESCRIPTION"),
			VisitorDescription: cellString(row, cols, "VISITORDESCRIPTION"),
		})
	}
	return events, nil
}

// SeasonSchedule fetches the season's game log in schedule order.
func (c *Client) SeasonSchedule(ctx context.Context, season string) ([]schema.ScheduledGame, error) {
	query := url.Values{
		"Season":       {season},
		"SeasonType":   {"Regular Season"},
		"LeagueID":     {"00"},
		"PlayerOrTeam": {"T"},
		"Sorter":       {"DATE"},
		"Direction":    {"ASC"},
		"Counter":      {"0"},
	}
	resp, err := c.get(ctx, "leaguegamelog", query)
	if err != nil {
		return nil, &FetchError{Endpoint: "leaguegamelog", Err: err}
	}

	log, ok := resp.set(setLeagueGameLog)
	if !ok {
		return nil, &FetchError{Endpoint: "leaguegamelog", Err: ErrMissingResultSet}
	}
	cols := log.columns()

	games := make([]schema.ScheduledGame, 0, len(log.RowSet))
	for _, row := range log.RowSet {
		game := schema.ScheduledGame{GameID: cellString(row, cols, "GAME_ID")}
		if raw := cellString(row, cols, "GAME_DATE"); raw != "" {
			if t, err := time.Parse(scheduleDateLayout, raw); err == nil {
				game.GameDate = t
			}
		}
		games = append(games, game)
	}
	return games, nil
}

// Scoreboard fetches the games slated for a calendar day.
func (c *Client) Scoreboard(ctx context.Context, date time.Time) ([]schema.ScoreboardGame, error) {
	query := url.Values{
		"GameDate":  {date.Format(queryDateLayout)},
		"LeagueID":  {"00"},
		"DayOffset": {"0"},
	}
	resp, err := c.get(ctx, "scoreboardv2", query)
	if err != nil {
		return nil, &FetchError{Endpoint: "scoreboardv2", Err: err}
	}

	header, ok := resp.set(setGameHeader)
	if !ok {
		return nil, &FetchError{Endpoint: "scoreboardv2", Err: ErrMissingResultSet}
	}
	cols := header.columns()

	// The line score rows carry the team abbreviations.
	abbrs := make(map[int]string)
	if lines, ok := resp.set(setLineScore); ok {
		lineCols := lines.columns()
		for _, row := range lines.RowSet {
			abbrs[cellInt(row, lineCols, "TEAM_ID")] = cellString(row, lineCols, "TEAM_ABBREVIATION")
		}
	}

	games := make([]schema.ScoreboardGame, 0, len(header.RowSet))
	for _, row := range header.RowSet {
		games = append(games, schema.ScoreboardGame{
			GameID:     cellString(row, cols, "GAME_ID"),
			HomeTeam:   abbrs[cellInt(row, cols, "HOME_TEAM_ID")],
			AwayTeam:   abbrs[cellInt(row, cols, "VISITOR_TEAM_ID")],
			StatusText: cellString(row, cols, "GAME_STATUS_TEXT"),
		})
	}
	return games, nil
}

// get issues one API call and decodes the resultSet envelope.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (*statsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = query.Encode()

	// The stats host rejects requests without browser-like headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)")
	req.Header.Set("Referer", "https://stats.nba.com/")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}

// boxScoreQuery builds the shared query for the box score endpoints.
func boxScoreQuery(gameID string) url.Values {
	return url.Values{
		"GameID":      {gameID},
		"StartPeriod": {"0"},
		"EndPeriod":   {"14"},
		"StartRange":  {"0"},
		"EndRange":    {"0"},
		"RangeType":   {"0"},
	}
}
