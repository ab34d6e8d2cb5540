package nbastats

import (
	"strconv"
	"strings"
)

// Result set names used by the stats endpoints.
const (
	setGameSummary   = "GameSummary"
	setLineScore     = "LineScore"
	setPlayerStats   = "PlayerStats"
	setPlayByPlay    = "PlayByPlay"
	setLeagueGameLog = "LeagueGameLog"
	setGameHeader    = "GameHeader"
)

// statsResponse is the envelope every stats endpoint returns: a list of
// named tables, each with a header row and untyped cells.
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string  `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any `json:"rowSet"`
}

// set returns the named result set, or ok=false when absent.
func (r *statsResponse) set(name string) (*resultSet, bool) {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], true
		}
	}
	return nil, false
}

// columns maps header names to cell positions.
func (s *resultSet) columns() map[string]int {
	idx := make(map[string]int, len(s.Headers))
	for i, h := range s.Headers {
		idx[h] = i
	}
	return idx
}

// Cell accessors. Upstream cells are untyped JSON values and frequently
// null; every accessor tolerates missing columns and nil cells by
// returning the zero value.

func cellString(row []any, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return ""
}

func cellFloat(row []any, cols map[string]int, name string) float64 {
	i, ok := cols[name]
	if !ok || i >= len(row) || row[i] == nil {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func cellInt(row []any, cols map[string]int, name string) int {
	return int(cellFloat(row, cols, name))
}

// parseMinutes converts the MIN column to fractional minutes. The upstream
// emits "34:12", "34:12.00", bare numbers, or null for players who did not
// play.
func parseMinutes(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		mins, secs, found := strings.Cut(s, ":")
		m, err := strconv.ParseFloat(mins, 64)
		if err != nil {
			return 0
		}
		if !found {
			return m
		}
		sec, err := strconv.ParseFloat(secs, 64)
		if err != nil {
			return m
		}
		return m + sec/60
	default:
		return 0
	}
}
