package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/courtside/watchdex/core"
	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/internal/nbastats"
	"github.com/courtside/watchdex/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// rankedGameSummary is the trimmed ranked view returned to MCP clients.
type rankedGameSummary struct {
	Rank            int     `json:"rank"`
	GameID          string  `json:"game_id"`
	GameDate        string  `json:"game_date"`
	Matchup         string  `json:"matchup"`
	HomeScore       int     `json:"home_score"`
	AwayScore       int     `json:"away_score"`
	Scoring         float64 `json:"scoring"`
	Competitiveness float64 `json:"competitiveness"`
	Highlights      float64 `json:"highlights"`
	Pace            float64 `json:"pace"`
	StarPower       float64 `json:"star_power"`
	WatchIndex      float64 `json:"watch_index"`
	Label           string  `json:"label"`
}

func summarizeRanked(games []schema.RankedGame, limit int) []rankedGameSummary {
	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}
	out := make([]rankedGameSummary, len(games))
	for i, g := range games {
		out[i] = rankedGameSummary{
			Rank:            i + 1,
			GameID:          g.GameID,
			GameDate:        g.GameDate.Format(contract.DateFormat),
			Matchup:         g.Matchup(),
			HomeScore:       g.HomeScore,
			AwayScore:       g.AwayScore,
			Scoring:         g.Scoring,
			Competitiveness: g.Competitiveness,
			Highlights:      g.Highlights,
			Pace:            g.Pace,
			StarPower:       g.StarPower,
			WatchIndex:      g.WatchIndex,
			Label:           contract.GetPlainLabel(g.WatchIndex),
		}
	}
	return out
}

func (h *toolHandler) handleRankGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	season := request.GetString("season", "")
	if err := contract.ValidateSeason(season); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid season: %v", err)), nil
	}
	cfg.Season = season
	cfg.StartDate = time.Time{}
	cfg.EndDate = time.Time{}

	if s := request.GetString("start", ""); s != "" {
		start, err := time.Parse(contract.DateFormat, s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start date: %v", err)), nil
		}
		cfg.StartDate = start
	}
	if e := request.GetString("end", ""); e != "" {
		end, err := time.Parse(contract.DateFormat, e)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end date: %v", err)), nil
		}
		cfg.EndDate = end
	}
	if g := request.GetInt("games", 0); g > 0 {
		cfg.MaxGames = g
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	ranked, err := core.GetWatchRankResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summarizeRanked(ranked, cfg.ResultLimit), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRankRecentGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	daysBack := request.GetInt("days_back", cfg.DaysBack)
	if daysBack < 1 {
		return mcp.NewToolResultError("days_back must be at least 1"), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	season, start, end := core.RecentWindow(time.Now(), daysBack)
	ranked, err := core.GetWatchRankResults(ctx, cfg.CloneWithWindow(season, start, end), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summarizeRanked(ranked, cfg.ResultLimit), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePreviewGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	date := time.Now()
	if d := request.GetString("date", ""); d != "" {
		parsed, err := time.Parse(contract.DateFormat, d)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
		}
		date = parsed
	}

	provider := nbastats.NewProvider(cfg, h.mgr.GetCacheStore())
	games, err := provider.Scoreboard(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoreboard fetch failed: %v", err)), nil
	}

	type preview struct {
		Date  string                  `json:"date"`
		Games []schema.ScoreboardGame `json:"games"`
	}
	jsonData, _ := json.MarshalIndent(preview{
		Date:  date.Format(contract.DateFormat),
		Games: games,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
