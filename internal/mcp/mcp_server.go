// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the watchdex MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Watchdex Ranking Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: rank_games ---
	s.AddTool(mcp.NewTool("rank_games",
		mcp.WithDescription("Rank NBA games by watchability within a season and optional date window."),
		mcp.WithString("season", mcp.Description("Season label in YYYY-YY format (e.g. 2024-25)."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Inclusive start date (YYYY-MM-DD).")),
		mcp.WithString("end", mcp.Description("Inclusive end date (YYYY-MM-DD).")),
		mcp.WithNumber("games", mcp.Description("Cap on the number of games processed (0 means all).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankGames)

	// --- 2. Tool: rank_recent_games ---
	s.AddTool(mcp.NewTool("rank_recent_games",
		mcp.WithDescription("Rank the last N days of NBA games by watchability."),
		mcp.WithNumber("days_back", mcp.Description("Lookback window in days. Defaults to 14.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankRecentGames)

	// --- 3. Tool: preview_games ---
	s.AddTool(mcp.NewTool("preview_games",
		mcp.WithDescription("List the NBA games scheduled for a calendar day."),
		mcp.WithString("date", mcp.Description("Calendar date (YYYY-MM-DD). Defaults to today.")),
	), h.handlePreviewGames)

	return s
}

// StartMCPServer starts the watchdex MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
