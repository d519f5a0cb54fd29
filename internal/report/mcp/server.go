package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the weekly report tools: summary table, rollup, distance series.
// Used by the service when mounting MCP at /mcp and by cmd/report_mcp over stdio.
func NewServer(service reportService) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "weekly-report",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_weekly_summary",
		Description: "Returns the weekly summary table for a date range: rows are ISO weeks (YYYY-Www), columns are '<Activity> (mins)' and '<Activity> (miles)', cells are the weekly totals. Args: from_date, to_date (YYYY-MM-DD), both optional. Use when you need per-week training volume by activity.",
	}, h.GetWeeklySummaryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_weekly_rollup",
		Description: "Returns this week vs last week total distance in miles, the delta, and whether each week has data. Optional arg: from_date (YYYY-MM-DD). Use when asked how this week compares to the previous one.",
	}, h.GetWeeklyRollupTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_distance_series",
		Description: "Returns (week, activity, miles) points ordered by week then activity, suitable for a line chart. Args: from_date, to_date (YYYY-MM-DD), both optional. Use when you need distance trends over time.",
	}, h.GetDistanceSeriesTool())

	return s
}
