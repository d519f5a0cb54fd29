package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/2beens/weeklyreport/internal/activities"
	"github.com/2beens/weeklyreport/pkg"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// reportService is the part of report.Service the MCP tools need.
type reportService interface {
	Report(ctx context.Context, from, to time.Time) (*activities.Report, error)
}

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service reportService
}

func NewHandler(service reportService) *Handler {
	return &Handler{
		service: service,
	}
}

// DateRangeInput is the input for get_weekly_summary and get_distance_series.
type DateRangeInput struct {
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), defaults to the configured report start"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), defaults to today"`
}

// RollupInput is the input for get_weekly_rollup.
type RollupInput struct {
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), defaults to the configured report start"`
}

// GetWeeklySummaryTool returns the MCP tool handler for get_weekly_summary.
func (h *Handler) GetWeeklySummaryTool() func(context.Context, *mcp.CallToolRequest, DateRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DateRangeInput) (*mcp.CallToolResult, any, error) {
		report, errRes := h.report(ctx, in.FromDate, in.ToDate)
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(report.Summary), nil, nil
	}
}

// GetWeeklyRollupTool returns the MCP tool handler for get_weekly_rollup.
func (h *Handler) GetWeeklyRollupTool() func(context.Context, *mcp.CallToolRequest, RollupInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RollupInput) (*mcp.CallToolResult, any, error) {
		report, errRes := h.report(ctx, in.FromDate, "")
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(report.Rollup), nil, nil
	}
}

// GetDistanceSeriesTool returns the MCP tool handler for get_distance_series.
func (h *Handler) GetDistanceSeriesTool() func(context.Context, *mcp.CallToolRequest, DateRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DateRangeInput) (*mcp.CallToolResult, any, error) {
		report, errRes := h.report(ctx, in.FromDate, in.ToDate)
		if errRes != nil {
			return errRes, nil, nil
		}
		return jsonResult(report.DistanceSeries), nil, nil
	}
}

// report parses the optional dates and builds the report; on failure the
// returned result is the tool error to send back.
func (h *Handler) report(ctx context.Context, fromDate, toDate string) (*activities.Report, *mcp.CallToolResult) {
	var from, to time.Time
	var err error
	if fromDate != "" {
		if from, err = pkg.ParseDate(fromDate); err != nil {
			return nil, errorResult("Invalid from_date: use YYYY-MM-DD")
		}
	}
	if toDate != "" {
		if to, err = pkg.ParseDate(toDate); err != nil {
			return nil, errorResult("Invalid to_date: use YYYY-MM-DD")
		}
	}

	report, err := h.service.Report(ctx, from, to)
	if err != nil {
		return nil, errorResult("Error building weekly report: " + err.Error())
	}
	return report, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
