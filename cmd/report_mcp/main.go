// Package main runs the weekly report MCP server over stdio (for local editor/agent use).
// The same MCP server is also mounted on the service at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/weeklyreport/internal/activities"
	"github.com/2beens/weeklyreport/internal/config"
	"github.com/2beens/weeklyreport/internal/garmin"
	"github.com/2beens/weeklyreport/internal/report"
	reportmcp "github.com/2beens/weeklyreport/internal/report/mcp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	garminToken := os.Getenv("WEEKLY_GARMIN_TOKEN")
	if garminToken == "" {
		log.Fatalf("garmin token not set, use WEEKLY_GARMIN_TOKEN env var to set it")
	}

	source := garmin.NewClient(garmin.ClientParams{
		BaseURL:  cfg.GarminBaseURL,
		Token:    garminToken,
		PageSize: cfg.GarminPageSize,
		CacheTTL: cfg.SourceCacheTTL.Duration,
	})
	service := report.NewService(
		activities.NewReporter(source, activities.SystemClock{}),
		nil,
		cfg.ReportStart(),
		nil,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := reportmcp.NewServer(service)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
