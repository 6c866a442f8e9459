package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/liftplan/internal/config"
	"github.com/claude/liftplan/internal/mcp"
	"github.com/claude/liftplan/internal/program"
	"github.com/claude/liftplan/internal/storage"
	"github.com/claude/liftplan/internal/technique"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// liftplan-mcp exposes LiftPlan over MCP on stdio. In remote mode (-remote)
// stored programs are fetched from a running LiftPlan server's REST API;
// otherwise it connects straight to Postgres using the config file. Archetype
// and technique data are embedded, so both modes serve the full tool set.
func main() {
	remoteURL := flag.String("remote", "", "base URL of a LiftPlan server (e.g. http://liftplan:8080); skips the database")
	configPath := flag.String("config", "config.yaml", "path to config file (local mode only)")
	flag.Parse()

	// Logs go to stderr: stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	registry, err := program.DefaultRegistry()
	if err != nil {
		log.Error("failed to load archetypes", "error", err)
		os.Exit(1)
	}
	engine, err := technique.DefaultEngine()
	if err != nil {
		log.Error("failed to load technique table", "error", err)
		os.Exit(1)
	}

	var ds mcp.DataSource
	if *remoteURL != "" {
		ds = mcp.NewHTTPClient(*remoteURL)
		log.Info("remote mode", "url", *remoteURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("local mode", "database", cfg.Database.Name)
	}

	s := mcp.New(ds, program.NewComposer(registry), engine, Version, log)

	log.Info("MCP server starting", "transport", "stdio", "version", Version)
	if err := server.ServeStdio(s); err != nil {
		log.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}
