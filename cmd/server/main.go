package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/clubportal/internal/app"
	"github.com/nfrund/clubportal/internal/config"
	"github.com/nfrund/clubportal/internal/logging"
	"github.com/nfrund/clubportal/internal/registry"
	"github.com/nfrund/clubportal/internal/server"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.New(cfg.LogFormat, cfg.LogLevel)

	core, err := app.NewDependencies(cfg)
	if err != nil {
		slog.Error("Failed to build core services", "error", err)
		os.Exit(1)
	}

	reg := registry.New(cfg)
	app.Populate(reg, core)

	s, err := server.New(server.Dependencies{Config: cfg, Core: core})
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.InitModules(context.Background(), app.NewModules(), reg); err != nil {
		slog.Error("Failed to initialize modules", "error", err)
		os.Exit(1)
	}
	s.RegisterRoutes()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
