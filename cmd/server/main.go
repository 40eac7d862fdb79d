package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/fieldnotes/internal/app"
	"github.com/nfrund/fieldnotes/internal/config"
	"github.com/nfrund/fieldnotes/internal/database"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/logging"
	"github.com/nfrund/fieldnotes/internal/pubsub"
	"github.com/nfrund/fieldnotes/internal/rendering"
	"github.com/nfrund/fieldnotes/internal/server"
	"github.com/samber/do/v2"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New() // Initialize the structured logger

	cfg, err := config.New()
	if err != nil {
		return err
	}

	ctx := context.Background()
	conn := database.NewConnection(cfg)
	if err := conn.Connect(ctx); err != nil {
		return err
	}
	conn.StartMonitoring()

	bus := pubsub.NewWatermillBridge(logger)
	injector := app.NewInjector(cfg, conn, bus)

	sessions, err := do.Invoke[domain.SessionRepository](injector)
	if err != nil {
		return err
	}
	profiles, err := do.Invoke[domain.ProfileRepository](injector)
	if err != nil {
		return err
	}

	s, err := server.New(server.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Health:    conn,
		Sessions:  sessions,
		Profiles:  profiles,
		Renderer:  do.MustInvoke[rendering.Renderer](injector),
		Bus:       bus,
		Injector:  injector,
		Modules:   app.NewModules(),
		Resources: []server.Closer{conn},
	})
	if err != nil {
		return err
	}

	if err := s.RegisterRoutes(ctx); err != nil {
		return err
	}
	return s.Start()
}
