package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dkratzer/taskboard-api/internal/config"
	"github.com/dkratzer/taskboard-api/internal/platform/logger"
	"github.com/dkratzer/taskboard-api/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return err
	}

	if err := postgres.RunMigrations(db, log); err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return err
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
