package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/lazycat-apps/milka/internal/backup"
	"github.com/lazycat-apps/milka/internal/card"
	"github.com/lazycat-apps/milka/internal/config"
	"github.com/lazycat-apps/milka/internal/database"
	"github.com/lazycat-apps/milka/internal/deck"
	"github.com/lazycat-apps/milka/internal/server"
	"github.com/lazycat-apps/milka/internal/storage"
	"github.com/lazycat-apps/milka/internal/theme"
	"github.com/lazycat-apps/milka/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var (
		themes       theme.ThemeRepository
		faces        card.FaceRepository
		associations card.AssociationRepository
		flush        func() error
	)
	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("database.Open() > %w", err)
		}
		defer db.Close()
		opts := database.RetryOptionsFromConfig(cfg.Retry)
		themes = database.NewRetryingThemeRepository(theme.NewDBThemeRepository(db), opts)
		faces = database.NewRetryingFaceRepository(card.NewDBFaceRepository(db), opts)
		associations = database.NewRetryingAssociationRepository(card.NewDBAssociationRepository(db), opts)
	case config.DriverFile:
		fileStore, err := storage.Open(cfg.Storage.FilePath)
		if err != nil {
			return fmt.Errorf("storage.Open() > %w", err)
		}
		themes = fileStore.Themes
		faces = fileStore.Faces
		associations = fileStore.Associations
		flush = func() error { return fileStore.Flush(context.Background()) }
	default:
		return fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	service, err := deck.NewService(themes, faces, associations)
	if err != nil {
		return fmt.Errorf("deck.NewService() > %w", err)
	}
	exporter := backup.NewExporter(themes, faces, associations)
	importer := backup.NewImporter(themes, faces, associations, os.Stdout)

	srv := server.New(service, exporter, importer, server.Config{
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, logger, flush)

	logger.Info("starting server",
		"address", cfg.Server.Address,
		"storage", cfg.Storage.Driver,
		"version", version.Version,
	)
	return http.ListenAndServe(cfg.Server.Address, h2c.NewHandler(srv.Handler(), &http2.Server{}))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(os.Getenv("MILKA_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("config.Load() > %w", err)
	}
	return cfg, nil
}
