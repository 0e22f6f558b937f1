package main

import (
	"context"
	"fmt"

	"github.com/lazycat-apps/milka/internal/card"
	"github.com/lazycat-apps/milka/internal/config"
	"github.com/lazycat-apps/milka/internal/database"
	"github.com/lazycat-apps/milka/internal/storage"
	"github.com/lazycat-apps/milka/internal/theme"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.Load() > %w", err)
	}
	return cfg, nil
}

// stores bundles the three repositories with their lifecycle hooks.
// flush persists the file store and is a no-op for MySQL; close releases
// the database pool.
type stores struct {
	themes       theme.ThemeRepository
	faces        card.FaceRepository
	associations card.AssociationRepository
	flush        func(ctx context.Context) error
	close        func() error
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		opts := database.RetryOptionsFromConfig(cfg.Retry)
		return &stores{
			themes:       database.NewRetryingThemeRepository(theme.NewDBThemeRepository(db), opts),
			faces:        database.NewRetryingFaceRepository(card.NewDBFaceRepository(db), opts),
			associations: database.NewRetryingAssociationRepository(card.NewDBAssociationRepository(db), opts),
			flush:        func(ctx context.Context) error { return nil },
			close:        db.Close,
		}, nil
	case config.DriverFile:
		fileStore, err := storage.Open(cfg.Storage.FilePath)
		if err != nil {
			return nil, fmt.Errorf("storage.Open() > %w", err)
		}
		return &stores{
			themes:       fileStore.Themes,
			faces:        fileStore.Faces,
			associations: fileStore.Associations,
			flush:        fileStore.Flush,
			close:        func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
