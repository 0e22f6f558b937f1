package main

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lazycat-apps/milka/internal/database"
	"github.com/lazycat-apps/milka/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer db.Close()

			names, err := migrationNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				data, err := schemas.Migrations.ReadFile("migrations/" + name)
				if err != nil {
					return fmt.Errorf("schemas.Migrations.ReadFile(%s) > %w", name, err)
				}
				if _, err := db.ExecContext(ctx, string(data)); err != nil {
					return fmt.Errorf("db.ExecContext(%s) > %w", name, err)
				}
				fmt.Printf("Applied %s\n", name)
			}
			return nil
		},
	}
}

func migrationNames() ([]string, error) {
	entries, err := fs.ReadDir(schemas.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("fs.ReadDir(migrations) > %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
