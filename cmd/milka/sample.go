package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazycat-apps/milka/internal/deck"
)

func newSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Seed the store with the bundled sample decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer s.close()

			service, err := deck.NewService(s.themes, s.faces, s.associations)
			if err != nil {
				return fmt.Errorf("deck.NewService() > %w", err)
			}
			created, err := service.SeedSampleData(ctx)
			if err != nil {
				return fmt.Errorf("service.SeedSampleData() > %w", err)
			}
			if len(created) == 0 {
				fmt.Println("Store is not empty, nothing seeded.")
				return nil
			}
			if err := s.flush(ctx); err != nil {
				return fmt.Errorf("flush() > %w", err)
			}
			for _, t := range created {
				fmt.Printf("Seeded theme %s (%s)\n", t.Title, t.ID)
			}
			return nil
		},
	}
}
