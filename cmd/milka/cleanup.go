package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazycat-apps/milka/internal/deck"
)

func newCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove orphaned cards and faces",
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
			result, err := service.CleanupOrphans(ctx)
			if err != nil {
				return fmt.Errorf("service.CleanupOrphans() > %w", err)
			}
			if err := s.flush(ctx); err != nil {
				return fmt.Errorf("flush() > %w", err)
			}
			fmt.Printf("Removed %d orphaned cards and %d orphaned faces\n",
				result.RemovedAssociations, result.RemovedFaces)
			return nil
		},
	}
}
