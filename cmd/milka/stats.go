package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lazycat-apps/milka/internal/deck"
	"github.com/lazycat-apps/milka/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	var themeID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
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

			header := color.New(color.FgCyan, color.Bold)
			if themeID != "" {
				cards, err := service.GetThemeCards(ctx, themeID)
				if err != nil {
					return fmt.Errorf("service.GetThemeCards() > %w", err)
				}
				cardStats := statistics.Calculate(cards)
				header.Println("Card Statistics")
				fmt.Printf("  Total cards:        %d\n", cardStats.TotalCards)
				fmt.Printf("  Average word count: %d\n", cardStats.AverageWordCount)
				fmt.Printf("  Cards with notes:   %d\n", cardStats.CardsWithNotes)
				fmt.Println("  Difficulty distribution:")
				for level := statistics.MinDifficulty; level <= statistics.MaxDifficulty; level++ {
					fmt.Printf("    %d: %d\n", level, cardStats.DifficultyDistribution[level])
				}
				return nil
			}

			stats, err := service.Statistics(ctx)
			if err != nil {
				return fmt.Errorf("service.Statistics() > %w", err)
			}
			header.Println("Store Statistics")
			fmt.Printf("  Themes:       %d (%d pinned, %d official)\n",
				stats.Themes.Total, stats.Themes.Pinned, stats.Themes.Official)
			fmt.Printf("  Cards:        %d\n", stats.Associations.Total)
			fmt.Printf("  Card faces:   %d\n", stats.CardFaces.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&themeID, "theme", "", "Show card statistics for a single theme")
	return cmd
}
