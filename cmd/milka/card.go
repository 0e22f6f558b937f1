package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lazycat-apps/milka/internal/deck"
	"github.com/lazycat-apps/milka/internal/statistics"
)

func newCardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}
	cmd.AddCommand(newCardAddCommand())
	cmd.AddCommand(newCardListCommand())
	cmd.AddCommand(newCardDeleteCommand())
	cmd.AddCommand(newCardSearchCommand())
	return cmd
}

func newCardSearchCommand() *cobra.Command {
	var themeID string
	var difficulty int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search cards by text or notes",
		Args:  cobra.ExactArgs(1),
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
			cards, err := service.SearchCards(ctx, args[0], deck.SearchCardOptions{ThemeID: themeID})
			if err != nil {
				return fmt.Errorf("service.SearchCards() > %w", err)
			}
			if difficulty > 0 {
				filtered := cards[:0]
				for _, c := range cards {
					if statistics.Difficulty(c) == difficulty {
						filtered = append(filtered, c)
					}
				}
				cards = filtered
			}
			if len(cards) == 0 {
				fmt.Println("No cards found.")
				return nil
			}

			frontColor := color.New(color.FgGreen)
			for _, c := range cards {
				fmt.Printf("%s  %s = %s\n",
					color.HiBlackString(c.ID),
					frontColor.Sprint(c.Front.MainText),
					c.Back.MainText,
				)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&themeID, "theme", "", "Restrict the search to one theme")
	cmd.Flags().IntVar(&difficulty, "difficulty", 0, "Only cards of this difficulty (1-5)")
	return cmd
}

func newCardAddCommand() *cobra.Command {
	var frontNotes string
	var backNotes string

	cmd := &cobra.Command{
		Use:   "add <theme-id> <front> <back>",
		Short: "Add a card to a theme",
		Args:  cobra.ExactArgs(3),
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
			c, err := service.AddCard(ctx, args[0], args[1], args[2], deck.CardOptions{
				FrontNotes: frontNotes,
				BackNotes:  backNotes,
			})
			if err != nil {
				return fmt.Errorf("service.AddCard() > %w", err)
			}
			if err := s.flush(ctx); err != nil {
				return fmt.Errorf("flush() > %w", err)
			}
			fmt.Printf("Added card %s: %s / %s\n", c.ID, c.Front.MainText, c.Back.MainText)
			return nil
		},
	}
	cmd.Flags().StringVar(&frontNotes, "front-notes", "", "Notes for the front face")
	cmd.Flags().StringVar(&backNotes, "back-notes", "", "Notes for the back face")
	return cmd
}

func newCardListCommand() *cobra.Command {
	var byDifficulty bool

	cmd := &cobra.Command{
		Use:   "list <theme-id>",
		Short: "List the cards of a theme",
		Args:  cobra.ExactArgs(1),
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
			cards, err := service.GetThemeCards(ctx, args[0])
			if err != nil {
				return fmt.Errorf("service.GetThemeCards() > %w", err)
			}
			if len(cards) == 0 {
				fmt.Println("No cards found.")
				return nil
			}
			if byDifficulty {
				cards = statistics.SortByDifficulty(cards)
			}

			frontColor := color.New(color.FgGreen)
			for _, c := range cards {
				fmt.Printf("%s  %s = %s  (difficulty %d)\n",
					color.HiBlackString(c.ID),
					frontColor.Sprint(c.Front.MainText),
					c.Back.MainText,
					statistics.Difficulty(c),
				)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&byDifficulty, "by-difficulty", false, "Sort hardest cards first")
	return cmd
}

func newCardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card and both of its faces",
		Args:  cobra.ExactArgs(1),
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
			if err := service.DeleteCard(ctx, args[0]); err != nil {
				return fmt.Errorf("service.DeleteCard() > %w", err)
			}
			if err := s.flush(ctx); err != nil {
				return fmt.Errorf("flush() > %w", err)
			}
			fmt.Printf("Deleted card %s\n", args[0])
			return nil
		},
	}
}
