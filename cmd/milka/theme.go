package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lazycat-apps/milka/internal/deck"
)

func newThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage themes",
	}
	cmd.AddCommand(newThemeListCommand())
	cmd.AddCommand(newThemeCreateCommand())
	cmd.AddCommand(newThemeDeleteCommand())
	cmd.AddCommand(newThemePinCommand())
	cmd.AddCommand(newThemeDuplicateCommand())
	cmd.AddCommand(newThemeSearchCommand())
	return cmd
}

func newThemeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all themes, pinned first",
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
			themes, err := service.Themes(ctx, deck.ListOptions{PinnedFirst: true})
			if err != nil {
				return fmt.Errorf("service.Themes() > %w", err)
			}
			if len(themes) == 0 {
				fmt.Println("No themes found.")
				return nil
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			for _, t := range themes {
				pin := "  "
				if t.IsPinned {
					pin = color.YellowString("📌")
				}
				count, err := s.associations.CountByTheme(ctx, t.ID)
				if err != nil {
					return fmt.Errorf("associations.CountByTheme() > %w", err)
				}
				fmt.Printf("%s %s  %s (%d cards)\n", pin, titleColor.Sprint(t.Title), color.HiBlackString(t.ID), count)
				if t.Description != "" {
					fmt.Printf("     %s\n", t.Description)
				}
			}
			return nil
		},
	}
}

func newThemeCreateCommand() *cobra.Command {
	var description string
	var style string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a theme",
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
			t, err := service.CreateTheme(ctx, deck.ThemeInput{
				Title:       args[0],
				Description: description,
				Style:       style,
			})
			if err != nil {
				return fmt.Errorf("service.CreateTheme() > %w", err)
			}
			if err := s.flush(ctx); err != nil {
				return fmt.Errorf("flush() > %w", err)
			}
			fmt.Printf("Created theme %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Theme description")
	cmd.Flags().StringVar(&style, "style", "", "Theme style (minimalist-white or night-black)")
	return cmd
}

func newThemeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <theme-id>",
		Short: "Delete a theme and all of its cards",
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
			if err := service.DeleteTheme(ctx, args[0]); err != nil {
				return fmt.Errorf("service.DeleteTheme() > %w", err)
			}
			if err := s.flush(ctx); err != nil {
				return fmt.Errorf("flush() > %w", err)
			}
			fmt.Printf("Deleted theme %s\n", args[0])
			return nil
		},
	}
}

func newThemeDuplicateCommand() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "duplicate <theme-id>",
		Short: "Copy a theme and all of its cards",
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
			dup, copied, err := service.DuplicateTheme(ctx, args[0], title)
			if err != nil {
				return fmt.Errorf("service.DuplicateTheme() > %w", err)
			}
			if err := s.flush(ctx); err != nil {
				return fmt.Errorf("flush() > %w", err)
			}
			fmt.Printf("Duplicated theme as %s (%s), %d cards copied\n", dup.Title, dup.ID, copied)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Title for the copy")
	return cmd
}

func newThemeSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search themes by title or description",
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
			themes, err := service.SearchThemes(ctx, args[0])
			if err != nil {
				return fmt.Errorf("service.SearchThemes() > %w", err)
			}
			if len(themes) == 0 {
				fmt.Println("No themes found.")
				return nil
			}
			titleColor := color.New(color.FgCyan, color.Bold)
			for _, t := range themes {
				fmt.Printf("%s  %s\n", titleColor.Sprint(t.Title), color.HiBlackString(t.ID))
			}
			return nil
		},
	}
}

func newThemePinCommand() *cobra.Command {
	var unpin bool

	cmd := &cobra.Command{
		Use:   "pin <theme-id>",
		Short: "Pin or unpin a theme",
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
			if err := service.TogglePin(ctx, args[0], !unpin); err != nil {
				return fmt.Errorf("service.TogglePin() > %w", err)
			}
			if err := s.flush(ctx); err != nil {
				return fmt.Errorf("flush() > %w", err)
			}
			if unpin {
				fmt.Printf("Unpinned theme %s\n", args[0])
			} else {
				fmt.Printf("Pinned theme %s\n", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&unpin, "unpin", false, "Unpin instead of pin")
	return cmd
}
