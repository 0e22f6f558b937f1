package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	debug      bool
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "milka",
		Short:         "Flashcard theme and card management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debug)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newThemeCommand())
	rootCmd.AddCommand(newCardCommand())
	rootCmd.AddCommand(newBackupCommand())
	rootCmd.AddCommand(newCleanupCommand())
	rootCmd.AddCommand(newSampleCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newMigrateCommand())
	return rootCmd
}

func setupLogger(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
