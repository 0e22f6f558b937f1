package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.debugMode, logger.Enabled(nil, slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "milka", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	for _, use := range []string{"theme", "card", "backup", "cleanup", "sample", "stats", "migrate"} {
		sub, _, err := cmd.Find([]string{use})
		assert.NoError(t, err)
		assert.Equal(t, use, sub.Name())
	}
}

func TestNewBackupCommand(t *testing.T) {
	cmd := newBackupCommand()

	assert.Equal(t, "backup", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
}

func TestNewThemeCommand(t *testing.T) {
	cmd := newThemeCommand()

	assert.Equal(t, "theme", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	for _, use := range []string{"list", "create", "delete", "pin", "duplicate", "search"} {
		sub, _, err := cmd.Find([]string{use})
		assert.NoError(t, err)
		assert.Equal(t, use, sub.Name())
	}
}
