package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		want    func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name:    "defaults without a config file",
			content: "",
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "file", cfg.Storage.Driver)
				assert.Equal(t, filepath.Join("data", "milka.json"), cfg.Storage.FilePath)
				assert.Equal(t, ":3000", cfg.Server.Address)
				assert.Equal(t, uint(3), cfg.Retry.MaxAttempts)
				assert.Equal(t, 1000, cfg.Retry.BaseDelayMs)
			},
		},
		{
			name: "values from config file",
			content: `storage:
  driver: mysql
database:
  host: db.internal
  port: 3307
  database: milka_prod
server:
  address: ":8080"
  allowed_origins:
    - http://localhost:3000
retry:
  max_attempts: 5
  base_delay_ms: 200
`,
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.Storage.Driver)
				assert.Equal(t, "db.internal", cfg.Database.Host)
				assert.Equal(t, 3307, cfg.Database.Port)
				assert.Equal(t, "milka_prod", cfg.Database.Database)
				assert.Equal(t, ":8080", cfg.Server.Address)
				assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, uint(5), cfg.Retry.MaxAttempts)
			},
		},
		{
			name:    "credentials from environment",
			content: "database:\n  host: localhost\n",
			env: map[string]string{
				"MILKA_DB_USERNAME": "milka",
				"MILKA_DB_PASSWORD": "secret",
			},
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "milka", cfg.Database.Username)
				assert.Equal(t, "secret", cfg.Database.Password)
			},
		},
		{
			name:    "invalid yaml",
			content: "storage: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.content != "" {
				configFile = filepath.Join(t.TempDir(), "config.yml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.content), 0644))
			}

			got, err := Load(configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.want(t, got)
		})
	}
}
