package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Retry    RetryConfig    `mapstructure:"retry"`
}

const (
	DriverFile  = "file"
	DriverMySQL = "mysql"
)

// StorageConfig selects the persistence backend. Driver is either "file"
// (JSON document store) or "mysql".
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	FilePath string `mapstructure:"file_path"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Database        string            `mapstructure:"database"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	StaticDir      string   `mapstructure:"static_dir"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RetryConfig controls the retry decorators wrapped around every repository.
type RetryConfig struct {
	MaxAttempts uint `mapstructure:"max_attempts"`
	BaseDelayMs int  `mapstructure:"base_delay_ms"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/milka")
	}

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.file_path", filepath.Join("data", "milka.json"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "milka")
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay_ms", 1000)

	// Bind database credentials to environment variables only (not from config file)
	if err := v.BindEnv("database.username", "MILKA_DB_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind MILKA_DB_USERNAME environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "MILKA_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind MILKA_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	return &cfg, nil
}
