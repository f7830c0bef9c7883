// Package config loads funcmeta tool configuration from funcmeta.yml with
// environment variable overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the funcmeta configuration
type Config struct {
	ProjectName string        `mapstructure:"project_name"`
	Extract     ExtractConfig `mapstructure:"extract"`
	Catalog     CatalogConfig `mapstructure:"catalog"`
	Server      ServerConfig  `mapstructure:"server"`
}

// ExtractConfig configures the extraction pipeline
type ExtractConfig struct {
	Output  string `mapstructure:"output"`  // JSON output path
	Workers int    `mapstructure:"workers"` // Parallel workers, 0 = one per CPU
}

// CatalogConfig configures the SQLite catalog
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the metadata HTTP server
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load loads the configuration from funcmeta.yml or funcmeta.yaml
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("extract.output", "function_metadata.json")
	v.SetDefault("extract.workers", 0)
	v.SetDefault("catalog.path", "funcmeta.db")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 7430)

	v.SetConfigName("funcmeta")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Addr returns the host:port address for the metadata server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func validate(c *Config) error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Extract.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Extract.Workers)
	}
	return nil
}
