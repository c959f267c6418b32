package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Database struct {
	Path string `mapstructure:"path"`
}

type TCO struct {
	DefaultMonths int `mapstructure:"default_months"`
}

type Refresh struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	TCO      TCO      `mapstructure:"tco"`
	Refresh  Refresh  `mapstructure:"refresh"`
}

// LoadConfig reads the service configuration from a YAML file, applying
// defaults for everything the file leaves out.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", "tco-atlas.db")
	v.SetDefault("tco.default_months", 12)
	v.SetDefault("refresh.enabled", false)
	v.SetDefault("refresh.interval", time.Hour)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.TCO.DefaultMonths <= 0 {
		return nil, fmt.Errorf("tco.default_months must be positive, got %d", cfg.TCO.DefaultMonths)
	}
	if cfg.Refresh.Enabled && cfg.Refresh.Interval <= 0 {
		return nil, fmt.Errorf("refresh.interval must be positive when refresh is enabled")
	}

	return &cfg, nil
}
