package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName                 string        `mapstructure:"app_name"`
	Env                     string        `mapstructure:"app_env"`
	LogLevel                string        `mapstructure:"log_level"`
	EnvironmentsFile        string        `mapstructure:"environments_file"`
	Environment             string        `mapstructure:"environment"`
	TransportTimeoutSeconds int64         `mapstructure:"transport_timeout"`
	TransportTimeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "netclient")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("environments_file", "./configs/environments.yaml")
	v.SetDefault("environment", "production")
	v.SetDefault("transport_timeout", 30) // seconds

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Environment = strings.TrimSpace(cfg.Environment)
	if cfg.Environment == "" {
		return nil, fmt.Errorf("invalid environment (must not be empty)")
	}
	if cfg.TransportTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid transport_timeout (must be positive seconds)")
	}
	cfg.TransportTimeout = time.Duration(cfg.TransportTimeoutSeconds) * time.Second

	return &cfg, nil
}
