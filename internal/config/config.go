package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Targets  TargetsConfig  `mapstructure:"targets"`
	Insights InsightsConfig `mapstructure:"insights"`
	Model    ModelConfig    `mapstructure:"model"`
	Store    StoreConfig    `mapstructure:"store"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TargetsConfig holds the user's daily nutrition targets
type TargetsConfig struct {
	Calories float64 `mapstructure:"calories"`
	Protein  float64 `mapstructure:"protein"`
	Water    float64 `mapstructure:"water"`
}

// InsightsConfig tunes selection and caching of weekly insights
type InsightsConfig struct {
	TargetCount  int     `mapstructure:"target_count"`
	MinScore     float64 `mapstructure:"min_score"`
	CategoryCap  int     `mapstructure:"category_cap"`
	CacheTTLDays int     `mapstructure:"cache_ttl_days"`
}

// CacheTTL returns the insight cache lifetime as a duration.
func (c InsightsConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLDays) * 24 * time.Hour
}

// ModelConfig holds the on-device model runtime settings
type ModelConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	BaseURL           string `mapstructure:"base_url"`
	MaxTokens         int    `mapstructure:"max_tokens"`
	MinNarrativeChars int    `mapstructure:"min_narrative_chars"`
}

// StoreConfig selects the insight cache backend
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // memory or pebble
	Path    string `mapstructure:"path"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("targets.calories", 2000.0)
	v.SetDefault("targets.protein", 140.0)
	v.SetDefault("targets.water", 2000.0)
	v.SetDefault("insights.target_count", 6)
	v.SetDefault("insights.min_score", 0.3)
	v.SetDefault("insights.category_cap", 2)
	v.SetDefault("insights.cache_ttl_days", 7)
	v.SetDefault("model.enabled", false)
	v.SetDefault("model.base_url", "http://localhost:8081")
	v.SetDefault("model.max_tokens", 256)
	v.SetDefault("model.min_narrative_chars", 15)
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.path", "data/insights")

	// Read from environment variables
	v.SetEnvPrefix("NUTRIWEEK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("server.port", "PORT")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that all required configuration values are sane
func (c *Config) Validate() error {
	if c.Targets.Calories <= 0 {
		return fmt.Errorf("targets.calories must be positive")
	}
	if c.Targets.Protein <= 0 {
		return fmt.Errorf("targets.protein must be positive")
	}
	if c.Insights.TargetCount <= 0 {
		return fmt.Errorf("insights.target_count must be positive")
	}
	if c.Insights.CategoryCap <= 0 {
		return fmt.Errorf("insights.category_cap must be positive")
	}
	if c.Store.Backend != "memory" && c.Store.Backend != "pebble" {
		return fmt.Errorf("store.backend must be memory or pebble, got %q", c.Store.Backend)
	}
	if c.Store.Backend == "pebble" && c.Store.Path == "" {
		return fmt.Errorf("store.path is required for the pebble backend")
	}
	if c.Model.Enabled && c.Model.BaseURL == "" {
		return fmt.Errorf("model.base_url is required when the model is enabled")
	}
	return nil
}
