package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Scoring     ScoringConfig     `mapstructure:"scoring"`
	Correlation CorrelationConfig `mapstructure:"correlation"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// DatabaseConfig holds the SQLite storage location
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ScoringConfig holds the risk-score weights and scales. Weights must sum
// to 1.0; tier boundaries must be contiguous over [0,100].
type ScoringConfig struct {
	WeightScreenTime  float64 `mapstructure:"weight_screen_time"`
	WeightSocialRatio float64 `mapstructure:"weight_social_ratio"`
	WeightUnlocks     float64 `mapstructure:"weight_unlocks"`
	WeightVolatility  float64 `mapstructure:"weight_volatility"`
	ScreenTimeCeiling float64 `mapstructure:"screen_time_ceiling"`
	UnlockCeiling     float64 `mapstructure:"unlock_ceiling"`
	TierMediumMin     float64 `mapstructure:"tier_medium_min"`
	TierHighMin       float64 `mapstructure:"tier_high_min"`
	WindowDays        int     `mapstructure:"window_days"`
}

// CorrelationConfig holds the trend-heuristic thresholds
type CorrelationConfig struct {
	MoodDeltaThreshold   float64 `mapstructure:"mood_delta_threshold"`
	ScreenShiftTolerance float64 `mapstructure:"screen_shift_tolerance"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.path", "data/guardian.db")
	v.SetDefault("scoring.weight_screen_time", 0.35)
	v.SetDefault("scoring.weight_social_ratio", 0.30)
	v.SetDefault("scoring.weight_unlocks", 0.20)
	v.SetDefault("scoring.weight_volatility", 0.15)
	v.SetDefault("scoring.screen_time_ceiling", 300)
	v.SetDefault("scoring.unlock_ceiling", 100)
	v.SetDefault("scoring.tier_medium_min", 34)
	v.SetDefault("scoring.tier_high_min", 66)
	v.SetDefault("scoring.window_days", 30)
	v.SetDefault("correlation.mood_delta_threshold", 0.5)
	v.SetDefault("correlation.screen_shift_tolerance", 0.10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read from environment variables
	v.SetEnvPrefix("GUARDIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for convenience
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.path", "GUARDIAN_DB_PATH")

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

// Validate checks that all required configuration values are present and
// the analytical knobs are coherent.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Scoring.WindowDays < 1 {
		return fmt.Errorf("scoring.window_days must be at least 1")
	}
	if c.Correlation.MoodDeltaThreshold < 0 {
		return fmt.Errorf("correlation.mood_delta_threshold must be non-negative")
	}
	return nil
}
