package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Backend BackendConfig `mapstructure:"backend"`
	Reveal  RevealConfig  `mapstructure:"reveal"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// BackendConfig holds agent backend configuration
type BackendConfig struct {
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"-"`
	TimeoutStr string        `mapstructure:"timeout"` // For parsing string duration
}

// RevealConfig holds reveal pacing configuration.
// Intervals are in milliseconds except the settle timeout.
type RevealConfig struct {
	Strategy         string `mapstructure:"strategy"` // line or char
	LineBaseMs       int    `mapstructure:"line_base_ms"`
	LinePerCharMs    int    `mapstructure:"line_per_char_ms"`
	CharBaseMs       int    `mapstructure:"char_base_ms"`
	PollMs           int    `mapstructure:"poll_ms"`
	SettleTimeoutSec int    `mapstructure:"settle_timeout_sec"`
}

// Global config instance
var cfg *Config

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load loads configuration from file and environment
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(home, ".config")
		}

		viper.AddConfigPath("./.patter") // Check project directory first
		viper.AddConfigPath(filepath.Join(xdgConfigHome, "patter"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix("PATTER")
	viper.AutomaticEnv()

	// Missing config file is fine, defaults apply
	_ = viper.ReadInConfig()

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Viper doesn't handle time.Duration directly
	if err := processDurations(cfg); err != nil {
		return nil, fmt.Errorf("failed to process durations: %w", err)
	}

	return cfg, nil
}

// Set replaces the global config instance (useful for testing)
func Set(c *Config) {
	cfg = c
}

func setDefaults() {
	viper.SetDefault("logging.log_file", "./.patter/system.log")
	viper.SetDefault("logging.preserve", true)
	viper.SetDefault("logging.level", "info")

	viper.SetDefault("backend.url", "http://localhost:8000")
	viper.SetDefault("backend.timeout", "90s")

	viper.SetDefault("reveal.strategy", "line")
	viper.SetDefault("reveal.line_base_ms", 150)
	viper.SetDefault("reveal.line_per_char_ms", 2)
	viper.SetDefault("reveal.char_base_ms", 18)
	viper.SetDefault("reveal.poll_ms", 80)
	viper.SetDefault("reveal.settle_timeout_sec", 5)
}

func processDurations(c *Config) error {
	if c.Backend.TimeoutStr != "" {
		d, err := time.ParseDuration(c.Backend.TimeoutStr)
		if err != nil {
			return fmt.Errorf("invalid backend.timeout %q: %w", c.Backend.TimeoutStr, err)
		}
		c.Backend.Timeout = d
	} else {
		c.Backend.Timeout = 90 * time.Second
	}
	return nil
}

// BuildSettingsPath returns a path inside the settings directory
func BuildSettingsPath(filename string) string {
	return filepath.Join("./.patter", filename)
}
