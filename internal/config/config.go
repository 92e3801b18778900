package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration for the route watcher.
type Config struct {
	// Interval is the number of seconds between polls, minimum 1.
	Interval int `yaml:"interval"`
	// OutputDir is the directory for the change log and CSV files,
	// created if absent.
	OutputDir string `yaml:"output_dir"`
	// Prefix is an optional filename prefix for the change log and CSV.
	Prefix string `yaml:"prefix"`
	// Console enables interactive progress output; persistence is
	// unaffected when disabled.
	Console bool `yaml:"console"`

	LogLevel string `yaml:"log_level"`
}

// NewDefault creates a config with default values.
func NewDefault() *Config {
	return &Config{
		Interval:  10,
		OutputDir: ".",
		Console:   true,
		LogLevel:  "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := NewDefault()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects invalid settings before any polling begins.
func (c *Config) Validate() error {
	if c.Interval < 1 {
		return fmt.Errorf("interval must be at least 1 second, got %d", c.Interval)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}
