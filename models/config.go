// Package models defines configuration and report structures shared by the
// commands.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "tag-extractor.yaml"

	// Environment variables, also read from .env.
	EnvConfigPath = "TAG_EXTRACTOR_CONFIG"
	EnvDBPath     = "TAG_EXTRACTOR_DB"
)

// Config is the tag-extractor.yaml file. Flags override every field.
type Config struct {
	StopWords        string      `yaml:"stopwords"`
	BuiltinStopWords bool        `yaml:"builtin_stopwords"`
	OutputDir        string      `yaml:"output_dir"`
	DBPath           string      `yaml:"db_path"`
	Top              int         `yaml:"top"`
	Workers          int         `yaml:"workers"`
	KeepEmpty        bool        `yaml:"keep_empty"`
	NoHistory        bool        `yaml:"no_history"`
	Cache            CacheConfig `yaml:"cache"`
}

// CacheConfig controls the on-disk cache of fetched URLs.
type CacheConfig struct {
	Dir    string `yaml:"dir"`
	MaxAge string `yaml:"max_age"` // Go duration, "0" disables expiry
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "results",
		Top:       0,
		Workers:   4,
		Cache: CacheConfig{
			Dir:    ".cache/tag-extractor",
			MaxAge: "24h",
		},
	}
}

// ConfigPath returns the config file location from the environment, or
// DefaultConfigPath.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadConfig reads the YAML config at path on top of DefaultConfig.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that YAML cannot type-check on its own.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", c.Top)
	}
	if _, err := c.Cache.MaxAgeDuration(); err != nil {
		return err
	}
	return nil
}

// MaxAgeDuration parses MaxAge. An empty value means no expiry.
func (c CacheConfig) MaxAgeDuration() (time.Duration, error) {
	if c.MaxAge == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("invalid cache max_age %q: %w", c.MaxAge, err)
	}
	return d, nil
}
