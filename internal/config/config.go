// Package config resolves the settings that drive a commity run.
// It handles the workflow settings (API key, model, emoji toggle) gathered
// from environment, editor settings and the OS keyring, and the optional
// TOML tool configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	AppDir     = "commity"
	ConfigFile = "config.toml"

	DefaultTemperature    = 0.3
	DefaultMaxDiffBytes   = 32 * 1024
	DefaultTimeoutSeconds = 60
	DefaultMaxRetries     = 0
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
)

// Config represents the commity tool configuration
type Config struct {
	Generation GenerationConfig `toml:"generation"`
	Log        LogConfig        `toml:"log"`
	path       string           // path to config.toml
}

// GenerationConfig tunes the message generation request
type GenerationConfig struct {
	BaseURL        string  `toml:"base_url"` // Empty uses the OpenAI default endpoint
	Temperature    float32 `toml:"temperature"`
	MaxDiffBytes   int     `toml:"max_diff_bytes"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxRetries     int     `toml:"max_retries"` // Retries of transient API failures; 0 (default) sends a single request
}

// LogConfig selects diagnostic log level and format
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			Temperature:    DefaultTemperature,
			MaxDiffBytes:   DefaultMaxDiffBytes,
			TimeoutSeconds: DefaultTimeoutSeconds,
			MaxRetries:     DefaultMaxRetries,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultPath returns <UserConfigDir>/commity/config.toml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, ConfigFile), nil
}

// Load loads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for zero values left by a partial file
func (c *Config) fillDefaults() {
	d := Default()
	if c.Generation.MaxDiffBytes <= 0 {
		c.Generation.MaxDiffBytes = d.Generation.MaxDiffBytes
	}
	if c.Generation.TimeoutSeconds <= 0 {
		c.Generation.TimeoutSeconds = d.Generation.TimeoutSeconds
	}
	if c.Generation.MaxRetries < 0 {
		c.Generation.MaxRetries = 0
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no path")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(c.path, data, 0644)
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// Initialize writes a default configuration file at path
func Initialize(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("config file already exists: %s", path)
	}

	cfg := Default()
	cfg.path = path

	if err := cfg.Save(); err != nil {
		return nil, err
	}

	return cfg, nil
}
