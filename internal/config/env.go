package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	EnvAPIKey       = "OPENAI_API_KEY"
	EnvModel        = "OPENAI_MODEL"
	EnvEnableEmojis = "COMMITY_ENABLE_EMOJIS"
	EnvLogLevel     = "COMMITY_LOG_LEVEL"
	EnvLogFormat    = "COMMITY_LOG_FORMAT"

	SourceEnv = "environment"
)

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// EnvSource reads settings from environment variables
type EnvSource struct {
	lookup LookupFunc
}

// NewEnvSource creates an environment source. A nil lookup uses os.LookupEnv.
func NewEnvSource(lookup LookupFunc) *EnvSource {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &EnvSource{lookup: lookup}
}

// Name returns the source label
func (e *EnvSource) Name() string {
	return SourceEnv
}

// Lookup reads OPENAI_API_KEY, OPENAI_MODEL and COMMITY_ENABLE_EMOJIS
func (e *EnvSource) Lookup() Settings {
	var s Settings

	if v, ok := e.lookup(EnvAPIKey); ok && usableKey(v) {
		s.APIKey = String(v)
	}
	if v, ok := e.lookup(EnvModel); ok && v != "" {
		s.Model = String(v)
	}
	// Any value other than "true" disables emojis, including an empty one
	if v, ok := e.lookup(EnvEnableEmojis); ok {
		s.EnableEmojis = Bool(v == "true")
	}

	return s
}

// LoadDotEnv loads <dir>/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// EnvOrDefault returns the value of key, or defaultVal when unset or empty
func EnvOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
