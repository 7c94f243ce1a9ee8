package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// SettingsKey is the top-level key of the commity block in the editor settings
	SettingsKey = "commity"

	SourceHostSettings = "vscode-settings"
)

// HostSettingsPath returns the VS Code user settings.json for the given GOOS
func HostSettingsPath(goos, home string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Code", "User", "settings.json")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "Code", "User", "settings.json")
	default:
		return filepath.Join(home, ".config", "Code", "User", "settings.json")
	}
}

// DefaultHostSettingsPath returns the settings.json location for this machine,
// or empty if the home directory is unknown
func DefaultHostSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return HostSettingsPath(runtime.GOOS, home)
}

// hostSettings mirrors the commity block of the editor settings
type hostSettings struct {
	OpenAIAPIKey *string `json:"openaiApiKey"`
	OpenAIModel  *string `json:"openaiModel"`
	EnableEmojis *bool   `json:"enableEmojis"`
}

// HostSettingsSource reads the commity block from the editor settings document.
// Every failure is logged and treated as "no values".
type HostSettingsSource struct {
	path   string
	logger *slog.Logger
}

// NewHostSettingsSource creates a source reading the document at path
func NewHostSettingsSource(path string, logger *slog.Logger) *HostSettingsSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HostSettingsSource{path: path, logger: logger}
}

// Name returns the source label
func (h *HostSettingsSource) Name() string {
	return SourceHostSettings
}

// Path returns the settings document location
func (h *HostSettingsSource) Path() string {
	return h.path
}

// Lookup reads the document. It never fails.
func (h *HostSettingsSource) Lookup() Settings {
	block, ok := h.load()
	if !ok {
		return Settings{}
	}

	var s Settings
	if block.OpenAIAPIKey != nil && *block.OpenAIAPIKey != "" {
		s.APIKey = block.OpenAIAPIKey
	}
	if block.OpenAIModel != nil && *block.OpenAIModel != "" {
		s.Model = block.OpenAIModel
	}
	if block.EnableEmojis != nil {
		s.EnableEmojis = block.EnableEmojis
	}
	return s
}

func (h *HostSettingsSource) load() (*hostSettings, bool) {
	if h.path == "" {
		return nil, false
	}

	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		h.logger.Debug("editor settings not found", "path", h.path)
		return nil, false
	}
	if err != nil {
		h.logger.Warn("could not read editor settings", "path", h.path, "error", err)
		return nil, false
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		h.logger.Warn("could not parse editor settings", "path", h.path, "error", err)
		return nil, false
	}

	var block hostSettings
	if raw, ok := doc[SettingsKey]; ok {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			h.logger.Warn("ignoring malformed commity settings block", "path", h.path, "error", err)
		} else {
			// Each field stands alone so one bad value does not hide the others
			decodeField(h, fields, "openaiApiKey", &block.OpenAIAPIKey)
			decodeField(h, fields, "openaiModel", &block.OpenAIModel)
			decodeField(h, fields, "enableEmojis", &block.EnableEmojis)
		}
	}

	// VS Code itself writes flat "commity.<field>" keys
	decodeField(h, doc, SettingsKey+".openaiApiKey", &block.OpenAIAPIKey)
	decodeField(h, doc, SettingsKey+".openaiModel", &block.OpenAIModel)
	decodeField(h, doc, SettingsKey+".enableEmojis", &block.EnableEmojis)

	if block == (hostSettings{}) {
		h.logger.Debug("editor settings have no commity block", "path", h.path)
		return nil, false
	}
	return &block, true
}

// decodeField sets *dst from fields[key] unless it is already set.
// A value of the wrong type is logged and skipped.
func decodeField[T any](h *HostSettingsSource, fields map[string]json.RawMessage, key string, dst **T) {
	if *dst != nil {
		return
	}
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		h.logger.Warn("ignoring invalid editor setting", "path", h.path, "key", key, "error", err)
		return
	}
	*dst = &v
}
