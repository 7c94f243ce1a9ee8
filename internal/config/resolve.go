package config

import "strings"

const (
	// PlaceholderAPIKey is the sample value shipped in .env templates; it counts as unset.
	PlaceholderAPIKey = "sk-your-openai-api-key-here"

	DefaultModel         = "gpt-4o-mini"
	DefaultEmojisEnabled = true

	SourceDefault = "default"
)

// EffectiveConfig holds the settings for one run. It is built once by
// Resolver.Resolve and not modified afterwards.
type EffectiveConfig struct {
	Credential    string
	Model         string
	EmojisEnabled bool

	// Name of the source each field was taken from
	CredentialSource string
	ModelSource      string
	EmojisSource     string
}

// HasCredential returns true if a usable API key was resolved
func (c EffectiveConfig) HasCredential() bool {
	return usableKey(c.Credential)
}

// MaskedCredential returns the API key with all but its edges hidden
func (c EffectiveConfig) MaskedCredential() string {
	key := c.Credential
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", len(key)-7) + key[len(key)-4:]
}

// Settings is a partial view of the workflow settings offered by one source.
// A nil field means the source has no value for it.
type Settings struct {
	APIKey       *string
	Model        *string
	EnableEmojis *bool
}

// Source supplies Settings to the Resolver
type Source interface {
	Name() string
	Lookup() Settings
}

// Resolver resolves EffectiveConfig from sources in priority order
type Resolver struct {
	Sources []Source
}

// NewResolver creates a resolver over the given sources, highest priority first
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{Sources: sources}
}

// Resolve picks, per field, the first source that has a value.
// A missing credential is not an error here; callers check HasCredential.
func (r *Resolver) Resolve() EffectiveConfig {
	cfg := EffectiveConfig{
		Model:         DefaultModel,
		EmojisEnabled: DefaultEmojisEnabled,
		ModelSource:   SourceDefault,
		EmojisSource:  SourceDefault,
	}

	var haveKey, haveModel, haveEmojis bool
	for _, src := range r.Sources {
		if haveKey && haveModel && haveEmojis {
			break
		}
		s := src.Lookup()

		if !haveKey && s.APIKey != nil && usableKey(*s.APIKey) {
			cfg.Credential = *s.APIKey
			cfg.CredentialSource = src.Name()
			haveKey = true
		}
		if !haveModel && s.Model != nil && strings.TrimSpace(*s.Model) != "" {
			cfg.Model = strings.TrimSpace(*s.Model)
			cfg.ModelSource = src.Name()
			haveModel = true
		}
		if !haveEmojis && s.EnableEmojis != nil {
			cfg.EmojisEnabled = *s.EnableEmojis
			cfg.EmojisSource = src.Name()
			haveEmojis = true
		}
	}

	return cfg
}

func usableKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderAPIKey
}

// StaticSource serves fixed settings, such as those pushed by an editor host
type StaticSource struct {
	Label    string
	Settings Settings
}

// Name returns the source label
func (s *StaticSource) Name() string {
	return s.Label
}

// Lookup returns the fixed settings
func (s *StaticSource) Lookup() Settings {
	return s.Settings
}

// String returns a pointer to v, for building Settings
func String(v string) *string {
	return &v
}

// Bool returns a pointer to v, for building Settings
func Bool(v bool) *bool {
	return &v
}
