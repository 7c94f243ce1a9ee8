package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "commity"
	keyringUser    = "openai"

	SourceKeyring = "keyring"
)

// KeyringSource reads the API key stored by "commity auth set"
type KeyringSource struct {
	logger *slog.Logger
}

// NewKeyringSource creates a keyring-backed credential source
func NewKeyringSource(logger *slog.Logger) *KeyringSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KeyringSource{logger: logger}
}

// Name returns the source label
func (k *KeyringSource) Name() string {
	return SourceKeyring
}

// Lookup returns the stored credential, if any. The keyring never supplies model or emoji settings.
func (k *KeyringSource) Lookup() Settings {
	key, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return Settings{}
	}
	if err != nil {
		k.logger.Debug("keyring unavailable", "error", err)
		return Settings{}
	}
	if key == "" {
		return Settings{}
	}
	return Settings{APIKey: String(key)}
}

// StoreCredential saves the API key in the OS keyring
func StoreCredential(key string) error {
	key = strings.TrimSpace(key)
	if !usableKey(key) {
		return errors.New("API key is empty")
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// ClearCredential removes the API key from the OS keyring.
// Returns false if no key was stored.
func ClearCredential() (bool, error) {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove API key from keyring: %w", err)
	}
	return true, nil
}
