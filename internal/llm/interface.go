package llm

import (
	"context"
	"errors"

	"github.com/kilupskalvis/commity/internal/config"
)

var (
	// ErrEmptyResponse is returned when the model produced no usable message
	ErrEmptyResponse = errors.New("model returned an empty commit message")
	// ErrNoCredential is returned when Generate is called without an API key
	ErrNoCredential = errors.New("no API key configured")
)

// GeneratorInterface turns a staged diff into a single-line commit message.
// Settings are passed per call; nothing is read from the environment.
type GeneratorInterface interface {
	Generate(ctx context.Context, diff string, cfg config.EffectiveConfig) (string, error)
}

// Verify that *OpenAIGenerator implements GeneratorInterface at compile time
var _ GeneratorInterface = (*OpenAIGenerator)(nil)
var _ GeneratorInterface = (*RetryGenerator)(nil)
