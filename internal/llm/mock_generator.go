package llm

import (
	"context"

	"github.com/kilupskalvis/commity/internal/config"
)

// MockGenerator is a mock implementation of GeneratorInterface for testing.
type MockGenerator struct {
	// Message is returned by Generate
	Message string
	// Err can be set to make Generate return an error
	Err error

	// Calls records the diff and settings of every call
	Calls []MockCall
}

// MockCall is one recorded Generate invocation
type MockCall struct {
	Diff   string
	Config config.EffectiveConfig
}

// NewMockGenerator creates a MockGenerator returning message
func NewMockGenerator(message string) *MockGenerator {
	return &MockGenerator{Message: message}
}

// Generate records the call and returns the configured message.
func (m *MockGenerator) Generate(ctx context.Context, diff string, cfg config.EffectiveConfig) (string, error) {
	m.Calls = append(m.Calls, MockCall{Diff: diff, Config: cfg})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Message, nil
}
