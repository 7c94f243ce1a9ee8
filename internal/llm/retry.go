package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/kilupskalvis/commity/internal/config"
)

// RetryConfig configures retry behavior for transient errors.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	JitterFraction float64 // 0.0 to 1.0
}

// DefaultRetryConfig returns the retry defaults for model requests.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:     config.DefaultMaxRetries,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     8 * time.Second,
		JitterFraction: 0.25,
	}
}

// RetryGenerator wraps a generator with automatic retry on transient errors.
type RetryGenerator struct {
	inner  GeneratorInterface
	config *RetryConfig
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryGenerator creates a RetryGenerator around inner. A nil cfg uses DefaultRetryConfig.
func NewRetryGenerator(inner GeneratorInterface, cfg *RetryConfig, logger *slog.Logger) *RetryGenerator {
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryGenerator{inner: inner, config: cfg, logger: logger, sleep: sleep}
}

// NewGenerator builds the OpenAI generator with retries configured from the tool config
func NewGenerator(c config.GenerationConfig, logger *slog.Logger) *RetryGenerator {
	rc := DefaultRetryConfig()
	rc.MaxRetries = c.MaxRetries
	return NewRetryGenerator(NewOpenAIGenerator(OptionsFromConfig(c), nil, logger), rc, logger)
}

var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// isTransient returns true for errors that are worth retrying.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrEmptyResponse) || errors.Is(err, ErrNoCredential) {
		return false
	}
	// API errors carry the HTTP status in their text
	if m := statusCodePattern.FindStringSubmatch(err.Error()); m != nil {
		status, _ := strconv.Atoi(m[1])
		return status >= 500 || status == http.StatusTooManyRequests
	}
	return true // network errors are transient
}

// backoff computes the delay for the given attempt with jitter.
func (rg *RetryGenerator) backoff(attempt int) time.Duration {
	base := float64(rg.config.InitialBackoff) * math.Pow(2, float64(attempt))
	if base > float64(rg.config.MaxBackoff) {
		base = float64(rg.config.MaxBackoff)
	}
	jitter := base * rg.config.JitterFraction * (rand.Float64()*2 - 1)
	d := time.Duration(base + jitter)
	if d < 0 {
		d = 0
	}
	return d
}

// sleep waits for the given duration or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Generate calls the wrapped generator, retrying transient failures.
func (rg *RetryGenerator) Generate(ctx context.Context, diff string, cfg config.EffectiveConfig) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= rg.config.MaxRetries; attempt++ {
		msg, err := rg.inner.Generate(ctx, diff, cfg)
		if err == nil {
			return msg, nil
		}
		lastErr = err
		if !isTransient(err) {
			return "", err
		}
		if attempt < rg.config.MaxRetries {
			d := rg.backoff(attempt)
			rg.logger.Debug("retrying model request", "attempt", attempt+1, "delay", d, "error", err)
			if err := rg.sleep(ctx, d); err != nil {
				return "", fmt.Errorf("%w (retry cancelled)", lastErr)
			}
		}
	}
	if rg.config.MaxRetries == 0 {
		return "", lastErr
	}
	return "", fmt.Errorf("%w (after %d retries)", lastErr, rg.config.MaxRetries)
}
