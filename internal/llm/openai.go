// Package llm generates commit messages with an OpenAI chat model through eino.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/kilupskalvis/commity/internal/config"
)

// maxReplyTokens bounds the reply; a commit line needs far fewer
const maxReplyTokens = 200

// ChatModelFactory builds a chat model for one request
type ChatModelFactory func(ctx context.Context, cfg *openai.ChatModelConfig) (model.BaseChatModel, error)

// Options tune the generation request
type Options struct {
	BaseURL      string
	Temperature  float32
	MaxDiffBytes int
	Timeout      time.Duration
}

// OptionsFromConfig maps the tool configuration onto generator options
func OptionsFromConfig(c config.GenerationConfig) Options {
	return Options{
		BaseURL:      c.BaseURL,
		Temperature:  c.Temperature,
		MaxDiffBytes: c.MaxDiffBytes,
		Timeout:      time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

// OpenAIGenerator asks an OpenAI chat model for a commit message
type OpenAIGenerator struct {
	opts    Options
	factory ChatModelFactory
	logger  *slog.Logger
}

// NewOpenAIGenerator creates a generator. A nil factory uses openai.NewChatModel.
func NewOpenAIGenerator(opts Options, factory ChatModelFactory, logger *slog.Logger) *OpenAIGenerator {
	if factory == nil {
		factory = newOpenAIChatModel
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OpenAIGenerator{opts: opts, factory: factory, logger: logger}
}

func newOpenAIChatModel(ctx context.Context, cfg *openai.ChatModelConfig) (model.BaseChatModel, error) {
	chat, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// Generate sends the diff to the model configured in cfg and returns one message line
func (g *OpenAIGenerator) Generate(ctx context.Context, diff string, cfg config.EffectiveConfig) (string, error) {
	if !cfg.HasCredential() {
		return "", ErrNoCredential
	}

	maxTokens := maxReplyTokens
	temperature := g.opts.Temperature
	chatCfg := &openai.ChatModelConfig{
		APIKey:      cfg.Credential,
		Model:       cfg.Model,
		BaseURL:     g.opts.BaseURL,
		Timeout:     g.opts.Timeout,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	}

	chat, err := g.factory(ctx, chatCfg)
	if err != nil {
		return "", fmt.Errorf("failed to create chat model: %w", err)
	}

	body := TruncateDiff(diff, g.opts.MaxDiffBytes)
	if len(body) != len(diff) {
		g.logger.Debug("diff truncated for generation", "bytes", len(diff), "limit", g.opts.MaxDiffBytes)
	}

	messages := []*schema.Message{
		schema.SystemMessage(SystemPrompt(cfg.EmojisEnabled)),
		schema.UserMessage(body),
	}

	start := time.Now()
	reply, err := chat.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	g.logger.Debug("model replied", "model", cfg.Model, "elapsed", time.Since(start))

	if reply == nil {
		return "", ErrEmptyResponse
	}
	msg := CleanMessage(reply.Content)
	if msg == "" {
		return "", ErrEmptyResponse
	}
	return msg, nil
}
