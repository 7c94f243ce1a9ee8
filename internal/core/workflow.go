// Package core implements the commit workflow shared by the terminal and
// editor front ends: resolve settings, read the staged diff, generate a
// message, let the user decide, and commit.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/git"
	"github.com/kilupskalvis/commity/internal/llm"
	"github.com/kilupskalvis/commity/internal/models"
)

// Stage identifies a step of the workflow for progress reporting
type Stage int

const (
	StageReading Stage = iota
	StageGenerating
	StageGenerated
	StageCommitting
)

func (s Stage) String() string {
	switch s {
	case StageReading:
		return "Reading staged changes..."
	case StageGenerating:
		return "Generating commit message with AI..."
	case StageGenerated:
		return "Commit message generated!"
	case StageCommitting:
		return "Committing..."
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Reporter receives progress notifications from the workflow
type Reporter interface {
	Configured(cfg config.EffectiveConfig)
	Progress(stage Stage)
	Warn(message string)
}

// SettingsResolver produces the settings for one run
type SettingsResolver interface {
	Resolve() config.EffectiveConfig
}

// Runner drives one workflow run against its collaborators
type Runner struct {
	Settings  SettingsResolver
	Repo      git.RepositoryInterface
	Generator llm.GeneratorInterface
	Prompter  Prompter
	Reporter  Reporter
	Logger    *slog.Logger
}

// Run executes the workflow once. "Nothing staged" and cancellation are
// successful results; every error wraps one of the kinds in errors.go.
func (r *Runner) Run(ctx context.Context) (*models.RunResult, error) {
	reporter := r.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Settings
	cfg := r.Settings.Resolve()
	if !cfg.HasCredential() {
		return nil, ErrConfigurationMissing
	}
	logger.Debug("settings resolved",
		"credential_source", cfg.CredentialSource,
		"model", cfg.Model, "model_source", cfg.ModelSource,
		"emojis", cfg.EmojisEnabled, "emojis_source", cfg.EmojisSource)
	reporter.Configured(cfg)

	// Staged diff
	reporter.Progress(StageReading)
	diff, err := r.Repo.StagedDiff(ctx)
	if err != nil {
		if errors.Is(err, git.ErrNotRepository) {
			return nil, fmt.Errorf("%w: %w", ErrRepository, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if strings.TrimSpace(diff) == "" {
		logger.Debug("no staged changes")
		return &models.RunResult{Status: models.RunNothingStaged}, nil
	}
	logger.Debug("staged diff read", "bytes", len(diff))

	// Generation
	reporter.Progress(StageGenerating)
	suggestion, err := r.Generator.Generate(ctx, diff, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	suggestion = strings.TrimSpace(suggestion)
	if suggestion == "" {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, llm.ErrEmptyResponse)
	}
	reporter.Progress(StageGenerated)

	// Decision
	outcome, err := Decide(ctx, r.Prompter, suggestion)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrompt, err)
	}
	result := &models.RunResult{
		Suggestion: suggestion,
		Decision:   outcome.Decision,
		Edited:     outcome.Edited,
	}
	if !outcome.Accepted() {
		logger.Debug("commit cancelled", "decision", outcome.Decision.String())
		result.Status = models.RunCancelled
		return result, nil
	}
	if outcome.Edited {
		if w := EditWarning(outcome.Message); w != "" {
			reporter.Warn(w)
		}
	}

	// Commit
	reporter.Progress(StageCommitting)
	commit, err := Commit(ctx, r.Repo, outcome.Message)
	if err != nil {
		return nil, err
	}
	logger.Info("committed", "hash", commit.ShortHash(), "edited", outcome.Edited)

	result.Status = models.RunCommitted
	result.Commit = commit
	return result, nil
}

type nopReporter struct{}

func (nopReporter) Configured(config.EffectiveConfig) {}
func (nopReporter) Progress(Stage)                    {}
func (nopReporter) Warn(string)                       {}
