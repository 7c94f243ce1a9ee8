package core

import (
	"context"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/git"
	"github.com/kilupskalvis/commity/internal/llm"
	"github.com/kilupskalvis/commity/internal/models"
)

// scriptedPrompter answers prompts from fixed values and records what it was shown.
type scriptedPrompter struct {
	decision models.Decision
	edit     string

	presented   []string
	editSeeds   []string
	decisionErr error
	editErr     error
}

func (p *scriptedPrompter) PresentMessage(ctx context.Context, message string) error {
	p.presented = append(p.presented, message)
	return nil
}

func (p *scriptedPrompter) CollectDecision(ctx context.Context) (models.Decision, error) {
	if p.decisionErr != nil {
		return 0, p.decisionErr
	}
	return p.decision, nil
}

func (p *scriptedPrompter) CollectEdit(ctx context.Context, suggested string) (string, error) {
	p.editSeeds = append(p.editSeeds, suggested)
	if p.editErr != nil {
		return "", p.editErr
	}
	return p.edit, nil
}

// recordingReporter captures progress notifications.
type recordingReporter struct {
	configured []config.EffectiveConfig
	stages     []Stage
	warnings   []string
}

func (r *recordingReporter) Configured(cfg config.EffectiveConfig) {
	r.configured = append(r.configured, cfg)
}

func (r *recordingReporter) Progress(stage Stage) {
	r.stages = append(r.stages, stage)
}

func (r *recordingReporter) Warn(message string) {
	r.warnings = append(r.warnings, message)
}

// testSettings resolves a fixed configuration.
func testSettings(key string) SettingsResolver {
	return config.NewResolver(&config.StaticSource{
		Label:    "test",
		Settings: config.Settings{APIKey: config.String(key)},
	})
}

type testRunner struct {
	runner   *Runner
	repo     *git.MockRepository
	gen      *llm.MockGenerator
	prompter *scriptedPrompter
	reporter *recordingReporter
}

// newTestRunner wires a Runner to mocks serving diff and suggestion.
func newTestRunner(diff, suggestion string, decision models.Decision) *testRunner {
	tr := &testRunner{
		repo:     git.NewMockRepository(diff),
		gen:      llm.NewMockGenerator(suggestion),
		prompter: &scriptedPrompter{decision: decision},
		reporter: &recordingReporter{},
	}
	tr.runner = &Runner{
		Settings:  testSettings("sk-test"),
		Repo:      tr.repo,
		Generator: tr.gen,
		Prompter:  tr.prompter,
		Reporter:  tr.reporter,
	}
	return tr
}
