// Package prompt provides the interactive terminal front end of the commit workflow.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/core"
	"github.com/kilupskalvis/commity/internal/models"
)

const (
	DecisionPrompt = "What would you like to do?"
	EditPrompt     = "Commit message:"
)

// AskFunc has the signature of survey.AskOne
type AskFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

var _ core.Prompter = (*Terminal)(nil)
var _ core.Reporter = (*Terminal)(nil)

// Terminal asks the user through survey prompts and prints progress with color
type Terminal struct {
	out  io.Writer
	ask  AskFunc
	opts []survey.AskOpt

	gray   *color.Color
	green  *color.Color
	white  *color.Color
	blue   *color.Color
	yellow *color.Color
}

// NewTerminal creates a terminal front end on stdin/stdout
func NewTerminal() *Terminal {
	return newTerminal(os.Stdout, survey.AskOne, survey.WithStdio(os.Stdin, os.Stdout, os.Stderr))
}

func newTerminal(out io.Writer, ask AskFunc, opts ...survey.AskOpt) *Terminal {
	return &Terminal{
		out:    out,
		ask:    ask,
		opts:   opts,
		gray:   color.New(color.FgHiBlack),
		green:  color.New(color.FgGreen),
		white:  color.New(color.FgWhite),
		blue:   color.New(color.FgBlue),
		yellow: color.New(color.FgYellow),
	}
}

// Configured prints where the credential came from
func (t *Terminal) Configured(cfg config.EffectiveConfig) {
	t.gray.Fprintf(t.out, "📋 Using %s\n\n", SourceDescription(cfg.CredentialSource))
}

// Progress prints a stage line
func (t *Terminal) Progress(stage core.Stage) {
	switch stage {
	case core.StageReading:
		t.gray.Fprintf(t.out, "📖 %s\n", stage)
	case core.StageGenerating:
		t.gray.Fprintf(t.out, "🧠 %s\n", stage)
	case core.StageCommitting:
		t.gray.Fprintf(t.out, "📦 %s\n", stage)
	}
}

// Warn prints a non-blocking warning
func (t *Terminal) Warn(message string) {
	t.yellow.Fprintf(t.out, "⚠️  %s\n", message)
}

// PresentMessage prints the suggested commit message
func (t *Terminal) PresentMessage(ctx context.Context, message string) error {
	t.green.Fprintln(t.out, "\n💬 Suggested commit message:")
	t.white.Fprintf(t.out, "\"%s\"\n\n", message)
	return nil
}

// CollectDecision shows the accept/edit/cancel menu. Ctrl-C cancels.
func (t *Terminal) CollectDecision(ctx context.Context) (models.Decision, error) {
	if err := ctx.Err(); err != nil {
		return models.DecisionCancel, err
	}

	var choice string
	q := &survey.Select{
		Message: DecisionPrompt,
		Options: models.DecisionLabels(),
		Default: models.LabelAccept,
	}
	if err := t.ask(q, &choice, t.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return models.DecisionCancel, nil
		}
		return models.DecisionCancel, fmt.Errorf("decision prompt failed: %w", err)
	}

	decision, _ := models.ParseDecisionLabel(choice)
	return decision, nil
}

// CollectEdit asks for a replacement message pre-filled with suggested.
// Empty input is rejected by the prompt itself; Ctrl-C returns an empty message.
func (t *Terminal) CollectEdit(ctx context.Context, suggested string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t.blue.Fprintln(t.out, "\n✏️  Enter your commit message:")

	var message string
	q := &survey.Input{
		Message: EditPrompt,
		Default: suggested,
	}
	opts := append([]survey.AskOpt{survey.WithValidator(validateEdit)}, t.opts...)
	if err := t.ask(q, &message, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", nil
		}
		return "", fmt.Errorf("edit prompt failed: %w", err)
	}
	return message, nil
}

// validateEdit adapts core.ValidateEdit to a survey validator
func validateEdit(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("unexpected answer type %T", ans)
	}
	return core.ValidateEdit(s)
}

// SourceDescription returns the human-readable name of a settings source
func SourceDescription(source string) string {
	switch source {
	case config.SourceEnv:
		return "environment variables"
	case config.SourceHostSettings:
		return "VS Code extension settings"
	case config.SourceKeyring:
		return "system keyring"
	case "":
		return "default settings"
	default:
		return source + " settings"
	}
}
