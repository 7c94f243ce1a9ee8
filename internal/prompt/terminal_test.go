package prompt

import (
	"bytes"
	"context"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/core"
	"github.com/kilupskalvis/commity/internal/models"
)

func init() {
	color.NoColor = true
}

// answer returns an AskFunc that writes value into the response and records the prompt
func answer(value string, err error, seen *[]survey.Prompt) AskFunc {
	return func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		*seen = append(*seen, p)
		if err != nil {
			return err
		}
		*(response.(*string)) = value
		return nil
	}
}

func TestCollectDecision(t *testing.T) {
	tests := []struct {
		label string
		want  models.Decision
	}{
		{models.LabelAccept, models.DecisionAccept},
		{models.LabelEdit, models.DecisionEdit},
		{models.LabelCancel, models.DecisionCancel},
		{"something else", models.DecisionCancel},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			var seen []survey.Prompt
			term := newTerminal(&bytes.Buffer{}, answer(tt.label, nil, &seen))

			got, err := term.CollectDecision(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, seen, 1)
			sel, ok := seen[0].(*survey.Select)
			require.True(t, ok)
			assert.Equal(t, DecisionPrompt, sel.Message)
			assert.Equal(t, models.DecisionLabels(), sel.Options)
			assert.Equal(t, models.LabelAccept, sel.Default)
		})
	}
}

func TestCollectDecision_InterruptCancels(t *testing.T) {
	var seen []survey.Prompt
	term := newTerminal(&bytes.Buffer{}, answer("", terminal.InterruptErr, &seen))

	got, err := term.CollectDecision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DecisionCancel, got)
}

func TestCollectDecision_PromptError(t *testing.T) {
	var seen []survey.Prompt
	term := newTerminal(&bytes.Buffer{}, answer("", assert.AnError, &seen))

	_, err := term.CollectDecision(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCollectEdit_PrefilledWithSuggestion(t *testing.T) {
	var seen []survey.Prompt
	var out bytes.Buffer
	term := newTerminal(&out, answer("Refactor auth module", nil, &seen))

	got, err := term.CollectEdit(context.Background(), "Fix login bug")
	require.NoError(t, err)
	assert.Equal(t, "Refactor auth module", got)

	require.Len(t, seen, 1)
	in, ok := seen[0].(*survey.Input)
	require.True(t, ok)
	assert.Equal(t, EditPrompt, in.Message)
	assert.Equal(t, "Fix login bug", in.Default)
	assert.Contains(t, out.String(), "Enter your commit message")
}

func TestCollectEdit_InterruptAborts(t *testing.T) {
	var seen []survey.Prompt
	term := newTerminal(&bytes.Buffer{}, answer("", terminal.InterruptErr, &seen))

	got, err := term.CollectEdit(context.Background(), "Fix login bug")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectEdit_CancelledContext(t *testing.T) {
	var seen []survey.Prompt
	term := newTerminal(&bytes.Buffer{}, answer("x", nil, &seen))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := term.CollectEdit(ctx, "Fix login bug")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, seen)
}

func TestValidateEdit(t *testing.T) {
	assert.ErrorIs(t, validateEdit(""), core.ErrEmptyMessage)
	assert.ErrorIs(t, validateEdit("   "), core.ErrEmptyMessage)
	assert.NoError(t, validateEdit("Add tests"))
	assert.Error(t, validateEdit(42))
}

func TestOutput(t *testing.T) {
	var out bytes.Buffer
	term := newTerminal(&out, nil)

	term.Configured(config.EffectiveConfig{CredentialSource: config.SourceHostSettings})
	term.Progress(core.StageReading)
	term.Progress(core.StageGenerating)
	require.NoError(t, term.PresentMessage(context.Background(), "Fix login bug"))
	term.Warn("too long")

	s := out.String()
	assert.Contains(t, s, "📋 Using VS Code extension settings")
	assert.Contains(t, s, "📖 Reading staged changes...")
	assert.Contains(t, s, "🧠 Generating commit message with AI...")
	assert.Contains(t, s, "💬 Suggested commit message:")
	assert.Contains(t, s, `"Fix login bug"`)
	assert.Contains(t, s, "⚠️  too long")
}

func TestPresentMessage_PrintsVerbatim(t *testing.T) {
	var out bytes.Buffer
	term := newTerminal(&out, nil)

	require.NoError(t, term.PresentMessage(context.Background(), `Quote "name" in C:\tmp`))
	assert.Contains(t, out.String(), `"Quote "name" in C:\tmp"`)
	assert.NotContains(t, out.String(), `\"`)
}

func TestSourceDescription(t *testing.T) {
	assert.Equal(t, "environment variables", SourceDescription(config.SourceEnv))
	assert.Equal(t, "system keyring", SourceDescription(config.SourceKeyring))
	assert.Equal(t, "editor settings", SourceDescription("editor"))
}
