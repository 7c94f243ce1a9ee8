package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/core"
	"github.com/kilupskalvis/commity/internal/models"
)

func init() {
	color.NoColor = true
}

func TestPrintOutcome(t *testing.T) {
	tests := []struct {
		name string
		res  *models.RunResult
		want []string
	}{
		{
			name: "committed",
			res: &models.RunResult{
				Status: models.RunCommitted,
				Commit: &models.CommitResult{Hash: "0123456789abcdef0123456789abcdef01234567", Message: "Fix login bug"},
			},
			want: []string{"✅ Committed successfully!", "📝 Commit hash: 01234567"},
		},
		{
			name: "committed after edit",
			res: &models.RunResult{
				Status: models.RunCommitted,
				Edited: true,
				Commit: &models.CommitResult{Hash: "abcdef0123456789", Message: "Refactor auth module"},
			},
			want: []string{"✅ Committed with your custom message!", "📝 Commit hash: abcdef01"},
		},
		{
			name: "nothing staged",
			res:  &models.RunResult{Status: models.RunNothingStaged},
			want: []string{"⚠️  No staged changes found.", `Use "git add <files>" to stage changes first.`},
		},
		{
			name: "cancelled",
			res:  &models.RunResult{Status: models.RunCancelled, Decision: models.DecisionCancel},
			want: []string{"⚠️  Commit cancelled."},
		},
		{
			name: "empty edit",
			res:  &models.RunResult{Status: models.RunCancelled, Decision: models.DecisionEdit},
			want: []string{"⚠️  Commit cancelled - no message provided."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printOutcome(&buf, tt.res)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestPrintFailure_ConfigurationMissing(t *testing.T) {
	var out, errOut bytes.Buffer
	printFailure(&out, &errOut, core.ErrConfigurationMissing)

	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "❌ OpenAI API key not found.")
	assert.Contains(t, out.String(), "OPENAI_API_KEY")
	assert.Contains(t, out.String(), "https://platform.openai.com/api-keys")
}

func TestPrintFailure_Other(t *testing.T) {
	var out, errOut bytes.Buffer
	err := fmt.Errorf("%w: %w", core.ErrGeneration, assert.AnError)
	printFailure(&out, &errOut, err)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "❌ Error: failed to generate commit message")
}

func TestPrintSnapshot(t *testing.T) {
	var buf bytes.Buffer
	printSnapshot(&buf, &models.RepoSnapshot{
		CurrentBranch:  "main",
		StagedFiles:    []string{"auth.go"},
		ModifiedFiles:  []string{"README.md"},
		UntrackedFiles: []string{"notes.txt", "tmp.log"},
		Ahead:          2,
	})

	s := buf.String()
	assert.Contains(t, s, "On branch main")
	assert.Contains(t, s, "ahead of upstream by 2")
	assert.Contains(t, s, "Changes to be committed:")
	assert.Contains(t, s, "auth.go")
	assert.Contains(t, s, "README.md")
	assert.Contains(t, s, "2 untracked file(s)")
	assert.NotContains(t, s, "working tree clean")
}

func TestPrintSnapshot_CleanDetached(t *testing.T) {
	var buf bytes.Buffer
	printSnapshot(&buf, &models.RepoSnapshot{CurrentBranch: "0123abcd", IsDetached: true})

	assert.Contains(t, buf.String(), "HEAD detached at 0123abcd")
	assert.Contains(t, buf.String(), "Nothing to commit, working tree clean")
}

func TestPrintSettings(t *testing.T) {
	var buf bytes.Buffer
	eff := config.EffectiveConfig{
		Credential:       "sk-abcdefghijklmnop",
		Model:            "gpt-4o-mini",
		EmojisEnabled:    true,
		CredentialSource: config.SourceEnv,
		ModelSource:      config.SourceDefault,
		EmojisSource:     config.SourceHostSettings,
	}
	printSettings(&buf, eff, config.Default(), "/home/me/.config/Code/User/settings.json")

	s := buf.String()
	assert.Contains(t, s, eff.MaskedCredential())
	assert.NotContains(t, s, eff.Credential)
	assert.Contains(t, s, "(environment variables)")
	assert.Contains(t, s, "(VS Code extension settings)")
	assert.Contains(t, s, "(OpenAI default)")
	assert.Contains(t, s, "settings.json")
}

func TestPrintSettings_NoCredential(t *testing.T) {
	var buf bytes.Buffer
	printSettings(&buf, config.NewResolver().Resolve(), config.Default(), "")

	assert.Contains(t, buf.String(), "not configured")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("debug", "json", &buf)
	logger.Debug("settings resolved", "model", "gpt-4o-mini")
	assert.Contains(t, buf.String(), `"msg":"settings resolved"`)

	buf.Reset()
	logger = newLogger("bogus", "text", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "01234567", shortID("0123456789"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestCompletion_Shells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			completionCmd.SetOut(&buf)
			t.Cleanup(func() { completionCmd.SetOut(nil) })

			assert.NoError(t, runCompletion(completionCmd, []string{shell}))
			assert.Contains(t, buf.String(), "commity")
		})
	}
}

func TestCompletion_RejectsUnknownShell(t *testing.T) {
	assert.Error(t, completionCmd.Args(completionCmd, []string{"tcsh"}))
	assert.Error(t, runCompletion(completionCmd, []string{"tcsh"}))
}
