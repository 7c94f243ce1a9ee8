package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/core"
	"github.com/kilupskalvis/commity/internal/git"
	"github.com/kilupskalvis/commity/internal/llm"
	"github.com/kilupskalvis/commity/internal/models"
)

const sampleDiff = "diff --git a/auth.go b/auth.go\n+func Login() {}\n"

// runSession plays host lines against a session backed by mocks and returns
// the decoded events it wrote.
func runSession(t *testing.T, repo *git.MockRepository, gen *llm.MockGenerator, host ...string) ([]map[string]any, *models.RunResult, error) {
	t.Helper()

	var out bytes.Buffer
	sess := NewSession(strings.NewReader(strings.Join(host, "\n")+"\n"), &out, nil)

	settings, err := sess.ReadInit(context.Background())
	require.NoError(t, err)

	runner := &core.Runner{
		Settings:  config.NewResolver(&config.StaticSource{Label: config.SourceHostSettings, Settings: settings}),
		Repo:      repo,
		Generator: gen,
		Prompter:  sess,
		Reporter:  sess,
	}
	res, runErr := runner.Run(context.Background())
	require.NoError(t, sess.Finish(res, runErr))

	var events []map[string]any
	dec := json.NewDecoder(&out)
	for dec.More() {
		var ev map[string]any
		require.NoError(t, dec.Decode(&ev))
		events = append(events, ev)
	}
	return events, res, runErr
}

func types(events []map[string]any) []string {
	var out []string
	for _, ev := range events {
		out = append(out, ev["type"].(string))
	}
	return out
}

const initLine = `{"type":"init","settings":{"openaiApiKey":"sk-host","openaiModel":"gpt-4.1","enableEmojis":false}}`

func TestSession_Accept(t *testing.T) {
	repo := git.NewMockRepository(sampleDiff)
	gen := llm.NewMockGenerator("Fix login bug")

	events, res, err := runSession(t, repo, gen, initLine, `{"type":"decision","choice":"Yes, use this message"}`)
	require.NoError(t, err)

	assert.Equal(t, models.RunCommitted, res.Status)
	assert.Equal(t, []string{"Fix login bug"}, repo.Commits)
	assert.Equal(t, []string{"progress", "progress", "progress", "decide", "result"}, types(events))

	var total float64
	for _, ev := range events[:3] {
		total += ev["increment"].(float64)
	}
	assert.Equal(t, float64(100), total)

	decide := events[3]
	assert.Equal(t, "Fix login bug", decide["message"])
	assert.Len(t, decide["choices"], 3)

	result := events[4]
	assert.Equal(t, "committed", result["status"])
	assert.Equal(t, res.Commit.ShortHash(), result["commit"])

	require.Len(t, gen.Calls, 1)
	assert.Equal(t, "sk-host", gen.Calls[0].Config.Credential)
	assert.Equal(t, "gpt-4.1", gen.Calls[0].Config.Model)
	assert.False(t, gen.Calls[0].Config.EmojisEnabled)
}

func TestSession_Edit(t *testing.T) {
	repo := git.NewMockRepository(sampleDiff)
	gen := llm.NewMockGenerator("Fix login bug")

	events, res, err := runSession(t, repo, gen, initLine,
		`{"type":"decision","choice":"Edit the message"}`,
		`{"type":"edited","value":"Refactor auth module"}`)
	require.NoError(t, err)

	assert.Equal(t, models.RunCommitted, res.Status)
	assert.Equal(t, []string{"Refactor auth module"}, repo.Commits)
	assert.Contains(t, types(events), "edit")

	for _, ev := range events {
		if ev["type"] == "edit" {
			assert.Equal(t, "Fix login bug", ev["value"])
		}
	}
}

func TestSession_DismissedEditCancels(t *testing.T) {
	repo := git.NewMockRepository(sampleDiff)
	gen := llm.NewMockGenerator("Fix login bug")

	events, res, err := runSession(t, repo, gen, initLine,
		`{"type":"decision","choice":"Edit the message"}`,
		`{"type":"edited","value":null}`)
	require.NoError(t, err)

	assert.Equal(t, models.RunCancelled, res.Status)
	assert.Empty(t, repo.Commits)
	last := events[len(events)-1]
	assert.Equal(t, "cancelled", last["status"])
	assert.Equal(t, "Commit cancelled - no message provided.", last["notice"])
}

func TestSession_UnknownChoiceCancels(t *testing.T) {
	for _, choice := range []string{`"Use This Message"`, `""`} {
		repo := git.NewMockRepository(sampleDiff)
		gen := llm.NewMockGenerator("Fix login bug")

		_, res, err := runSession(t, repo, gen, initLine, `{"type":"decision","choice":`+choice+`}`)
		require.NoError(t, err)

		assert.Equal(t, models.RunCancelled, res.Status, "choice %s", choice)
		assert.Empty(t, repo.Commits)
	}
}

func TestSession_NothingStaged(t *testing.T) {
	repo := git.NewMockRepository("")
	gen := llm.NewMockGenerator("Fix login bug")

	events, res, err := runSession(t, repo, gen, initLine)
	require.NoError(t, err)

	assert.Equal(t, models.RunNothingStaged, res.Status)
	assert.Empty(t, gen.Calls)
	last := events[len(events)-1]
	assert.Equal(t, "result", last["type"])
	assert.Equal(t, "nothing_staged", last["status"])
}

func TestSession_MissingKeyOffersActions(t *testing.T) {
	repo := git.NewMockRepository(sampleDiff)
	gen := llm.NewMockGenerator("Fix login bug")

	events, _, err := runSession(t, repo, gen, `{"type":"init","settings":{"openaiApiKey":""}}`)
	assert.ErrorIs(t, err, core.ErrConfigurationMissing)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "error", ev["type"])
	assert.Equal(t, "configuration_missing", ev["kind"])
	assert.Equal(t, []any{ActionOpenSettings, ActionGetAPIKey}, ev["actions"])
	assert.Equal(t, APIKeysURL, ev["url"])
}

func TestSession_GenerationError(t *testing.T) {
	repo := git.NewMockRepository(sampleDiff)
	gen := llm.NewMockGenerator("")
	gen.Err = assert.AnError

	events, _, err := runSession(t, repo, gen, initLine)
	assert.ErrorIs(t, err, core.ErrGeneration)

	last := events[len(events)-1]
	assert.Equal(t, "error", last["type"])
	assert.Equal(t, "generation", last["kind"])
	assert.Nil(t, last["actions"])
}

func TestSession_HostGoneDuringDecisionReportsPromptKind(t *testing.T) {
	repo := git.NewMockRepository(sampleDiff)
	gen := llm.NewMockGenerator("Fix login bug")

	events, _, err := runSession(t, repo, gen, initLine)
	assert.ErrorIs(t, err, core.ErrPrompt)
	assert.ErrorIs(t, err, ErrProtocol)

	last := events[len(events)-1]
	assert.Equal(t, "error", last["type"])
	assert.Equal(t, "prompt", last["kind"])
	assert.Empty(t, repo.Commits)
}

func TestSession_ReadInitRejectsOtherMessages(t *testing.T) {
	sess := NewSession(strings.NewReader(`{"type":"decision","choice":"x"}`+"\n"), &bytes.Buffer{}, nil)

	_, err := sess.ReadInit(context.Background())
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestSession_HostClosedWhileWaiting(t *testing.T) {
	sess := NewSession(strings.NewReader(""), &bytes.Buffer{}, nil)

	_, err := sess.CollectDecision(context.Background())
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestSession_Warn(t *testing.T) {
	var out bytes.Buffer
	sess := NewSession(strings.NewReader(""), &out, nil)

	sess.Warn("too long")

	var ev WarningEvent
	require.NoError(t, json.Unmarshal(out.Bytes(), &ev))
	assert.Equal(t, TypeWarning, ev.Type)
	assert.Equal(t, "too long", ev.Message)
}
