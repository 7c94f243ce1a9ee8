package core

import "errors"

// Error kinds of a workflow run. Every error returned by Runner.Run wraps exactly one.
var (
	ErrConfigurationMissing = errors.New("OpenAI API key not found")
	ErrRepository           = errors.New("not in a git repository")
	ErrRead                 = errors.New("failed to read staged changes")
	ErrGeneration           = errors.New("failed to generate commit message")
	ErrEmptyMessage         = errors.New("commit message cannot be empty")
	ErrNothingToCommit      = errors.New("no staged changes to commit")
	ErrCommit               = errors.New("failed to commit changes")
	ErrPrompt               = errors.New("failed to interact with the user")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrConfigurationMissing, "configuration_missing"},
	{ErrRepository, "repository"},
	{ErrRead, "read"},
	{ErrGeneration, "generation"},
	{ErrEmptyMessage, "empty_message"},
	{ErrNothingToCommit, "nothing_to_commit"},
	{ErrCommit, "commit"},
	{ErrPrompt, "prompt"},
}

// Kind returns the snake_case kind name of err, or "unknown"
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}
