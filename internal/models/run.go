package models

// RunStatus is the terminal state of one workflow run
type RunStatus string

const (
	RunCommitted     RunStatus = "committed"
	RunNothingStaged RunStatus = "nothing_staged"
	RunCancelled     RunStatus = "cancelled"
)

// RunResult is the outcome of a workflow run that did not fail
type RunResult struct {
	Status     RunStatus     `json:"status"`
	Suggestion string        `json:"suggestion,omitempty"` // Message proposed by the generator
	Decision   Decision      `json:"-"`
	Edited     bool          `json:"edited"` // True if the committed message came from an edit
	Commit     *CommitResult `json:"commit,omitempty"`
}

// Message returns the committed message, or empty if nothing was committed
func (r *RunResult) Message() string {
	if r.Commit == nil {
		return ""
	}
	return r.Commit.Message
}
