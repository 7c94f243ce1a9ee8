// Package editor runs the commit workflow on behalf of an editor extension,
// exchanging JSON lines over stdin and stdout.
package editor

import "github.com/kilupskalvis/commity/internal/config"

// Message types sent by the host
const (
	TypeInit     = "init"
	TypeDecision = "decision"
	TypeEdited   = "edited"
)

// Message types sent to the host
const (
	TypeProgress = "progress"
	TypeDecide   = "decide"
	TypeEdit     = "edit"
	TypeWarning  = "warning"
	TypeResult   = "result"
	TypeError    = "error"
)

// Actions offered to the host when no API key is configured
const (
	ActionOpenSettings = "Open Settings"
	ActionGetAPIKey    = "Get API Key"
)

// APIKeysURL is where users obtain an OpenAI API key
const APIKeysURL = "https://platform.openai.com/api-keys"

// HostSettings is the commity block of the editor configuration
type HostSettings struct {
	OpenAIAPIKey *string `json:"openaiApiKey,omitempty"`
	OpenAIModel  *string `json:"openaiModel,omitempty"`
	EnableEmojis *bool   `json:"enableEmojis,omitempty"`
}

// Settings converts the host block into a resolver Settings value
func (h *HostSettings) Settings() config.Settings {
	if h == nil {
		return config.Settings{}
	}
	return config.Settings{
		APIKey:       h.OpenAIAPIKey,
		Model:        h.OpenAIModel,
		EnableEmojis: h.EnableEmojis,
	}
}

// inbound is any message from the host; only the fields of its type are set.
type inbound struct {
	Type     string        `json:"type"`
	Settings *HostSettings `json:"settings,omitempty"`
	Choice   string        `json:"choice,omitempty"`
	Value    *string       `json:"value,omitempty"`
}

// ProgressEvent reports a workflow step. Increments add up to 100.
type ProgressEvent struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Increment int    `json:"increment"`
}

// DecideEvent asks the host to show the suggestion with the given choices.
type DecideEvent struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Choices []string `json:"choices"`
}

// EditEvent asks the host for a replacement message.
type EditEvent struct {
	Type        string `json:"type"`
	Value       string `json:"value"`
	Prompt      string `json:"prompt"`
	Placeholder string `json:"placeholder"`
}

// WarningEvent carries a non-blocking warning.
type WarningEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ResultEvent ends a successful session.
type ResultEvent struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Notice  string `json:"notice"`
}

// ErrorEvent ends a failed session.
type ErrorEvent struct {
	Type    string   `json:"type"`
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Actions []string `json:"actions,omitempty"`
	URL     string   `json:"url,omitempty"`
}
