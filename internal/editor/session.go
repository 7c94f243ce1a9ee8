package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/core"
	"github.com/kilupskalvis/commity/internal/models"
)

const (
	editPrompt      = "Edit the commit message:"
	editPlaceholder = "Enter your commit message"
)

// ErrProtocol is returned when the host sends an unexpected message
var ErrProtocol = errors.New("editor protocol error")

var _ core.Prompter = (*Session)(nil)
var _ core.Reporter = (*Session)(nil)

// Session is one workflow run driven by an editor host
type Session struct {
	dec    *json.Decoder
	enc    *json.Encoder
	logger *slog.Logger

	mu      sync.Mutex
	pending string // Message awaiting a decision
}

// NewSession creates a session reading host messages from r and writing events to w
func NewSession(r io.Reader, w io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		dec:    json.NewDecoder(r),
		enc:    json.NewEncoder(w),
		logger: logger,
	}
}

// ReadInit reads the init message and returns the host settings
func (s *Session) ReadInit(ctx context.Context) (config.Settings, error) {
	msg, err := s.receive(ctx, TypeInit)
	if err != nil {
		return config.Settings{}, err
	}
	return msg.Settings.Settings(), nil
}

// Configured is a no-op; the host already knows its settings
func (s *Session) Configured(cfg config.EffectiveConfig) {
	s.logger.Debug("editor session configured", "model", cfg.Model, "emojis", cfg.EmojisEnabled)
}

// Progress sends a progress event for the stages the host displays
func (s *Session) Progress(stage core.Stage) {
	var inc int
	switch stage {
	case core.StageReading:
		inc = 30
	case core.StageGenerating:
		inc = 40
	case core.StageGenerated:
		inc = 30
	default:
		return
	}
	s.send(ProgressEvent{Type: TypeProgress, Message: stage.String(), Increment: inc})
}

// Warn forwards a warning to the host
func (s *Session) Warn(message string) {
	s.send(WarningEvent{Type: TypeWarning, Message: message})
}

// PresentMessage remembers the suggestion; the host shows it with the decision
func (s *Session) PresentMessage(ctx context.Context, message string) error {
	s.mu.Lock()
	s.pending = message
	s.mu.Unlock()
	return nil
}

// CollectDecision sends the suggestion with the fixed choices and waits for the reply.
// An empty or unknown choice is a cancellation.
func (s *Session) CollectDecision(ctx context.Context) (models.Decision, error) {
	s.mu.Lock()
	message := s.pending
	s.mu.Unlock()

	if err := s.write(DecideEvent{Type: TypeDecide, Message: message, Choices: models.DecisionLabels()}); err != nil {
		return models.DecisionCancel, err
	}

	msg, err := s.receive(ctx, TypeDecision)
	if err != nil {
		return models.DecisionCancel, err
	}

	decision, ok := models.ParseDecisionLabel(msg.Choice)
	if !ok && msg.Choice != "" {
		s.logger.Debug("unknown decision from host", "choice", msg.Choice)
	}
	return decision, nil
}

// CollectEdit asks the host for a replacement message. A missing value means
// the user dismissed the input box.
func (s *Session) CollectEdit(ctx context.Context, suggested string) (string, error) {
	ev := EditEvent{Type: TypeEdit, Value: suggested, Prompt: editPrompt, Placeholder: editPlaceholder}
	if err := s.write(ev); err != nil {
		return "", err
	}

	msg, err := s.receive(ctx, TypeEdited)
	if err != nil {
		return "", err
	}
	if msg.Value == nil {
		return "", nil
	}
	return *msg.Value, nil
}

// Finish sends the terminal event of the session
func (s *Session) Finish(res *models.RunResult, runErr error) error {
	if runErr != nil {
		return s.write(errorEvent(runErr))
	}
	return s.write(resultEvent(res))
}

func resultEvent(res *models.RunResult) ResultEvent {
	ev := ResultEvent{Type: TypeResult, Status: string(res.Status)}
	switch res.Status {
	case models.RunCommitted:
		ev.Message = res.Message()
		ev.Commit = res.Commit.ShortHash()
		if res.Edited {
			ev.Notice = fmt.Sprintf("✅ Committed with custom message: %q", ev.Message)
		} else {
			ev.Notice = fmt.Sprintf("✅ Committed successfully with message: %q", ev.Message)
		}
	case models.RunNothingStaged:
		ev.Notice = "No staged changes found. Please stage some files first."
	default:
		if res.Decision == models.DecisionEdit {
			ev.Notice = "Commit cancelled - no message provided."
		} else {
			ev.Notice = "Commit cancelled."
		}
	}
	return ev
}

func errorEvent(err error) ErrorEvent {
	ev := ErrorEvent{Type: TypeError, Kind: core.Kind(err), Message: err.Error()}
	if errors.Is(err, core.ErrConfigurationMissing) {
		ev.Message = "OpenAI API key not configured. Please set your API key in VS Code settings."
		ev.Actions = []string{ActionOpenSettings, ActionGetAPIKey}
		ev.URL = APIKeysURL
	}
	return ev
}

// receive reads the next host message and checks its type
func (s *Session) receive(ctx context.Context, want string) (*inbound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var msg inbound
	if err := s.dec.Decode(&msg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: host closed the connection while waiting for %q", ErrProtocol, want)
		}
		return nil, fmt.Errorf("%w: invalid message: %w", ErrProtocol, err)
	}
	if msg.Type != want {
		return nil, fmt.Errorf("%w: expected %q message, got %q", ErrProtocol, want, msg.Type)
	}
	return &msg, nil
}

// send writes an event, logging failures; used where the caller cannot return an error
func (s *Session) send(v any) {
	if err := s.write(v); err != nil {
		s.logger.Warn("failed to send event to host", "error", err)
	}
}

func (s *Session) write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}
