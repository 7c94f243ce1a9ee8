package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/kilupskalvis/commity/internal/models"
)

// Prompter is the interaction capability a front end provides to the workflow
type Prompter interface {
	// PresentMessage shows the suggested commit message.
	PresentMessage(ctx context.Context, message string) error
	// CollectDecision asks the user to accept, edit or cancel.
	CollectDecision(ctx context.Context) (models.Decision, error)
	// CollectEdit asks for a replacement message pre-filled with suggested.
	// An empty result means the user aborted the edit.
	CollectEdit(ctx context.Context, suggested string) (string, error)
}

// Outcome is the terminal state of the decision workflow
type Outcome struct {
	Decision models.Decision
	Message  string // Final message; empty when cancelled
	Edited   bool
}

// Accepted returns true if the outcome carries a message to commit
func (o Outcome) Accepted() bool {
	return o.Message != ""
}

// Decide presents candidate and drives the accept/edit/cancel choice.
// It is a single pass: an edited message is not confirmed again, and an
// empty edit ends in cancellation.
func Decide(ctx context.Context, p Prompter, candidate string) (Outcome, error) {
	if err := p.PresentMessage(ctx, candidate); err != nil {
		return Outcome{}, fmt.Errorf("failed to present message: %w", err)
	}

	decision, err := p.CollectDecision(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read decision: %w", err)
	}

	switch decision {
	case models.DecisionAccept:
		return Outcome{Decision: models.DecisionAccept, Message: candidate}, nil

	case models.DecisionEdit:
		edited, err := p.CollectEdit(ctx, candidate)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to read edited message: %w", err)
		}
		edited = strings.TrimSpace(edited)
		if ValidateEdit(edited) != nil {
			return Outcome{Decision: models.DecisionEdit}, nil
		}
		return Outcome{Decision: models.DecisionEdit, Message: edited, Edited: true}, nil

	default:
		return Outcome{Decision: models.DecisionCancel}, nil
	}
}
