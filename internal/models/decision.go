package models

import "fmt"

// Decision is the user's answer to a suggested commit message
type Decision int

const (
	DecisionAccept Decision = iota
	DecisionEdit
	DecisionCancel
)

// Display labels for each decision, in prompt order
const (
	LabelAccept = "Yes, use this message"
	LabelEdit   = "Edit the message"
	LabelCancel = "Cancel commit"
)

// Label returns the fixed display label of the decision
func (d Decision) Label() string {
	switch d {
	case DecisionAccept:
		return LabelAccept
	case DecisionEdit:
		return LabelEdit
	default:
		return LabelCancel
	}
}

func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionEdit:
		return "edit"
	case DecisionCancel:
		return "cancel"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// DecisionLabels returns the labels of all decisions in prompt order
func DecisionLabels() []string {
	return []string{LabelAccept, LabelEdit, LabelCancel}
}

// ParseDecisionLabel maps a display label back to its decision.
// Unknown labels map to DecisionCancel with ok=false.
func ParseDecisionLabel(label string) (Decision, bool) {
	switch label {
	case LabelAccept:
		return DecisionAccept, true
	case LabelEdit:
		return DecisionEdit, true
	case LabelCancel:
		return DecisionCancel, true
	default:
		return DecisionCancel, false
	}
}
