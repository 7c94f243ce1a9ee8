package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxSuggestedLength is the soft limit for edited commit messages
const MaxSuggestedLength = 200

// ValidateEdit rejects messages that are empty after trimming
func ValidateEdit(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// EditWarning returns a non-blocking warning for overly long messages, or empty
func EditWarning(message string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(message))
	if n > MaxSuggestedLength {
		return fmt.Sprintf("Commit message should be under %d characters (currently %d)", MaxSuggestedLength, n)
	}
	return ""
}
