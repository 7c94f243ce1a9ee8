package llm

import (
	"strings"
	"unicode/utf8"
)

const truncationMarker = "\n\n[diff truncated]"

const basePrompt = `You write git commit messages from a unified diff of staged changes.
Reply with exactly one line: the commit message, nothing else.
Use the imperative mood ("Add", "Fix", "Refactor"), start with a capital letter,
keep it under 72 characters and describe the intent of the change, not the files.
Do not use quotes, markdown or code blocks.`

const emojiPrompt = `
Start the line with one fitting gitmoji followed by a space, for example
"✨ Add export command", "🐛 Fix login redirect", "♻️ Refactor auth module",
"📝 Update README", "✅ Add parser tests".`

const plainPrompt = `
Do not use emojis.`

// SystemPrompt returns the instructions sent with every diff
func SystemPrompt(emojis bool) string {
	if emojis {
		return basePrompt + emojiPrompt
	}
	return basePrompt + plainPrompt
}

// TruncateDiff cuts diff to at most max bytes on a rune boundary and appends
// a marker. A non-positive max disables truncation.
func TruncateDiff(diff string, max int) string {
	if max <= 0 || len(diff) <= max {
		return diff
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(diff[cut]) {
		cut--
	}
	return diff[:cut] + truncationMarker
}

// CleanMessage reduces a model reply to a single commit message line:
// the first non-empty line, without code fences or surrounding quotes.
func CleanMessage(reply string) string {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.Trim(line, "`")
		line = trimQuotes(line)
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

func trimQuotes(s string) string {
	pairs := [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}}
	for _, p := range pairs {
		if len(s) >= len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			return s[len(p[0]) : len(s)-len(p[1])]
		}
	}
	return s
}
