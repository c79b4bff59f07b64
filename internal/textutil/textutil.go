// Package textutil cleans and splits free-form user text into list items.
package textutil

import (
	"strings"
	"unicode"

	"github.com/Rrens/shoplist/internal/messages"
)

// Leading decoration stripped from pasted lines: status markers from our own
// renders, bullets, and the variation selector that rides along with some of
// them.
const leadingMarkers = "☑✅⬜🛒•🗑️"

// CleanLine normalizes a single line from a user message into an item text.
// Returns "" when the line should be ignored: the archived-list separator, a
// removal header, or a line that is empty once markers are stripped.
func CleanLine(line string) string {
	if strings.TrimSpace(line) == messages.ArchivedListHeader {
		return ""
	}

	cleaned := strings.TrimSpace(strings.TrimLeft(line, leadingMarkers))
	if strings.HasPrefix(cleaned, "Removed via voice request") {
		return ""
	}
	return cleaned
}

// SplitItems is the local fallback parser: it splits text on commas,
// newlines and the word "and", then cleans each fragment.
func SplitItems(text string) []string {
	var items []string
	for _, seg := range strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' }) {
		for _, part := range strings.Split(seg, " and ") {
			if cleaned := CleanLine(part); cleaned != "" {
				items = append(items, cleaned)
			}
		}
	}
	return items
}

// SplitLines cleans each line of a message, keeping line boundaries as item
// boundaries. This is the non-AI add path.
func SplitLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if cleaned := CleanLine(line); cleaned != "" {
			items = append(items, cleaned)
		}
	}
	return items
}

// Capitalize upper-cases the first letter of text, leaving the rest alone.
// Non-letter leading runes (digits, emoji) pass through unchanged.
func Capitalize(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// NormalizeForMatch lowers an item string and strips leading quantity digits
// and whitespace, so lookups tolerate phrasing variations.
func NormalizeForMatch(text string) string {
	trimmed := strings.TrimLeftFunc(text, func(r rune) bool {
		return unicode.IsDigit(r) || unicode.IsSpace(r)
	})
	return strings.ToLower(strings.TrimSpace(trimmed))
}
