package repair

import (
	"strings"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/segment"
)

// FixEnding cuts a story that trails off mid-sentence back to its last
// complete sentence. Text already ending in terminal punctuation, or with
// no terminal punctuation anywhere, is returned as is.
func FixEnding(text string) string {
	if text == "" || segment.EndsWithTerminal(text) {
		return text
	}

	last := strings.LastIndexAny(text, ".!?")
	if last < 0 {
		return text
	}
	return text[:last+1]
}

// EnsurePrefix prepends prefix unless text already starts with it byte for byte
func EnsurePrefix(text, prefix string) string {
	if strings.HasPrefix(text, prefix) {
		return text
	}
	return prefix + text
}
