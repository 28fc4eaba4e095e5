package title

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTitle is used when nothing in the story suggests a title
const DefaultTitle = "A Magical Bedtime Story"

const (
	openingPhrase   = "once upon a time"
	openingWindow   = 50 // runes after the opening phrase to search
	openingMaxWords = 5
	fallbackScan    = 20 // words searched for a capitalized name
)

// Generate proposes a title for a story that arrived without one. It looks
// for notable words just after "once upon a time", then for an early
// capitalized name, and falls back to DefaultTitle.
func Generate(story string) string {
	if t, ok := fromOpening(story); ok {
		return t
	}

	words := strings.Fields(story)
	if len(words) > 5 {
		n := len(words)
		if n > fallbackScan {
			n = fallbackScan
		}
		for _, w := range words[:n] {
			if startsUpper(w) && utf8.RuneCountInString(w) > 3 {
				return "The " + w + "'s Adventure"
			}
		}
	}

	return DefaultTitle
}

func fromOpening(story string) (string, bool) {
	idx := strings.Index(strings.ToLower(story), openingPhrase)
	if idx < 0 || idx+len(openingPhrase) > len(story) {
		return "", false
	}

	rest := []rune(story[idx+len(openingPhrase):])
	if len(rest) > openingWindow {
		rest = rest[:openingWindow]
	}

	var picked []string
	for i, w := range strings.Fields(string(rest)) {
		if i >= openingMaxWords {
			break
		}
		if startsUpper(w) || utf8.RuneCountInString(w) > 4 {
			if w = strings.Trim(w, ",.!?;:"); w != "" {
				picked = append(picked, w)
			}
		}
	}
	if len(picked) == 0 {
		return "", false
	}

	return "The " + titleCase(strings.Join(picked, " ")), true
}

func startsUpper(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(r)
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "don't" becomes "Don'T".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
