// Package segment holds the sentence and word splitting shared by the repair
// and scoring stages. Splitting is intentionally naive: a sentence ends at
// '.', '!' or '?' followed by a single space. Abbreviations, quoted dialogue
// and decimals are mis-split, and the scoring thresholds were tuned against
// exactly this behavior.
package segment

import (
	"regexp"
	"strings"
)

var boundary = regexp.MustCompile(`[.!?] `)

// Split splits text on sentence boundaries without trimming or dropping
// empty pieces. The empty string yields a single empty piece.
func Split(text string) []string {
	return boundary.Split(text, -1)
}

// Sentences returns the trimmed, non-empty pieces of Split in order.
func Sentences(text string) []string {
	var sentences []string
	for _, s := range Split(text) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Words splits text on runs of whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// Thirds returns the two boundaries that partition n items into three
// contiguous ranges: [0, first), [first, second), [second, n).
func Thirds(n int) (first, second int) {
	return n / 3, 2 * n / 3
}

// EndsWithTerminal reports whether the trimmed text ends in '.', '!' or '?'.
func EndsWithTerminal(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
