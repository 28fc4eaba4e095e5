// Package repair fixes the artifacts language models leave in generated
// stories: mis-decoded punctuation, truncated endings, missing openings,
// stray whitespace and pronoun drift.
package repair

import (
	"regexp"
	"strings"
)

// encodingFixes is applied in order; each entry rewrites the whole string
// before the next one runs, so the bare "â€" entry must stay after the
// longer sequences that start with it.
var encodingFixes = [...]struct{ from, to string }{
	{"â€™", "'"},
	{"â€œ", "\""},
	{"â€", "\""},
	{"&quot;", "\""},
	{"&nbsp;", " "},
	{`\n`, " "},
}

// EncodingMarkers are the mojibake sequences whose presence marks a story
// as carrying encoding damage.
var EncodingMarkers = [...]string{"â€™", "â€œ", "â€"}

// Normalize replaces mis-decoded punctuation, quote entities and literal
// escaped newlines with their intended characters.
func Normalize(text string) string {
	for _, fix := range encodingFixes {
		text = strings.ReplaceAll(text, fix.from, fix.to)
	}
	return text
}

// HasEncodingIssues reports whether text still contains a mojibake marker
func HasEncodingIssues(text string) bool {
	for _, marker := range EncodingMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

var (
	spaceRun         = regexp.MustCompile(` +`)
	periodRun        = regexp.MustCompile(`\.{2,}`)
	spaceBeforePunct = regexp.MustCompile(` ([,.!?])`)
	commaAfterPunct  = regexp.MustCompile(`([.!?]),`)
)

// Clean tidies whitespace and punctuation: runs of spaces collapse to one,
// runs of periods become an ellipsis, spaces before , . ! ? are dropped and
// a comma glued to terminal punctuation becomes a space. The result is
// trimmed.
func Clean(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")
	text = periodRun.ReplaceAllString(text, "...")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = commaAfterPunct.ReplaceAllString(text, "$1 ")
	return strings.TrimSpace(text)
}
