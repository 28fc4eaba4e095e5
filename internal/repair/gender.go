package repair

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/extract"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/segment"
)

// DominanceRatio is how many times more often one term of a pair must occur
// before the other is treated as a slip. Inherited value, not yet calibrated.
const DominanceRatio = 3

// minSentencesForGender is the shortest story (in raw split pieces) whose
// pronouns we are willing to rewrite.
const minSentencesForGender = 5

type genderPair struct {
	male, female string
}

// genderPairs is evaluated in declaration order. "her" pairs with both
// "him" and "his", so reordering changes results.
var genderPairs = [...]genderPair{
	{"he", "she"},
	{"him", "her"},
	{"his", "her"},
	{"boy", "girl"},
	{"man", "woman"},
	{"son", "daughter"},
	{"brother", "sister"},
	{"prince", "princess"},
	{"king", "queen"},
	{"father", "mother"},
}

var termPatterns = compileTermPatterns()

// compileTermPatterns matches each term case-insensitively. Word boundaries
// are checked by replaceWord, since RE2's \b only knows ASCII letters.
func compileTermPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, p := range genderPairs {
		for _, term := range []string{p.male, p.female} {
			if _, ok := patterns[term]; !ok {
				patterns[term] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
			}
		}
	}
	return patterns
}

// replaceWord replaces whole-word occurrences of term with repl. A match
// touching a letter, digit or underscore on either side is part of a
// longer word ("Zoéshe", "shed") and is left alone.
func replaceWord(text, term, repl string) string {
	matches := termPatterns[term].FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		before, _ := utf8.DecodeLastRuneInString(text[:m[0]])
		after, _ := utf8.DecodeRuneInString(text[m[1]:])
		if isWordRune(before) || isWordRune(after) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(repl)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// ReconcileGender rewrites minority gendered terms to the dominant form when
// a story clearly favors one side of a pair. Short stories and stories with
// no recurring character are left alone, as are pairs whose counts are
// within DominanceRatio of each other (a mixed cast, not an error).
func ReconcileGender(text string) string {
	if len(segment.Split(text)) < minSentencesForGender {
		return text
	}
	if extract.ExtractCharacters(text).Recurring(1).Len() == 0 {
		return text
	}

	for _, pair := range genderPairs {
		lower := strings.ToLower(text)
		if !strings.Contains(lower, pair.male) || !strings.Contains(lower, pair.female) {
			continue
		}

		words := segment.Words(lower)
		maleCount := countTerm(words, pair.male)
		femaleCount := countTerm(words, pair.female)

		switch {
		case maleCount > femaleCount*DominanceRatio:
			text = replaceWord(text, pair.female, pair.male)
		case femaleCount > maleCount*DominanceRatio:
			text = replaceWord(text, pair.male, pair.female)
		}
	}

	return text
}

// countTerm counts tokens equal to term, optionally followed by a comma or period
func countTerm(words []string, term string) int {
	count := 0
	for _, w := range words {
		if w == term || w == term+"," || w == term+"." {
			count++
		}
	}
	return count
}
