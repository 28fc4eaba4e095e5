package score

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/segment"
)

// Repetition thresholds. The overuse values are inherited and uncalibrated.
const (
	openingWords         = 3
	minOpeningRepeats    = 3
	minOveruseWordLength = 4 // runes; shorter words are too common to judge
	OveruseMinCount      = 5
	OveruseRatio         = 0.05
)

// CheckRepetition looks for, in order: consecutive identical sentences,
// a three-word sentence opening used three or more times, and a word used
// both at least OveruseMinCount times and in at least OveruseRatio of all
// words. The first hit is reported.
func CheckRepetition(text string) model.Check {
	sentences := segment.Sentences(text)

	for i := 0; i+1 < len(sentences); i++ {
		if sentences[i] == sentences[i+1] {
			return model.Check{Message: "Contains consecutive repeated sentences"}
		}
	}

	if opening, ok := repeatedOpening(sentences); ok {
		return model.Check{Message: fmt.Sprintf("Repetitive sentence beginnings: '%s...'", opening)}
	}

	if word, ok := overusedWord(segment.Words(strings.ToLower(text))); ok {
		return model.Check{Message: fmt.Sprintf("Overuse of word: '%s'", word)}
	}

	return model.Check{Passed: true, Message: "No repetition detected"}
}

// repeatedOpening returns the first-seen opening that recurs often enough
func repeatedOpening(sentences []string) (string, bool) {
	var order []string
	counts := make(map[string]int)

	for _, s := range sentences {
		words := segment.Words(s)
		if len(words) < openingWords {
			continue
		}
		opening := strings.Join(words[:openingWords], " ")
		if counts[opening] == 0 {
			order = append(order, opening)
		}
		counts[opening]++
	}

	for _, opening := range order {
		if counts[opening] >= minOpeningRepeats {
			return opening, true
		}
	}
	return "", false
}

// overusedWord returns the first-seen word over both overuse thresholds
func overusedWord(words []string) (string, bool) {
	threshold := int(float64(len(words)) * OveruseRatio)
	if threshold < OveruseMinCount {
		threshold = OveruseMinCount
	}

	var order []string
	counts := make(map[string]int)
	for _, w := range words {
		if utf8.RuneCountInString(w) < minOveruseWordLength {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	for _, w := range order {
		if counts[w] >= threshold {
			return w, true
		}
	}
	return "", false
}
