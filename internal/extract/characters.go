package extract

import (
	"unicode"
	"unicode/utf8"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/segment"
)

// Characters maps candidate character names to the sentence indices where
// they appear. Names keep first-seen order so anything derived from the map
// (issue messages, reports) is reproducible.
type Characters struct {
	order     []string
	positions map[string][]int
}

// ExtractCharacters scans text for capitalized, purely alphabetic tokens
// longer than two runes, skipping the very first token of the text. The
// result is unfiltered; callers pick their own significance threshold.
func ExtractCharacters(text string) *Characters {
	c := &Characters{positions: make(map[string][]int)}

	for i, sentence := range segment.Split(text) {
		for j, word := range segment.Words(sentence) {
			if i == 0 && j == 0 {
				continue
			}
			if !isCandidate(word) {
				continue
			}
			c.add(word, i)
		}
	}

	return c
}

func (c *Characters) add(name string, sentence int) {
	if _, ok := c.positions[name]; !ok {
		c.order = append(c.order, name)
	}
	c.positions[name] = append(c.positions[name], sentence)
}

// isCandidate reports whether a token looks like a proper noun
func isCandidate(word string) bool {
	if utf8.RuneCountInString(word) <= 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(first) {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Names returns the detected names in first-seen order
func (c *Characters) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Positions returns the sentence indices for name, in ascending order
func (c *Characters) Positions(name string) []int {
	pos := c.positions[name]
	out := make([]int, len(pos))
	copy(out, pos)
	return out
}

// Len returns the number of distinct names
func (c *Characters) Len() int {
	return len(c.order)
}

// Recurring returns the characters seen more than min times
func (c *Characters) Recurring(min int) *Characters {
	out := &Characters{positions: make(map[string][]int)}
	for _, name := range c.order {
		if len(c.positions[name]) > min {
			out.order = append(out.order, name)
			out.positions[name] = c.positions[name]
		}
	}
	return out
}
