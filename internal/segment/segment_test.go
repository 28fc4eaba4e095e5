package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_KeepsEmptyPieces(t *testing.T) {
	assert.Equal(t, []string{""}, Split(""))
	assert.Equal(t, []string{"One", "Two", "Three."}, Split("One. Two! Three."))
	assert.Equal(t, []string{"A", "", "B"}, Split("A. . B"))
}

func TestSplit_RequiresSpaceAfterPunctuation(t *testing.T) {
	// Decimals and tight punctuation are not boundaries.
	assert.Equal(t, []string{"It cost 3.50 coins", "Then it ended."}, Split("It cost 3.50 coins. Then it ended."))
	assert.Len(t, Split("Mr.Smith waved."), 1)
}

func TestSentences_TrimsAndDropsEmpty(t *testing.T) {
	got := Sentences("  First one.  Second one!   . Third?")
	assert.Equal(t, []string{"First one", "Second one", "Third?"}, got)
	assert.Empty(t, Sentences(""))
	assert.Empty(t, Sentences("   "))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Words(" a\tb\n c "))
	assert.Empty(t, Words(""))
}

func TestThirds(t *testing.T) {
	tests := []struct {
		n             int
		first, second int
	}{
		{0, 0, 0},
		{5, 1, 3},
		{6, 2, 4},
		{7, 2, 4},
		{20, 6, 13},
	}
	for _, tt := range tests {
		first, second := Thirds(tt.n)
		assert.Equal(t, tt.first, first, "n=%d", tt.n)
		assert.Equal(t, tt.second, second, "n=%d", tt.n)
	}
}

func TestEndsWithTerminal(t *testing.T) {
	assert.True(t, EndsWithTerminal("The end."))
	assert.True(t, EndsWithTerminal("Really?  \n"))
	assert.True(t, EndsWithTerminal("Wow!"))
	assert.False(t, EndsWithTerminal("and then"))
	assert.False(t, EndsWithTerminal(""))
	assert.False(t, EndsWithTerminal("   "))
}
