package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRepetition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		passed  bool
		message string
	}{
		{
			name:    "consecutive sentences",
			input:   "The cat ran. The cat ran. It was fun.",
			message: "Contains consecutive repeated sentences",
		},
		{
			name:    "consecutive wins over overuse",
			input:   "apple apple. apple apple. apple pie.",
			message: "Contains consecutive repeated sentences",
		},
		{
			name:    "repeated openings",
			input:   "The dog ran fast. The dog ran slow. The dog ran home.",
			message: "Repetitive sentence beginnings: 'The dog ran...'",
		},
		{
			name:    "two repeats is not enough",
			input:   "The dog ran fast. The dog ran slow. A cat sat.",
			passed:  true,
			message: "No repetition detected",
		},
		{
			name:    "overused word, case-insensitive",
			input:   "Apple one. apple two. apple three. apple four. apple five.",
			message: "Overuse of word: 'apple'",
		},
		{
			name:    "short words never count as overused",
			input:   "the one. the two. the six. the ten. the end. the fin.",
			passed:  true,
			message: "No repetition detected",
		},
		{
			name:    "empty",
			input:   "",
			passed:  true,
			message: "No repetition detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckRepetition(tt.input)
			assert.Equal(t, tt.passed, got.Passed)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestCheckRepetition_OveruseScalesWithLength(t *testing.T) {
	// 200 words: the threshold is max(5, 10) = 10, so 6 uses pass.
	words := make([]string, 0, 200)
	for i := 0; i < 6; i++ {
		words = append(words, "lantern")
	}
	for len(words) < 200 {
		words = append(words, "x")
	}
	assert.True(t, CheckRepetition(strings.Join(words, " ")).Passed)

	for i := 0; i < 4; i++ {
		words[10+i] = "lantern"
	}
	got := CheckRepetition(strings.Join(words, " "))
	assert.False(t, got.Passed)
	assert.Equal(t, "Overuse of word: 'lantern'", got.Message)
}

func TestCheckCharacterConsistency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		passed  bool
		message string
	}{
		{
			name: "abandoned characters listed in first-seen order",
			input: "Once upon a time Bella and Leo found a shell. Bella smiled. The waves rolled. " +
				"Crabs danced slowly. Gulls flew high. Bella and Leo went home.",
			message: "Characters abandoned in middle: Bella, Leo",
		},
		{
			name: "present in the middle",
			input: "Once upon a time Bella found a shell. Bella smiled. Bella waded in. " +
				"Crabs danced slowly. Gulls flew high. Bella went home.",
			passed:  true,
			message: "Character consistency maintained",
		},
		{
			name:    "too short",
			input:   "Bella ran. Bella hid. Bella won.",
			passed:  true,
			message: "Story too short for character analysis",
		},
		{
			name:    "no recurring characters",
			input:   "a. b. c. d. e. f.",
			passed:  true,
			message: "No recurring characters detected",
		},
		{
			name:    "empty",
			input:   "",
			passed:  true,
			message: "Story too short for character analysis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckCharacterConsistency(tt.input)
			assert.Equal(t, tt.passed, got.Passed)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

// Six sentences, 80 words.
var structureSentences = []string{
	"Once upon a time a little fox lived in a quiet forest.",
	"Every morning the fox walked along the bank to watch the shining water.",
	"One day a storm came but the fox could not find its way home.",
	"The wind howled loudly and the rain kept falling on the dark trees.",
	"Finally a kind owl showed the fox a safe path through the tall grass.",
	"The fox thanked the owl and slept warmly in its cozy den that night.",
}

func TestCheckNarrativeStructure_Complete(t *testing.T) {
	text := strings.Join(structureSentences, " ")
	assert.Len(t, strings.Fields(text), 80)

	got := CheckNarrativeStructure(text)
	assert.True(t, got.Passed)
	assert.Equal(t, "Complete narrative structure", got.Message)

	verdict := NewScorer(nil).Score(text)
	for _, issue := range verdict.Issues {
		assert.NotContains(t, issue, "Missing narrative elements")
	}
}

func TestCheckNarrativeStructure_BasicWithoutProblem(t *testing.T) {
	sentences := append([]string(nil), structureSentences...)
	sentences[2] = "One day a storm came and the fox could not find its way home."

	got := CheckNarrativeStructure(strings.Join(sentences, " "))
	assert.True(t, got.Passed)
	assert.Equal(t, "Basic narrative structure present", got.Message)
}

func TestCheckNarrativeStructure_MissingEverything(t *testing.T) {
	sentence := "Blue birds sing songs in tall green trees near the big old mill."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 6))

	got := CheckNarrativeStructure(text)
	assert.False(t, got.Passed)
	assert.Equal(t, "Missing narrative elements: clear setting, conflict/problem, resolution", got.Message)
}

func TestCheckNarrativeStructure_ShortInputs(t *testing.T) {
	got := CheckNarrativeStructure("Once upon a time. But then. Finally.")
	assert.False(t, got.Passed)
	assert.Equal(t, "Story too short for proper structure", got.Message)

	// 80 words in five sentences
	sentence := "Once upon a time there lived a kind old baker who made bread for everyone daily."
	text := strings.TrimSpace(strings.Repeat(sentence+" ", 5))
	assert.Len(t, strings.Fields(text), 80)

	got = CheckNarrativeStructure(text)
	assert.False(t, got.Passed)
	assert.Equal(t, "Too few sentences for proper structure", got.Message)

	assert.Equal(t, "Story too short for proper structure", CheckNarrativeStructure("").Message)
}
