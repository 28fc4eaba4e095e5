package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "words after the opening",
			input: "Once upon a time, a curious Dragon named Ember lived alone.",
			want:  "The Curious Dragon Named",
		},
		{
			name:  "opening is case-insensitive",
			input: "ONCE UPON A TIME there was a lonely giant.",
			want:  "The There Lonely Giant",
		},
		{
			name:  "capitalized name fallback",
			input: "in the valley lived a fox called Rusty who loved berries.",
			want:  "The Rusty's Adventure",
		},
		{
			name:  "nothing usable",
			input: "a b c d e f g",
			want:  DefaultTitle,
		},
		{
			name:  "too short for fallback",
			input: "Hello Sunshine",
			want:  DefaultTitle,
		},
		{
			name:  "empty",
			input: "",
			want:  DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input))
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Hello World", titleCase("hello WORLD"))
	assert.Equal(t, "Don'T Stop", titleCase("don't stop"))
	assert.Equal(t, "", titleCase(""))
}
