package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixEnding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already ended", "The end.", "The end."},
		{"trailing space after ending", "The end!  ", "The end!  "},
		{"truncated", "They slept. Then the", "They slept."},
		{"rightmost of any terminal", "Why? Because! And then", "Why? Because!"},
		{"no terminal at all", "no punctuation here", "no punctuation here"},
		{"empty", "", ""},
		{"terminal at start", ".and then", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FixEnding(tt.input))
		})
	}
}

func TestFixEnding_Properties(t *testing.T) {
	inputs := []string{
		"", "abc", "a. b", "a! b? c", "done.", "x?y", "  lead. trail  ", "multi... dots and",
	}
	for _, in := range inputs {
		out := FixEnding(in)
		assert.LessOrEqual(t, len(out), len(in), "input %q", in)
		if strings.ContainsAny(in, ".!?") {
			trimmed := strings.TrimSpace(out)
			assert.Contains(t, ".!?", trimmed[len(trimmed)-1:], "input %q", in)
		}
	}
}

func TestEnsurePrefix(t *testing.T) {
	const prefix = "Once upon a time, "

	assert.Equal(t, "Once upon a time, a cat napped.", EnsurePrefix("a cat napped.", prefix))
	assert.Equal(t, "Once upon a time, a cat napped.", EnsurePrefix("Once upon a time, a cat napped.", prefix))
	// Case-sensitive: a lowercase opening still gets the prefix.
	assert.Equal(t, prefix+"once upon a time, x", EnsurePrefix("once upon a time, x", prefix))
	assert.Equal(t, prefix, EnsurePrefix("", prefix))
}

func TestEnsurePrefix_Idempotent(t *testing.T) {
	for _, in := range []string{"", "story", "Once upon a time, story", "Once upon"} {
		once := EnsurePrefix(in, "Once upon a time, ")
		assert.True(t, strings.HasPrefix(once, "Once upon a time, "))
		assert.Equal(t, once, EnsurePrefix(once, "Once upon a time, "))
	}
}
