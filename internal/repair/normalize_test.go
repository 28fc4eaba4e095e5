package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_FixTable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"apostrophe", "The fox didnâ€™t stop.", "The fox didn't stop."},
		{"open quote", "â€œHello", "\"Hello"},
		{"bare close quote", "Helloâ€ she said.", "Hello\" she said."},
		{"quote entity", "&quot;Run!&quot;", "\"Run!\""},
		{"nbsp entity", "a&nbsp;b", "a b"},
		{"escaped newline", `one.\ntwo.`, "one. two."},
		{"untouched", "Nothing to fix here.", "Nothing to fix here."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_OrderedPasses(t *testing.T) {
	// The apostrophe entry runs before the bare close-quote entry, so the
	// longer sequence wins even when they are adjacent.
	assert.Equal(t, "\"'", Normalize("â€â€™"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"â€œQuotedâ€ and donâ€™t",
		"&quot;&nbsp;&quot;",
		`\n\n\\n`,
		"â€â€™â€œ&quot;",
		"&nb&nbsp;sp;",
		`\&quot;n`,
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestHasEncodingIssues(t *testing.T) {
	assert.True(t, HasEncodingIssues("donâ€™t"))
	assert.True(t, HasEncodingIssues("endâ€"))
	assert.False(t, HasEncodingIssues("don't"))
	assert.False(t, HasEncodingIssues(Normalize("donâ€™t â€œxâ€")))
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"space runs", "a   b  c", "a b c"},
		{"period runs", "Wait.... what.. now", "Wait... what... now"},
		{"space before punctuation", "Hi , there . Yes ! No ?", "Hi, there. Yes! No?"},
		{"comma after terminal", "Stop!,go", "Stop! go"},
		{"trim", "  padded.  ", "padded."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}
