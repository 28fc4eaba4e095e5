package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestRepairer_Process(t *testing.T) {
	r := NewRepairer("Once upon a time, ", zaptest.NewLogger(t))

	got, steps := r.Process("a bunny  hopped .Itâ€™s tired.. and then the")

	assert.Equal(t, "Once upon a time, a bunny hopped.It's tired...", got)
	require.Len(t, steps, 5)

	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
		assert.False(t, s.Failed)
	}
	assert.Equal(t, []string{"normalize", "fix_ending", "reconcile_gender", "clean", "ensure_prefix"}, names)
	assert.True(t, steps[0].Changed)
	assert.True(t, steps[1].Changed)
	assert.False(t, steps[2].Changed)
	assert.True(t, steps[3].Changed)
	assert.True(t, steps[4].Changed)
}

func TestRepairer_KeepsExistingPrefix(t *testing.T) {
	r := NewRepairer("Once upon a time, ", nil)

	got, steps := r.Process("Once upon a time, a frog sang.")

	assert.Equal(t, "Once upon a time, a frog sang.", got)
	for _, s := range steps {
		assert.False(t, s.Changed, s.Name)
	}
}

func TestRepairer_FailSoft(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := &Repairer{
		steps: []step{
			{"upper", strings.ToUpper},
			{"explode", func(string) string { panic("boom") }},
			{"suffix", func(s string) string { return s + "!" }},
		},
		logger: zap.New(core),
	}

	got, steps := r.Process("story")

	assert.Equal(t, "STORY!", got)
	require.Len(t, steps, 3)
	assert.True(t, steps[1].Failed)
	assert.Contains(t, steps[1].Error, "boom")
	assert.False(t, steps[1].Changed)
	assert.Equal(t, 1, logs.FilterMessage("Repair step failed, keeping previous text").Len())
}

func TestRepairer_NeverEmptiesNonEmptyInput(t *testing.T) {
	r := NewRepairer("", nil)

	got, _ := r.Process("   ")

	assert.NotEmpty(t, got)
}
