package repair

import (
	"fmt"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"go.uber.org/zap"
)

type step struct {
	name string
	fn   func(string) string
}

// Repairer runs the repair steps in order. A step that panics is logged and
// skipped, so Process always returns the best text computed so far.
type Repairer struct {
	steps  []step
	logger *zap.Logger
}

// NewRepairer builds the standard repair chain. The prefix is prepended last
// so the cleaned text never loses it.
func NewRepairer(prefix string, logger *zap.Logger) *Repairer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Repairer{
		steps: []step{
			{"normalize", Normalize},
			{"fix_ending", FixEnding},
			{"reconcile_gender", ReconcileGender},
			{"clean", Clean},
			{"ensure_prefix", func(s string) string { return EnsurePrefix(s, prefix) }},
		},
		logger: logger,
	}
}

// Process applies every step to text and reports what each one did
func (r *Repairer) Process(text string) (string, []model.RepairStep) {
	report := make([]model.RepairStep, 0, len(r.steps))

	for _, s := range r.steps {
		out, err := runStep(s.fn, text)
		record := model.RepairStep{Name: s.name}

		switch {
		case err != nil:
			r.logger.Warn("Repair step failed, keeping previous text",
				zap.String("step", s.name),
				zap.Error(err))
			record.Failed = true
			record.Error = err.Error()

		case out == "" && text != "":
			r.logger.Debug("Repair step emptied the story, ignoring", zap.String("step", s.name))

		default:
			record.Changed = out != text
			text = out
		}

		report = append(report, record)
	}

	return text, report
}

func runStep(fn func(string) string, in string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = in
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(in), nil
}
