package model

// Verdict is the structured result of scoring a story. Field names are the
// contract with downstream persistence and must not change.
type Verdict struct {
	Score          int            `json:"score" yaml:"score"`                   // Starts at 10, unclamped
	Issues         []string       `json:"issues" yaml:"issues"`                 // Detection order; sentinel when clean
	WordCount      int            `json:"word_count" yaml:"word_count"`         // Whitespace-separated tokens
	Classification Classification `json:"classification" yaml:"classification"` // Derived from Score only
}

// Classification labels a verdict score
type Classification string

const (
	ClassExcellent  Classification = "Excellent"
	ClassGood       Classification = "Good"
	ClassAcceptable Classification = "Acceptable"
	ClassPoor       Classification = "Poor"
)

// NoIssues is the single issue reported for a story with nothing to flag
const NoIssues = "No issues detected"

// Classify maps a score to its label using the fixed thresholds
func Classify(score int) Classification {
	switch {
	case score >= 9:
		return ClassExcellent
	case score >= 7:
		return ClassGood
	case score >= 5:
		return ClassAcceptable
	default:
		return ClassPoor
	}
}

// Accepted reports whether the story is good enough to keep without review
func (v Verdict) Accepted() bool {
	return v.Classification == ClassExcellent || v.Classification == ClassGood
}

// Check is the outcome of a single sub-check. Message is always set, even on
// pass, so reports can explain why a check did not fire.
type Check struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}
