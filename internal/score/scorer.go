package score

import (
	"fmt"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/repair"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/segment"
	"go.uber.org/zap"
)

// Penalties subtracted from the starting score
const (
	startScore = 10

	penaltyTooShort   = 3
	penaltyShort      = 1
	penaltyEncoding   = 1
	penaltyNoEnding   = 1
	penaltyRepetition = 2
	penaltyCharacters = 2
	penaltyStructure  = 1
)

// Length thresholds, in words
const (
	minWords       = 50
	preferredWords = 100
)

// Scorer grades a story with a fixed set of deductions. It keeps no state
// between calls and is safe for concurrent use.
type Scorer struct {
	logger *zap.Logger
}

// NewScorer creates a new scorer
func NewScorer(logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{logger: logger}
}

// Score grades text. Every check is independent; issues are reported in
// check order and the score is not clamped.
func (s *Scorer) Score(text string) model.Verdict {
	wordCount := len(segment.Words(text))
	score := startScore
	var issues []string

	// 1. Length
	if wordCount < minWords {
		score -= penaltyTooShort
		issues = append(issues, "Story is too short")
	} else if wordCount < preferredWords {
		score -= penaltyShort
		issues = append(issues, "Story could be longer")
	}

	// 2. Encoding
	if repair.HasEncodingIssues(text) {
		score -= penaltyEncoding
		issues = append(issues, "Contains encoding issues")
	}

	// 3. Ending
	if !segment.EndsWithTerminal(text) {
		score -= penaltyNoEnding
		issues = append(issues, "Missing proper ending")
	}

	// 4. Repetition
	if c := CheckRepetition(text); !c.Passed {
		score -= penaltyRepetition
		issues = append(issues, c.Message)
	}

	// 5. Character consistency
	if c := CheckCharacterConsistency(text); !c.Passed {
		score -= penaltyCharacters
		issues = append(issues, c.Message)
	}

	// 6. Narrative structure
	if c := CheckNarrativeStructure(text); !c.Passed {
		score -= penaltyStructure
		issues = append(issues, c.Message)
	}

	if len(issues) == 0 {
		issues = []string{model.NoIssues}
	}

	verdict := model.Verdict{
		Score:          score,
		Issues:         issues,
		WordCount:      wordCount,
		Classification: model.Classify(score),
	}

	s.logger.Debug("Scored story",
		zap.Int("score", verdict.Score),
		zap.Int("words", verdict.WordCount),
		zap.String("classification", string(verdict.Classification)))

	return verdict
}

// neutralScore is reported when grading itself fails
const neutralScore = 5

// SafeScore is Score with a neutral fallback: an internal fault yields an
// "Acceptable" verdict describing the failure instead of a crash.
func (s *Scorer) SafeScore(text string) (verdict model.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Quality scoring failed, using neutral verdict", zap.Any("panic", r))
			verdict = neutralVerdict(text, fmt.Errorf("%v", r))
		}
	}()
	return s.Score(text)
}

func neutralVerdict(text string, err error) model.Verdict {
	return model.Verdict{
		Score:          neutralScore,
		Issues:         []string{fmt.Sprintf("Could not fully evaluate quality: %v", err)},
		WordCount:      len(segment.Words(text)),
		Classification: model.Classify(neutralScore),
	}
}
