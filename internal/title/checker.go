// Package title keeps a story's title coherent with its text. A candidate
// title is scored against the story by an external similarity backend and
// replaced by a heuristic title when the match is weak or the backend is
// unavailable.
package title

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"go.uber.org/zap"
)

// DefaultThreshold is the minimum cosine similarity for keeping a candidate
const DefaultThreshold = 0.55

// maxTitleWords caps a derived title; longer ones collapse to a template
const maxTitleWords = 10

// Similarity scores how semantically close two texts are, in [-1, 1]
type Similarity interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// SimilarityFunc adapts a plain function to Similarity
type SimilarityFunc func(ctx context.Context, a, b string) (float64, error)

// Similarity calls f(ctx, a, b)
func (f SimilarityFunc) Similarity(ctx context.Context, a, b string) (float64, error) {
	return f(ctx, a, b)
}

// ErrNoBackend is reported when a Checker has no similarity backend
var ErrNoBackend = errors.New("no similarity backend configured")

// Checker decides whether a candidate title fits its story
type Checker struct {
	similarity Similarity
	threshold  float64
	timeout    time.Duration
	logger     *zap.Logger
}

// NewChecker creates a checker. A zero threshold selects DefaultThreshold;
// a zero timeout leaves the similarity call bounded only by ctx.
func NewChecker(similarity Similarity, threshold float64, timeout time.Duration, logger *zap.Logger) *Checker {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		similarity: similarity,
		threshold:  threshold,
		timeout:    timeout,
		logger:     logger,
	}
}

// Check keeps candidate when it is similar enough to story and otherwise
// returns a title derived from the story's first sentence. Backend errors
// and timeouts count as a weak match; they never fail the check.
func (c *Checker) Check(ctx context.Context, story, candidate string) model.TitleResult {
	flat := strings.ReplaceAll(strings.TrimSpace(story), "\n", " ")
	candidate = strings.TrimSpace(candidate)

	result := model.TitleResult{Candidate: candidate}

	sim, err := c.score(ctx, flat, candidate)
	if err != nil {
		c.logger.Warn("Title similarity unavailable, deriving title from story", zap.Error(err))
		result.Error = err.Error()
	} else {
		result.Similarity = &sim
		if sim >= c.threshold {
			result.Title = candidate
			result.Source = model.TitleCandidate
			return result
		}
		c.logger.Debug("Title below similarity threshold",
			zap.Float64("similarity", sim),
			zap.Float64("threshold", c.threshold))
	}

	result.Title = Derive(flat)
	result.Source = model.TitleDerived
	return result
}

// score runs the similarity call under the configured timeout. The call
// runs in its own goroutine so a backend that ignores ctx cannot stall us.
func (c *Checker) score(ctx context.Context, story, candidate string) (float64, error) {
	if c.similarity == nil {
		return 0, ErrNoBackend
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	type outcome struct {
		sim float64
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("similarity panic: %v", r)}
			}
		}()
		sim, err := c.similarity.Similarity(ctx, story, candidate)
		done <- outcome{sim: sim, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("similarity: %w", ctx.Err())
	case o := <-done:
		if o.err != nil {
			return 0, fmt.Errorf("similarity: %w", o.err)
		}
		if math.IsNaN(o.sim) {
			return 0, errors.New("similarity: backend returned NaN")
		}
		return o.sim, nil
	}
}

// Derive builds a title from the text before the first '.', '!' or '?':
// trimmed, first letter upper-cased and the rest lower-cased. Titles over
// ten words become "A short story about <first word>".
func Derive(story string) string {
	first := story
	if i := strings.IndexAny(story, ".!?"); i >= 0 {
		first = story[:i]
	}
	derived := capitalize(strings.TrimSpace(first))

	words := strings.Fields(derived)
	if len(words) > maxTitleWords {
		return "A short story about " + strings.ToLower(words[0])
	}
	if derived == "" {
		return DefaultTitle
	}
	return derived
}

// capitalize upper-cases the first rune and lower-cases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
