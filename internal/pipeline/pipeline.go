package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/cache"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/llm"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/repair"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/score"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/title"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/worker"
)

// Pipeline runs a story through repair, scoring and the title check
type Pipeline struct {
	repairer   *repair.Repairer
	scorer     *score.Scorer
	checker    *title.Checker
	embedder   llm.Embedder // Nil unless built from configuration
	hasBackend bool
	config     *model.Config
	logger     *zap.Logger
}

// NewPipeline creates a pipeline from configuration. A similarity provider
// that fails to initialize is logged and title similarity is disabled.
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	embedder, similarity := newSimilarity(cfg, logger)
	p := New(cfg, similarity, logger)
	p.embedder = embedder
	return p
}

// New creates a pipeline around an explicit similarity backend (may be nil)
func New(cfg *model.Config, similarity title.Similarity, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	prefix := cfg.Repair.Prefix
	if prefix == "" {
		prefix = model.DefaultPrefix
	}

	return &Pipeline{
		repairer:   repair.NewRepairer(prefix, logger.Named("repair")),
		scorer:     score.NewScorer(logger.Named("score")),
		checker:    title.NewChecker(similarity, cfg.Title.Threshold, cfg.Title.Timeout, logger.Named("title")),
		hasBackend: similarity != nil,
		config:     cfg,
		logger:     logger,
	}
}

func newSimilarity(cfg *model.Config, logger *zap.Logger) (llm.Embedder, title.Similarity) {
	if !cfg.Title.Enabled || cfg.Similarity.Provider == "" {
		return nil, nil
	}

	embedder, err := llm.NewEmbedder(llm.ConfigFromModel(cfg.Similarity))
	if err != nil {
		logger.Warn("Failed to initialize similarity provider, title similarity disabled",
			zap.String("provider", cfg.Similarity.Provider),
			zap.Error(err))
		return nil, nil
	}
	if embedder == nil {
		return nil, nil
	}

	limiter := worker.NewLimiter(cfg.Similarity.RequestsPerSecond, cfg.Similarity.BurstSize)
	return embedder, llm.NewEmbeddingSimilarity(embedder, cache.New(cfg.Cache), limiter, logger.Named("similarity"))
}

// CheckBackend probes the configured similarity provider once. An
// unreachable provider is short-circuited: every later title check fails
// fast with the probe error and falls back to a derived title, instead of
// timing out story by story. Not safe to call concurrently with Run.
func (p *Pipeline) CheckBackend(ctx context.Context) bool {
	if p.embedder == nil {
		return p.hasBackend
	}
	err := p.embedder.Ping(ctx)
	if err == nil {
		return true
	}

	p.logger.Warn("Similarity provider unavailable, titles will be derived from stories",
		zap.String("provider", p.embedder.Name()),
		zap.String("endpoint", p.embedder.Endpoint()),
		zap.Error(err))

	unavailable := fmt.Errorf("%s unavailable: %w", p.embedder.Name(), err)
	p.checker = title.NewChecker(title.SimilarityFunc(func(context.Context, string, string) (float64, error) {
		return 0, unavailable
	}), p.config.Title.Threshold, p.config.Title.Timeout, p.logger.Named("title"))
	return false
}

// Run processes one story. It never fails: repair faults, scoring faults
// and similarity outages degrade the result instead.
func (p *Pipeline) Run(ctx context.Context, story model.Story) *model.Result {
	start := time.Now()

	corrected, steps := p.repairer.Process(story.Text)
	verdict := p.scorer.SafeScore(corrected)

	result := &model.Result{
		ID:          story.ID,
		ProcessedAt: time.Now().UTC(),
		Original:    story.Text,
		Corrected:   corrected,
		Repairs:     steps,
		Quality:     verdict,
	}

	if p.config.Title.Enabled {
		t := p.checkTitle(ctx, corrected, story.Title)
		result.Title = &t
	}

	p.logger.Debug("Story processed",
		zap.String("id", story.ID),
		zap.Int("score", verdict.Score),
		zap.String("classification", string(verdict.Classification)),
		zap.Duration("elapsed", time.Since(start)))

	return result
}

func (p *Pipeline) checkTitle(ctx context.Context, story, candidate string) model.TitleResult {
	candidate = strings.TrimSpace(candidate)

	if candidate == "" {
		return model.TitleResult{
			Title:  title.Generate(story),
			Source: model.TitleGenerated,
		}
	}

	// Without a backend there is nothing to judge the candidate against
	if !p.hasBackend {
		return model.TitleResult{
			Candidate: candidate,
			Title:     candidate,
			Source:    model.TitleCandidate,
			Error:     title.ErrNoBackend.Error(),
		}
	}

	return p.checker.Check(ctx, story, candidate)
}
