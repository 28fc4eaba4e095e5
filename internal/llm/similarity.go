package llm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/cache"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/worker"
)

// ErrZeroVector is returned when an embedding has no magnitude
var ErrZeroVector = errors.New("zero-length embedding vector")

// Cosine returns the cosine similarity of two equal-length vectors
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// EmbeddingSimilarity scores text pairs by the cosine similarity of their
// embeddings. Vectors are cached per provider/model/text and outbound calls
// go through a per-host rate limiter.
type EmbeddingSimilarity struct {
	embedder Embedder
	cache    cache.Cache
	limiter  *worker.Limiter
	logger   *zap.Logger
}

// NewEmbeddingSimilarity wires an embedder with optional cache and limiter
func NewEmbeddingSimilarity(embedder Embedder, c cache.Cache, limiter *worker.Limiter, logger *zap.Logger) *EmbeddingSimilarity {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmbeddingSimilarity{
		embedder: embedder,
		cache:    c,
		limiter:  limiter,
		logger:   logger,
	}
}

// Similarity embeds a and b (one request for whichever are not cached)
// and returns their cosine similarity
func (s *EmbeddingSimilarity) Similarity(ctx context.Context, a, b string) (float64, error) {
	vecs, err := s.vectors(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	return Cosine(vecs[0], vecs[1])
}

func (s *EmbeddingSimilarity) vectors(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	keys := make([]string, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		keys[i] = cache.EmbeddingKey(s.embedder.Name(), s.embedder.Model(), text)
		if data, ok := s.cache.Get(keys[i]); ok {
			vec, err := cache.DecodeVector(data)
			if err == nil && len(vec) > 0 {
				out[i] = vec
				continue
			}
			s.logger.Debug("Dropping corrupt cached embedding", zap.Error(err))
			_ = s.cache.Delete(keys[i])
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		s.logger.Debug("Embedding cache hit", zap.Int("texts", len(texts)))
		return out, nil
	}

	if s.limiter != nil && !s.limiter.Allow(s.embedder.Endpoint()) {
		s.logger.Debug("Embedding request throttled", zap.String("endpoint", s.embedder.Endpoint()))
		if err := s.limiter.Wait(ctx, s.embedder.Endpoint()); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	vecs, err := s.embedder.Embed(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("%s embed: %w", s.embedder.Name(), err)
	}
	if len(vecs) != len(missing) {
		return nil, fmt.Errorf("%s returned %d embeddings for %d texts", s.embedder.Name(), len(vecs), len(missing))
	}

	for j, i := range missingIdx {
		out[i] = vecs[j]
		if err := s.cache.Set(keys[i], cache.EncodeVector(vecs[j]), 0); err != nil {
			s.logger.Warn("Failed to cache embedding", zap.Error(err))
		}
	}

	s.logger.Debug("Embedded texts",
		zap.String("provider", s.embedder.Name()),
		zap.String("model", s.embedder.Model()),
		zap.Int("requested", len(missing)),
		zap.Int("cached", len(texts)-len(missing)))

	return out, nil
}
