package llm

import (
	"fmt"
	"strings"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
)

// NewEmbedder creates an embedding provider based on configuration
func NewEmbedder(config Config) (Embedder, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIEmbedder(config)

	case "ollama":
		return NewOllamaEmbedder(config)

	case "":
		// No provider configured - title similarity disabled
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown similarity provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.SimilarityConfig to llm.Config
func ConfigFromModel(modelConfig model.SimilarityConfig) Config {
	return Config{
		Provider: modelConfig.Provider,
		Model:    modelConfig.Model,
		APIKey:   modelConfig.APIKey,
		BaseURL:  modelConfig.BaseURL,
		Timeout:  modelConfig.Timeout,

		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
		NoProxy:    modelConfig.NoProxy,
	}
}
