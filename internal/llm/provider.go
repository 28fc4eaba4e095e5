package llm

import (
	"context"
)

// Embedder turns texts into embedding vectors
type Embedder interface {
	// Name returns the provider name
	Name() string

	// Model returns the embedding model in use
	Model() string

	// Endpoint returns the base URL requests are sent to (used for rate limiting)
	Endpoint() string

	// Embed returns one vector per input text, in input order
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Ping returns an error when the provider is misconfigured or unreachable
	Ping(ctx context.Context) error
}

// Config holds embedding provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, OpenAI-compatible gateways)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider: "", // Disabled by default
		Model:    "",
		Timeout:  30,
	}
}
