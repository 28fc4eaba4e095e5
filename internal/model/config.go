package model

import "time"

// Config is the complete storyqa configuration
type Config struct {
	Repair      RepairConfig      `yaml:"repair" mapstructure:"repair"`
	Title       TitleConfig       `yaml:"title" mapstructure:"title"`
	Similarity  SimilarityConfig  `yaml:"similarity" mapstructure:"similarity"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// RepairConfig controls the repair stage
type RepairConfig struct {
	Prefix string `yaml:"prefix" mapstructure:"prefix"` // Mandatory opening, prepended when missing
}

// TitleConfig controls the title coherence check
type TitleConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Threshold float64       `yaml:"threshold" mapstructure:"threshold"` // Minimum cosine similarity to keep a candidate
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`     // Bound on the similarity call
}

// SimilarityConfig selects the embedding backend used for titles
type SimilarityConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // openai, ollama, "" (disabled)
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // Seconds, per HTTP request
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
	HTTPProxy         string  `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string  `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string  `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls the embedding cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls reporting
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultPrefix is the opening every story must carry
const DefaultPrefix = "Once upon a time, "

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Repair: RepairConfig{
			Prefix: DefaultPrefix,
		},
		Title: TitleConfig{
			Enabled:   true,
			Threshold: 0.55,
			Timeout:   10 * time.Second,
		},
		Similarity: SimilarityConfig{
			Provider:          "",
			Model:             "",
			Timeout:           30,
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".storyqa-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
