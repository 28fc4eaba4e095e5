package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
)

// version is overridden at build time with -ldflags "-X ..."
var version = "v0.1.0"

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storyqa",
	Short: "storyqa - quality checks and repairs for generated short stories",
	Long: `storyqa post-processes machine-generated short stories.

It repairs common generation artifacts (mojibake, truncated endings,
pronoun drift, stray spacing), scores the result for length, repetition,
character consistency and narrative structure, and checks that a
candidate title still fits the story.

storyqa never generates text. Scores are heuristics, not judgments.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command; cancelling ctx stops in-flight work
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "storyqa %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.storyqa/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	// A .env in the working directory may carry API keys
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".storyqa"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// STORYQA_SIMILARITY_PROVIDER overrides similarity.provider, and so on
	viper.SetEnvPrefix("STORYQA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(model.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env overrides apply on Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("repair.prefix", cfg.Repair.Prefix)

	viper.SetDefault("title.enabled", cfg.Title.Enabled)
	viper.SetDefault("title.threshold", cfg.Title.Threshold)
	viper.SetDefault("title.timeout", cfg.Title.Timeout)

	viper.SetDefault("similarity.provider", cfg.Similarity.Provider)
	viper.SetDefault("similarity.model", cfg.Similarity.Model)
	viper.SetDefault("similarity.api_key", cfg.Similarity.APIKey)
	viper.SetDefault("similarity.base_url", cfg.Similarity.BaseURL)
	viper.SetDefault("similarity.timeout", cfg.Similarity.Timeout)
	viper.SetDefault("similarity.requests_per_second", cfg.Similarity.RequestsPerSecond)
	viper.SetDefault("similarity.burst_size", cfg.Similarity.BurstSize)
	viper.SetDefault("similarity.http_proxy", cfg.Similarity.HTTPProxy)
	viper.SetDefault("similarity.https_proxy", cfg.Similarity.HTTPSProxy)
	viper.SetDefault("similarity.no_proxy", cfg.Similarity.NoProxy)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)

	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)

	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.include_footer", cfg.Output.IncludeFooter)
}

// loadConfig resolves defaults, config file and environment into a Config.
// Command flags are applied by the caller.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Provider-native environment variables fill gaps
	if cfg.Similarity.APIKey == "" && strings.EqualFold(cfg.Similarity.Provider, "openai") {
		cfg.Similarity.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Similarity.BaseURL == "" && strings.EqualFold(cfg.Similarity.Provider, "ollama") {
		cfg.Similarity.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	return cfg, nil
}

// newLogger builds the CLI logger. Logs go to stderr; stdout carries results.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
