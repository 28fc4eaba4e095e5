package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/extract"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/pipeline"
)

var (
	outJSON    string
	outMD      string
	timeout    time.Duration
	titleFlag  string
	prefix     string
	similarity string
	embedModel string
	threshold  float64
	noTitle    bool
	noCache    bool
	noFooter   bool
	minScore   int
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file|->",
	Short: "Repair and score a single story",
	Long: `Check runs one story through the QA pipeline:
- Fix encoding artifacts, truncated endings and pronoun drift
- Tidy spacing and punctuation, ensure the mandatory opening
- Score length, repetition, character consistency and structure
- Keep, replace or generate the title

The corrected story is written to stdout, a summary to stderr.
Input may be .txt, .html or .json; "-" reads plain text from stdin.

Example:
  storyqa check story.txt
  storyqa check story.txt --title "The Brave Mouse" --similarity ollama
  storyqa check story.json --json report.json --md report.md
  cat story.txt | storyqa check - --min-score 7`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().IntVar(&minScore, "min-score", 0, "exit with an error when the score is below this value")

	addPipelineFlags(checkCmd)
	checkCmd.Flags().StringVar(&titleFlag, "title", "", "candidate title (overrides one found in the input)")
	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
}

// addPipelineFlags registers the flags shared by check and batch
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&prefix, "prefix", model.DefaultPrefix, "mandatory story opening")
	cmd.Flags().StringVar(&similarity, "similarity", "", "title similarity provider (openai, ollama)")
	cmd.Flags().StringVar(&embedModel, "embedding-model", "", "embedding model name")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum similarity to keep a candidate title (default from config)")
	cmd.Flags().BoolVar(&noTitle, "no-title", false, "skip the title check")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the embedding cache")
}

// buildConfig layers command flags over the resolved configuration
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("prefix") {
		cfg.Repair.Prefix = prefix
	}
	if flags.Changed("similarity") {
		cfg.Similarity.Provider = similarity
		if cfg.Similarity.Provider == "openai" && cfg.Similarity.APIKey == "" {
			cfg.Similarity.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Similarity.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
		if cfg.Similarity.Provider == "ollama" && cfg.Similarity.BaseURL == "" {
			cfg.Similarity.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
	if flags.Changed("embedding-model") {
		cfg.Similarity.Model = embedModel
	}
	if flags.Changed("threshold") {
		cfg.Title.Threshold = threshold
	}
	if noTitle {
		cfg.Title.Enabled = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if flags.Lookup("no-footer") != nil && noFooter {
		cfg.Output.IncludeFooter = false
	}
	if flags.Lookup("concurrency") != nil && concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	return cfg, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	story, err := readStory(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("title") {
		story.Title = titleFlag
	}

	p := pipeline.NewPipeline(cfg, logger)
	result := p.Run(ctx, story)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Corrected)
	renderer.RenderSummary(cmd.ErrOrStderr(), result)

	if minScore > 0 && result.Quality.Score < minScore {
		return fmt.Errorf("quality score %d is below --min-score %d", result.Quality.Score, minScore)
	}
	return nil
}

// readStory loads a story from path, or from r when path is "-"
func readStory(path string, r io.Reader) (model.Story, error) {
	if path != "-" {
		story, err := extract.LoadStory(path)
		if err != nil {
			return model.Story{}, fmt.Errorf("load story: %w", err)
		}
		return story, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return model.Story{}, fmt.Errorf("read stdin: %w", err)
	}
	return model.Story{
		ID:     uuid.NewString(),
		Text:   string(data),
		Source: "stdin",
	}, nil
}
