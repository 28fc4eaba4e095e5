package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/pipeline"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file|dir>",
	Short: "Check many stories in parallel",
	Long: `Batch runs many stories through the QA pipeline concurrently:
- Input is a JSON-lines file ({"id", "title", "text"} per line)
  or a directory of .txt/.html/.json stories
- Stories are processed by a pool of workers
- One JSON and one Markdown report is written per story

Example:
  storyqa batch stories.jsonl
  storyqa batch ./generated --concurrency 8 --output-dir ./qa-reports
  storyqa batch stories.jsonl --similarity openai --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./storyqa-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	addPipelineFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  storyqa Batch Processing\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Input:        %s\n", input)
	fmt.Fprintf(stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.Similarity.Provider != "" {
		fmt.Fprintf(stderr, "  Similarity:   %s %s\n", cfg.Similarity.Provider, cfg.Similarity.Model)
	}
	fmt.Fprintf(stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, logger)
	if cfg.Title.Enabled && cfg.Similarity.Provider != "" && !p.CheckBackend(ctx) {
		fmt.Fprintf(stderr, "⚠ Similarity provider unreachable; titles will be derived from stories\n\n")
	}
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	results, err := processor.ProcessPath(ctx, input)
	if err != nil {
		return fmt.Errorf("process input: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	counts := make(map[model.Classification]int)
	failureCount := 0
	reviewCount := 0
	used := make(map[string]bool)

	for _, res := range results {
		if res.Error != nil {
			failureCount++
			fmt.Fprintf(stderr, "✗ %s: %v\n", res.ID, res.Error)
			continue
		}

		slug := uniqueSlug(sanitizeFilename(res.ID), used)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(res.Result, jsonPath); err != nil {
			failureCount++
			logger.Warn("Failed to write JSON report", zap.String("story", res.ID), zap.Error(err))
			continue
		}
		if err := renderer.RenderMarkdown(res.Result, mdPath); err != nil {
			failureCount++
			logger.Warn("Failed to write Markdown report", zap.String("story", res.ID), zap.Error(err))
			continue
		}

		q := res.Result.Quality
		counts[q.Classification]++
		if !q.Accepted() {
			reviewCount++
		}
		fmt.Fprintf(stderr, "✓ %s (%d/10 %s)\n", res.ID, q.Score, q.Classification)
	}

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:       %d stories\n", len(results))
	for _, c := range []model.Classification{model.ClassExcellent, model.ClassGood, model.ClassAcceptable, model.ClassPoor} {
		fmt.Fprintf(stderr, "  %-12s %d\n", string(c)+":", counts[c])
	}
	fmt.Fprintf(stderr, "  Needs review: %d\n", reviewCount)
	fmt.Fprintf(stderr, "  Failures:    %d\n", failureCount)
	fmt.Fprintf(stderr, "  Output:      %s\n", outputDir)
	fmt.Fprintf(stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d stories failed", failureCount, len(results))
	}
	return nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

const maxFilenameBytes = 100

// sanitizeFilename turns a story ID into a safe file name, cut on a rune
// boundary
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(strings.TrimSpace(s))
	s = strings.Trim(s, ".")

	if len(s) > maxFilenameBytes {
		n := maxFilenameBytes
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	if s == "" {
		s = "story"
	}
	return s
}

// uniqueSlug appends -2, -3, ... until the name is unused, so IDs like
// "a", "a-2", "a" never share a report file
func uniqueSlug(slug string, used map[string]bool) string {
	candidate := slug
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", slug, n)
	}
	used[candidate] = true
	return candidate
}
