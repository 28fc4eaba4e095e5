package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
)

const footer = "_Generated by storyqa. Scores are heuristic and say nothing about literary merit._"

// Renderer writes results as JSON, Markdown and terminal summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full result as indented JSON
func (r *Renderer) RenderJSON(result *model.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(result *model.Result, path string) error {
	return writeFile(path, []byte(r.Markdown(result)))
}

// Markdown renders the report body
func (r *Renderer) Markdown(result *model.Result) string {
	var b strings.Builder

	heading := result.ID
	if result.Title != nil && result.Title.Title != "" {
		heading = result.Title.Title
	}
	fmt.Fprintf(&b, "# %s\n\n", heading)

	q := result.Quality
	fmt.Fprintf(&b, "**Quality:** %d/10 (%s), %d words\n\n", q.Score, q.Classification, q.WordCount)

	b.WriteString("## Issues\n\n")
	for _, issue := range q.Issues {
		fmt.Fprintf(&b, "- %s\n", issue)
	}
	b.WriteString("\n")

	if t := result.Title; t != nil {
		b.WriteString("## Title\n\n")
		if t.Candidate != "" {
			fmt.Fprintf(&b, "- Candidate: %s\n", t.Candidate)
		}
		fmt.Fprintf(&b, "- Final: %s (%s)\n", t.Title, t.Source)
		if t.Similarity != nil {
			fmt.Fprintf(&b, "- Similarity: %.3f\n", *t.Similarity)
		}
		if t.Error != "" {
			fmt.Fprintf(&b, "- Note: %s\n", t.Error)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Repairs\n\n")
	b.WriteString("| Step | Changed | Status |\n|---|---|---|\n")
	for _, s := range result.Repairs {
		status := "ok"
		if s.Failed {
			status = "failed: " + s.Error
		}
		fmt.Fprintf(&b, "| %s | %t | %s |\n", s.Name, s.Changed, status)
	}
	b.WriteString("\n")

	b.WriteString("## Corrected Story\n\n")
	b.WriteString(result.Corrected)
	b.WriteString("\n")

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString(footer)
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSummary prints a short colored summary. Colors are dropped when w
// is not a terminal.
func (r *Renderer) RenderSummary(w io.Writer, result *model.Result) {
	lg := lipgloss.NewRenderer(w)
	label := lg.NewStyle().Bold(true)
	verdict := lg.NewStyle().Bold(true).Foreground(classColor(result.Quality.Classification))
	muted := lg.NewStyle().Faint(true)

	q := result.Quality
	fmt.Fprintf(w, "%s %s\n", label.Render("Story:"), result.ID)
	fmt.Fprintf(w, "%s %s\n", label.Render("Quality:"),
		verdict.Render(fmt.Sprintf("%d/10 %s", q.Score, q.Classification)))
	fmt.Fprintf(w, "%s %d\n", label.Render("Words:"), q.WordCount)
	for _, issue := range q.Issues {
		fmt.Fprintf(w, "  %s %s\n", muted.Render("-"), issue)
	}
	if t := result.Title; t != nil {
		fmt.Fprintf(w, "%s %s %s\n", label.Render("Title:"), t.Title, muted.Render("("+string(t.Source)+")"))
	}
}

func classColor(c model.Classification) lipgloss.Color {
	switch c {
	case model.ClassExcellent:
		return lipgloss.Color("#8BC34A")
	case model.ClassGood:
		return lipgloss.Color("#4FC3F7")
	case model.ClassAcceptable:
		return lipgloss.Color("#FFB300")
	default:
		return lipgloss.Color("#E53935")
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
