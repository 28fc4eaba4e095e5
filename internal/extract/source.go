package extract

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
	"golang.org/x/net/html"
)

// maxLineBytes bounds a single JSON-lines record
const maxLineBytes = 4 * 1024 * 1024

// LoadStory reads a single story file. Plain text files are taken verbatim,
// HTML exports are reduced to their visible text (the <title> becomes the
// candidate title), and .json files hold one model.Story object.
func LoadStory(path string) (model.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Story{}, fmt.Errorf("read story: %w", err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		story, err := ParseHTMLStory(string(data))
		if err != nil {
			return model.Story{}, fmt.Errorf("parse html story: %w", err)
		}
		story.ID = id
		story.Source = path
		return story, nil

	case ".json":
		var story model.Story
		if err := json.Unmarshal(data, &story); err != nil {
			return model.Story{}, fmt.Errorf("decode story: %w", err)
		}
		if story.ID == "" {
			story.ID = id
		}
		story.Source = path
		return story, nil

	default:
		return model.Story{ID: id, Text: string(data), Source: path}, nil
	}
}

// LoadStories reads every story under path. A directory yields one story per
// .txt/.html/.htm/.json file (sorted by name); a .jsonl file yields one story
// per non-empty line; anything else is loaded as a single story.
func LoadStories(path string) ([]model.Story, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return loadDir(path)
	}

	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return loadJSONLines(path)
	}

	story, err := LoadStory(path)
	if err != nil {
		return nil, err
	}
	return []model.Story{story}, nil
}

func loadDir(dir string) ([]model.Story, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".html", ".htm", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	stories := make([]model.Story, 0, len(names))
	for _, name := range names {
		story, err := LoadStory(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		stories = append(stories, story)
	}
	return stories, nil
}

func loadJSONLines(path string) ([]model.Story, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var stories []model.Story
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var story model.Story
		if err := json.Unmarshal([]byte(line), &story); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if story.ID == "" {
			story.ID = fmt.Sprintf("story-%d", lineNo)
		}
		if seen[story.ID] {
			return nil, fmt.Errorf("line %d: duplicate story id %q", lineNo, story.ID)
		}
		seen[story.ID] = true
		story.Source = fmt.Sprintf("%s:%d", path, lineNo)
		stories = append(stories, story)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return stories, nil
}

// ParseHTMLStory extracts the visible story text and <title> from an HTML
// export. Block elements are separated by a single space.
func ParseHTMLStory(htmlContent string) (model.Story, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return model.Story{}, err
	}

	var story model.Story
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "head":
				story.Title = findTitle(n)
				return
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	story.Text = buf.String()
	return story, nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
