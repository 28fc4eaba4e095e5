package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
)

// mockRunner implements Runner
type mockRunner struct {
	panicOn string
}

func (m *mockRunner) Run(ctx context.Context, story model.Story) *model.Result {
	time.Sleep(time.Millisecond) // Simulate work
	if story.ID == m.panicOn {
		panic("boom")
	}
	return &model.Result{
		ID:        story.ID,
		Original:  story.Text,
		Corrected: strings.ToUpper(story.Text),
	}
}

func stories(ids ...string) []model.Story {
	out := make([]model.Story, len(ids))
	for i, id := range ids {
		out[i] = model.Story{ID: id, Text: "text " + id}
	}
	return out
}

func TestBatchProcessor_ProcessStories(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 3)

	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	results := processor.ProcessStories(context.Background(), stories(ids...))

	if len(results) != len(ids) {
		t.Fatalf("expected %d results, got %d", len(ids), len(results))
	}

	for i, res := range results {
		if res.ID != ids[i] {
			t.Errorf("result %d: expected ID %s, got %s (order not preserved)", i, ids[i], res.ID)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.ID, res.Error)
			continue
		}
		if res.Result == nil || res.Result.Corrected != "TEXT "+strings.ToUpper(ids[i]) {
			t.Errorf("unexpected result for %s: %+v", res.ID, res.Result)
		}
	}
}

func TestBatchProcessor_PanicIsolated(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{panicOn: "b"}, 2)

	results := processor.ProcessStories(context.Background(), stories("a", "b", "c"))
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[1].GetError() == nil {
		t.Error("expected error for panicking story")
	}
	if results[1].Result != nil {
		t.Error("expected nil result on error")
	}
	if results[0].GetError() != nil || results[2].GetError() != nil {
		t.Error("other stories should be unaffected")
	}
}

func TestBatchProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(&mockRunner{}, 2)
	results := processor.ProcessStories(ctx, stories("a", "b"))

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error == nil {
			t.Errorf("expected cancellation error for %s", res.ID)
		}
	}
}

// cancellingRunner cancels the batch from inside the first story it runs
type cancellingRunner struct {
	cancel context.CancelFunc
	runs   atomic.Int32
}

func (c *cancellingRunner) Run(ctx context.Context, story model.Story) *model.Result {
	c.runs.Add(1)
	c.cancel()
	return &model.Result{ID: story.ID}
}

func TestBatchProcessor_CancelledMidBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := &cancellingRunner{cancel: cancel}
	processor := NewBatchProcessor(runner, 1)
	results := processor.ProcessStories(ctx, stories("a", "b", "c", "d", "e", "f", "g", "h"))

	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	if results[0].Error != nil || results[0].Result == nil {
		t.Errorf("expected first story to finish, got %+v", results[0])
	}
	for _, res := range results[1:] {
		if res == nil || res.Error == nil {
			t.Errorf("expected cancellation error, got %+v", res)
		}
	}
	if n := runner.runs.Load(); n != 1 {
		t.Errorf("expected runner to run once, ran %d times", n)
	}
}

func TestBatchProcessor_ProcessStories_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 2)

	results := processor.ProcessStories(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessPath(t *testing.T) {
	content := `{"id": "one", "text": "Once upon a time, a fox ran."}
# comment

{"id": "two", "text": "Once upon a time, a hen sang."}
`
	path := filepath.Join(t.TempDir(), "stories.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(&mockRunner{}, 2)
	results, err := processor.ProcessPath(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessPath failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "one" || results[1].ID != "two" {
		t.Errorf("unexpected order: %s, %s", results[0].ID, results[1].ID)
	}
}

func TestBatchProcessor_ProcessPath_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 2)

	_, err := processor.ProcessPath(context.Background(), "no_such_file.jsonl")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}
