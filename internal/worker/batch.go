package worker

import (
	"context"
	"fmt"

	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/extract"
	"github.com/abhishekghaisas/StoryTime-A-Short-Story-Generator/internal/model"
)

// Runner runs the QA pipeline over one story
type Runner interface {
	Run(ctx context.Context, story model.Story) *model.Result
}

// StoryJob represents one story queued for QA
type StoryJob struct {
	Index  int
	Story  model.Story
	Runner Runner
}

// Execute executes the job. A panicking runner is reported as an error
// for this story only.
func (j *StoryJob) Execute(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = &StoryResult{Index: j.Index, ID: j.Story.ID, Error: fmt.Errorf("pipeline panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return &StoryResult{Index: j.Index, ID: j.Story.ID, Error: err}
	}

	return &StoryResult{
		Index:  j.Index,
		ID:     j.Story.ID,
		Result: j.Runner.Run(ctx, j.Story),
	}
}

// StoryResult represents the outcome of a story job
type StoryResult struct {
	Index  int
	ID     string
	Result *model.Result
	Error  error
}

// GetError returns the error from the story result
func (r *StoryResult) GetError() error {
	return r.Error
}

// BatchProcessor runs many stories through a Runner concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessStories processes stories concurrently. Results come back in
// input order; stories never started because ctx ended carry ctx's error.
func (b *BatchProcessor) ProcessStories(ctx context.Context, stories []model.Story) []*StoryResult {
	if len(stories) == 0 {
		return []*StoryResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	submitted := true
	for i, story := range stories {
		job := &StoryJob{
			Index:  i,
			Story:  story,
			Runner: b.runner,
		}
		if !pool.Submit(job) {
			submitted = false
			break
		}
	}

	// A rejected submit means ctx ended; keep only what already finished
	var results []Result
	if submitted {
		results = pool.Wait()
	} else {
		results = pool.Shutdown()
	}

	out := make([]*StoryResult, len(stories))
	for _, result := range results {
		sr := result.(*StoryResult)
		out[sr.Index] = sr
	}
	for i := range out {
		if out[i] == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = &StoryResult{Index: i, ID: stories[i].ID, Error: err}
		}
	}

	return out
}

// ProcessPath loads stories from a file or directory and processes them
func (b *BatchProcessor) ProcessPath(ctx context.Context, path string) ([]*StoryResult, error) {
	stories, err := extract.LoadStories(path)
	if err != nil {
		return nil, fmt.Errorf("load stories: %w", err)
	}

	return b.ProcessStories(ctx, stories), nil
}
