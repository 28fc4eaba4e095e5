package model

import "time"

// Story is a single generated story handed to the pipeline
type Story struct {
	ID     string `json:"id"`              // Caller-supplied identifier (file name when loaded from disk)
	Theme  string `json:"theme,omitempty"` // Passed through, never analyzed
	Genre  string `json:"genre,omitempty"` // Passed through, never analyzed
	Title  string `json:"title,omitempty"` // Candidate title, optional
	Text   string `json:"text"`            // Raw generated text
	Source string `json:"-"`               // Where the story was loaded from
}

// Result is the complete outcome of one pipeline run
type Result struct {
	ID          string    `json:"id"`
	ProcessedAt time.Time `json:"processed_at"`

	Original  string `json:"original"`  // Raw input text
	Corrected string `json:"corrected"` // Text after repair

	Repairs []RepairStep `json:"repairs"` // What each repair step did
	Quality Verdict      `json:"quality"` // Verdict on the corrected text

	Title *TitleResult `json:"title,omitempty"` // Nil when title checking is disabled
}

// RepairStep records a single repair step's effect
type RepairStep struct {
	Name    string `json:"name"`
	Changed bool   `json:"changed"`
	Failed  bool   `json:"failed,omitempty"` // Step panicked and was skipped
	Error   string `json:"error,omitempty"`
}

// TitleSource tells where the final title came from
type TitleSource string

const (
	TitleCandidate TitleSource = "candidate" // Candidate kept, similarity above threshold
	TitleDerived   TitleSource = "derived"   // Replaced by first-sentence heuristic
	TitleGenerated TitleSource = "generated" // No candidate supplied
)

// TitleResult describes the title decision
type TitleResult struct {
	Candidate  string      `json:"candidate,omitempty"`
	Title      string      `json:"title"`
	Source     TitleSource `json:"source"`
	Similarity *float64    `json:"similarity,omitempty"` // Nil when similarity was unavailable
	Error      string      `json:"error,omitempty"`      // Why similarity was unavailable
}
