package model

import "time"

// ArgumentScore pairs an argument with its aggregated net vote.
type ArgumentScore struct {
	Argument string  `json:"argument"`
	Score    float64 `json:"score"`
}

// PruneReport is the result of a COSAR run: which attacks survived the
// vote-based credibility test, and the extensions of the pruned framework.
type PruneReport struct {
	Source    string    `json:"source"`
	Semantics string    `json:"semantics"`
	RunAt     time.Time `json:"run_at"`

	Scores  []ArgumentScore `json:"scores"`
	Kept    []Attack        `json:"kept"`
	Removed []Attack        `json:"removed"`

	// Extensions of the pruned framework under Semantics, as argument names.
	Extensions [][]string `json:"extensions"`

	LLM *Narration `json:"llm,omitempty"`
}

// RankedExtension is one extension with its satisfaction vector and the
// aggregation key it was ranked by.
type RankedExtension struct {
	Arguments []string  `json:"arguments"`
	Vector    []float64 `json:"vector"`
	Key       []float64 `json:"key"`
}

// SelectionReport is the result of a CSS run: every extension of the
// framework under the chosen semantics, ordered best first, plus the set
// of extensions tied for the best key.
type SelectionReport struct {
	Source      string    `json:"source"`
	Semantics   string    `json:"semantics"`
	Measure     string    `json:"measure"`
	Aggregation string    `json:"aggregation"`
	RunAt       time.Time `json:"run_at"`

	Candidates []RankedExtension `json:"candidates"`
	Best       [][]string        `json:"best"`

	LLM *Narration `json:"llm,omitempty"`
}

// Narration is an optional LLM commentary on a report. It is generated
// after the analysis and never feeds back into scores or rankings.
type Narration struct {
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Summary     string    `json:"summary"`
	TokensUsed  int       `json:"tokens_used,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Error       string    `json:"error,omitempty"`
}
