// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// BatchSummary reports counters for a finished or cancelled batch run.
type BatchSummary struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Folder   string        `json:"folder" yaml:"folder"`
	FileType FileTypeGroup `json:"file_type" yaml:"file_type"`
	MinScore float64       `json:"min_score" yaml:"min_score"`

	// Files is the number of files that passed the allow-list.
	Files int `json:"files" yaml:"files"`

	// Pairs is the number of unordered pairs scheduled.
	Pairs int `json:"pairs" yaml:"pairs"`

	// Compared is the number of pairs actually compared. It is below
	// Pairs only when the run was cancelled.
	Compared int `json:"compared" yaml:"compared"`

	// Kept is the number of pairs at or above MinScore.
	Kept int `json:"kept" yaml:"kept"`

	// Errors counts pairs whose category is CategoryError.
	Errors int `json:"errors" yaml:"errors"`

	Cancelled bool          `json:"cancelled" yaml:"cancelled"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// BatchResult is the outcome of comparing every pair in a folder.
type BatchResult struct {
	Summary BatchSummary `json:"summary" yaml:"summary"`

	// Results holds the kept pairs, highest total first.
	Results []ComparisonResult `json:"results" yaml:"results"`
}

// Total returns the number of pairs scheduled.
func (r BatchResult) Total() int {
	return r.Summary.Pairs
}

// HasFailures reports whether any pair ended in CategoryError.
func (r BatchResult) HasFailures() bool {
	return r.Summary.Errors > 0
}
