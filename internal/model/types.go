// Package model defines shared data structures.
package model

import "time"

// AnalyzeConfig defines settings for a single analysis run.
type AnalyzeConfig struct {
	Lang     string
	DictPath string
	OutDir   string
	NoSave   bool
}

// WordCount pairs a word with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// RunRecord captures a completed analysis run for history.
type RunRecord struct {
	CreatedAt     time.Time
	Input         string
	Paragraphs    int
	Sentences     int
	Phrases       int
	Words         int
	OddWords      int
	DistinctWords int
	StatsReport   string
}

// RunSummary summarizes a stored run for listing.
type RunSummary struct {
	RunID      int64
	CreatedAt  time.Time
	Input      string
	Paragraphs int
	Sentences  int
	Phrases    int
	Words      int
	OddWords   int
}
