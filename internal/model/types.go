// Package model defines shared data structures.
package model

import "time"

// ScoreConfig defines the resolved scoring settings for a run.
type ScoreConfig struct {
	CorpusPath    string
	Boundaries    []int
	Normalization int
	WeightOffset  int
	WeightPower   int
	CommonWords   int
	CommonFile    string
	Cache         string
	CacheDir      string
	DBPath        string
	Format        string
	Save          bool
}

// ScoreRecord captures a scored book for the history table.
type ScoreRecord struct {
	ID                       int64     `json:"id" yaml:"id"`
	ScoredAt                 time.Time `json:"scored_at" yaml:"scored_at"`
	BookPath                 string    `json:"book_path" yaml:"book_path"`
	BandKey                  string    `json:"band_key" yaml:"band_key"`
	TotalScore               int       `json:"total_score" yaml:"total_score"`
	ScoreExcludingOutOfRange int       `json:"score_excluding_out_of_range" yaml:"score_excluding_out_of_range"`
	V1Score                  int       `json:"v1_score" yaml:"v1_score"`
	WordCount                int       `json:"word_count" yaml:"word_count"`
	BandLabels               []string  `json:"band_labels" yaml:"band_labels"`
	BandCounts               []int     `json:"band_counts" yaml:"band_counts"`
}

// HistoryFilter selects score records. Zero values match everything.
type HistoryFilter struct {
	Book  string
	Since *time.Time
	// Last keeps only the N most recent records.
	Last int
}
