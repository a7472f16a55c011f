// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CountRow is one name/count pair in a frequency table. Month is set only
// on rows belonging to a rolling-window frame ("YYYY-MM").
type CountRow struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
	Month string `json:"month,omitempty" yaml:"month,omitempty"`
}

// YearCount is one year/count pair for the publications-per-year line chart.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// WordFrame holds the word frequencies for one calendar-month anchor. The
// frequencies stay as a mapping because word-cloud rendering consumes raw
// frequencies rather than flattened rows.
type WordFrame struct {
	Month      string         `json:"month" yaml:"month"`
	WordCounts map[string]int `json:"word_counts" yaml:"word_counts"`
}

// Aggregation is the rolling-window output: two long-form tables (one row
// per country or author per month), the per-month word frequencies, and
// the sorted list of months that carry country or author rows.
type Aggregation struct {
	Countries []CountRow  `json:"countries" yaml:"countries"`
	Authors   []CountRow  `json:"authors" yaml:"authors"`
	Words     []WordFrame `json:"words" yaml:"words"`
	Months    []string    `json:"months" yaml:"months"`
}
