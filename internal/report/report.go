// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the immutable analysis bundle a pipeline run
// produces and reads/writes its on-disk YAML form. The analyst can export
// an analysis and reload it later without re-querying the API.
package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/biblioviz/internal/extract"
	"github.com/pdiddy/biblioviz/internal/temporal"
	"github.com/pdiddy/biblioviz/pkg/types"
)

// Report is one analysis run: the equation that produced it, fetch
// statistics, the static count tables, and optionally the rolling-window
// animation frames. It is a value; nothing mutates it after Build.
type Report struct {
	Equation  string             `yaml:"equation" json:"equation"`
	Summary   Summary            `yaml:"summary" json:"summary"`
	Overview  Overview           `yaml:"overview" json:"overview"`
	Animation *types.Aggregation `yaml:"animation,omitempty" json:"animation,omitempty"`
}

// Summary holds fetch statistics and a timestamp.
type Summary struct {
	Fetched        int       `yaml:"fetched" json:"fetched"`
	TotalAvailable int       `yaml:"total_available" json:"total_available"`
	WithYear       int       `yaml:"with_year" json:"with_year"`
	Timestamp      time.Time `yaml:"timestamp" json:"timestamp"`
}

// Overview holds the static count tables behind the non-animated charts.
// WordCounts serves the word cloud (unfiltered tokenizer); Terms serves
// the term bar chart (stop-word and length filtered tokenizer). The two
// deliberately disagree.
type Overview struct {
	WordCounts    []types.CountRow  `yaml:"word_counts" json:"word_counts"`
	Terms         []types.CountRow  `yaml:"terms" json:"terms"`
	Organizations []types.CountRow  `yaml:"organizations" json:"organizations"`
	Countries     []types.CountRow  `yaml:"countries" json:"countries"`
	Authors       []types.CountRow  `yaml:"authors" json:"authors"`
	Years         []types.YearCount `yaml:"years" json:"years"`
}

// BuildOverview derives the static tables from a record set.
func BuildOverview(records []types.Record) Overview {
	ex := extract.Extract(records)

	var terms []string
	for _, rec := range records {
		terms = append(terms, extract.BagOfWords(rec.Title)...)
		terms = append(terms, extract.BagOfWords(rec.Description)...)
	}

	return Overview{
		WordCounts:    extract.Count(ex.Words),
		Terms:         extract.Count(terms),
		Organizations: extract.Count(ex.Organizations),
		Countries:     extract.Count(ex.Countries),
		Authors:       extract.Count(ex.Authors),
		Years:         extract.CountYears(ex.Years),
	}
}

// Build assembles a full report from fetched records. windowMonths > 0
// additionally computes the rolling-window animation frames, clamped to
// the dataset's valid window range.
func Build(equation string, records []types.Record, totalAvailable, windowMonths int) Report {
	ex := extract.Extract(records)
	r := Report{
		Equation: equation,
		Summary: Summary{
			Fetched:        len(records),
			TotalAvailable: totalAvailable,
			WithYear:       len(ex.Years),
			Timestamp:      time.Now().UTC(),
		},
		Overview: BuildOverview(records),
	}
	if windowMonths > 0 {
		ds := temporal.BuildDataset(records)
		agg := temporal.Aggregate(ds, temporal.ClampWindow(ds, windowMonths))
		r.Animation = &agg
	}
	return r
}

// Write saves the report as YAML.
func Write(path string, r Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously saved report from disk.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
