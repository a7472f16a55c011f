// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package temporal builds the date-indexed dataset behind the animated
// charts and computes rolling-window aggregations over it.
package temporal

import (
	"sort"
	"time"

	"github.com/pdiddy/biblioviz/internal/extract"
	"github.com/pdiddy/biblioviz/pkg/types"
)

// ParseDate resolves a cover date to the first day of its finest resolved
// component: a 4-character "YYYY" becomes January 1, a 7-character
// "YYYY-MM" becomes day 1, and anything else must parse as a full
// YYYY-MM-DD. The boolean is false when the value cannot be resolved.
//
// This parser is deliberately separate from extract.Year: the animation
// path drops records it cannot date, while the static path only needs a
// leading year and tolerates trailing garbage.
func ParseDate(coverDate string) (time.Time, bool) {
	if coverDate == "" {
		return time.Time{}, false
	}
	v := coverDate
	switch len(coverDate) {
	case 4:
		v = coverDate + "-01-01"
	case 7:
		v = coverDate + "-01"
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BuildDataset converts raw records into temporal records sorted ascending
// by date. Records without a resolvable date are dropped entirely: they
// never appear in any animation frame. Countries keep only values actually
// present on the record (no Unknown substitution on this path), and all
// three sets are deduplicated per record.
func BuildDataset(records []types.Record) []types.TemporalRecord {
	var ds []types.TemporalRecord
	for _, rec := range records {
		date, ok := ParseDate(rec.CoverDate)
		if !ok {
			continue
		}
		ds = append(ds, types.TemporalRecord{
			Date:      date,
			Countries: dedupSorted(recordCountries(rec)),
			Authors:   dedupSorted(extract.AuthorNames(rec)),
			Words:     extract.WordSet(rec),
		})
	}
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Date.Before(ds[j].Date) })
	return ds
}

func recordCountries(rec types.Record) []string {
	var out []string
	for _, aff := range rec.Affiliations {
		if aff.Country != nil && *aff.Country != "" {
			out = append(out, *aff.Country)
		}
	}
	return out
}

func dedupSorted(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
