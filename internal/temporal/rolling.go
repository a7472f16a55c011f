// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package temporal

import (
	"sort"
	"time"

	"github.com/jinzhu/now"

	"github.com/pdiddy/biblioviz/internal/extract"
	"github.com/pdiddy/biblioviz/pkg/types"
)

const (
	// TopAuthors is the per-frame cap on author rows.
	TopAuthors = 25
	// TopWords is the per-frame cap on word-cloud frequencies.
	TopWords = 100

	monthLayout = "2006-01"
)

// Aggregate computes rolling-window counts over the dataset. One candidate
// frame exists per calendar month from the earliest to the latest record
// date; each covers the trailing windowMonths calendar months ending at
// and including the anchor month. Anchors whose window holds no records
// contribute nothing — frames are omitted, not zero-filled. Author frames
// keep the TopAuthors most frequent authors, word frames the TopWords most
// frequent words; ties break lexicographically so repeated runs over the
// same input are identical.
//
// windowMonths below 1 is treated as 1; out-of-range sizes degrade rather
// than fail, callers validate against MaxWindow.
func Aggregate(ds []types.TemporalRecord, windowMonths int) types.Aggregation {
	var agg types.Aggregation
	if len(ds) == 0 {
		return agg
	}
	if windowMonths < 1 {
		windowMonths = 1
	}

	minDate, maxDate := dateSpan(ds)
	months := make(map[string]struct{})

	for anchor := now.With(minDate).BeginningOfMonth(); !anchor.After(maxDate); anchor = anchor.AddDate(0, 1, 0) {
		windowStart := anchor.AddDate(0, -(windowMonths - 1), 0)
		windowEnd := now.With(anchor).EndOfMonth()

		var selected int
		var countries, authors, words []string
		for _, tr := range ds {
			if tr.Date.Before(windowStart) || tr.Date.After(windowEnd) {
				continue
			}
			selected++
			countries = append(countries, tr.Countries...)
			authors = append(authors, tr.Authors...)
			words = append(words, tr.Words...)
		}
		if selected == 0 {
			continue
		}

		month := anchor.Format(monthLayout)

		if rows := extract.Count(countries); len(rows) > 0 {
			for i := range rows {
				rows[i].Month = month
			}
			agg.Countries = append(agg.Countries, rows...)
			months[month] = struct{}{}
		}
		if rows := extract.TopN(extract.Count(authors), TopAuthors); len(rows) > 0 {
			for i := range rows {
				rows[i].Month = month
			}
			agg.Authors = append(agg.Authors, rows...)
			months[month] = struct{}{}
		}
		if freqs := topWordCounts(words, TopWords); len(freqs) > 0 {
			agg.Words = append(agg.Words, types.WordFrame{Month: month, WordCounts: freqs})
		}
	}

	agg.Months = sortedMonths(months)
	return agg
}

func dateSpan(ds []types.TemporalRecord) (minDate, maxDate time.Time) {
	minDate, maxDate = ds[0].Date, ds[0].Date
	for _, tr := range ds[1:] {
		if tr.Date.Before(minDate) {
			minDate = tr.Date
		}
		if tr.Date.After(maxDate) {
			maxDate = tr.Date
		}
	}
	return minDate, maxDate
}

// topWordCounts keeps the n most frequent words as a frequency mapping.
func topWordCounts(words []string, n int) map[string]int {
	rows := extract.TopN(extract.Count(words), n)
	if len(rows) == 0 {
		return nil
	}
	freqs := make(map[string]int, len(rows))
	for _, r := range rows {
		freqs[r.Name] = r.Count
	}
	return freqs
}

func sortedMonths(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
