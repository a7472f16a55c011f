// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"

	"github.com/pdiddy/biblioviz/pkg/types"
)

// Count tallies items into frequency rows sorted by descending count, then
// ascending name. Empty strings are skipped. The ordering is total, so
// identical inputs always produce identical tables.
func Count(items []string) []types.CountRow {
	tally := make(map[string]int)
	for _, it := range items {
		if it != "" {
			tally[it]++
		}
	}
	if len(tally) == 0 {
		return nil
	}
	rows := make([]types.CountRow, 0, len(tally))
	for name, n := range tally {
		rows = append(rows, types.CountRow{Name: name, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// TopN truncates a sorted count table to its first n rows. Non-positive n
// means no limit.
func TopN(rows []types.CountRow, n int) []types.CountRow {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// CountYears tallies years in ascending year order for the
// publications-per-year line chart.
func CountYears(years []int) []types.YearCount {
	tally := make(map[int]int)
	for _, y := range years {
		tally[y]++
	}
	if len(tally) == 0 {
		return nil
	}
	rows := make([]types.YearCount, 0, len(tally))
	for y, n := range tally {
		rows = append(rows, types.YearCount{Year: y, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows
}
