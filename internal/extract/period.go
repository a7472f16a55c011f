// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "github.com/pdiddy/biblioviz/pkg/types"

// FilterByPeriod returns the records whose cover-date year falls within
// [startYear, endYear], inclusive on both ends, preserving input order.
// Records with a missing or unparsable date are dropped. An inverted range
// yields an empty result rather than an error; callers pre-validate bounds.
func FilterByPeriod(records []types.Record, startYear, endYear int) []types.Record {
	var out []types.Record
	for _, rec := range records {
		y := Year(rec.CoverDate)
		if y == nil {
			continue
		}
		if *y >= startYear && *y <= endYear {
			out = append(out, rec)
		}
	}
	return out
}
