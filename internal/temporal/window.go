// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package temporal

import "github.com/pdiddy/biblioviz/pkg/types"

const (
	// DefaultWindow is the window size reported for an empty dataset.
	DefaultWindow = 6

	// MaxWindowMonths caps the window regardless of dataset span, bounding
	// the cost of frame generation.
	MaxWindowMonths = 24
)

// MaxWindow returns the widest permitted rolling window in months for the
// dataset: DefaultWindow when the dataset is empty, 1 when the whole-month
// span between earliest and latest date is at most one month, otherwise
// the span capped at MaxWindowMonths.
func MaxWindow(ds []types.TemporalRecord) int {
	if len(ds) == 0 {
		return DefaultWindow
	}
	minDate, maxDate := dateSpan(ds)
	span := (maxDate.Year()-minDate.Year())*12 + int(maxDate.Month()) - int(minDate.Month())
	if span <= 1 {
		return 1
	}
	if span > MaxWindowMonths {
		return MaxWindowMonths
	}
	return span
}

// ClampWindow snaps a requested window size into [1, MaxWindow(ds)].
func ClampWindow(ds []types.TemporalRecord, requested int) int {
	if requested < 1 {
		return 1
	}
	if limit := MaxWindow(ds); requested > limit {
		return limit
	}
	return requested
}
