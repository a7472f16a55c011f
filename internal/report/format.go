// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/biblioviz/pkg/types"
)

// FormatTable writes the report overview as human-readable tables to w.
// Each table shows at most top rows; top <= 0 means all rows.
func FormatTable(r Report, w io.Writer, top int) {
	fmt.Fprintf(w, "Equation: %s\n", r.Equation)
	fmt.Fprintf(w, "Fetched %d of %d available records (%d with a publication year)\n",
		r.Summary.Fetched, r.Summary.TotalAvailable, r.Summary.WithYear)

	if r.Summary.Fetched == 0 {
		fmt.Fprintln(w, "\nNo records to analyze.")
		return
	}

	countTable(w, "Terms", r.Overview.Terms, top)
	countTable(w, "Organizations", r.Overview.Organizations, top)
	countTable(w, "Countries", r.Overview.Countries, top)
	countTable(w, "Authors", r.Overview.Authors, top)
	yearTable(w, r.Overview.Years)

	if r.Animation != nil && len(r.Animation.Months) > 0 {
		months := r.Animation.Months
		fmt.Fprintf(w, "\nAnimation: %d monthly frames (%s to %s)\n",
			len(months), months[0], months[len(months)-1])
	}
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(r Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func countTable(w io.Writer, title string, rows []types.CountRow, top int) {
	if len(rows) == 0 {
		return
	}
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	fmt.Fprintf(w, "\n%s\n", title)
	fmt.Fprintf(w, "%-50s  %s\n", "Name", "Count")
	fmt.Fprintln(w, strings.Repeat("-", 57))
	for _, row := range rows {
		name := row.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Fprintf(w, "%-50s  %d\n", name, row.Count)
	}
}

func yearTable(w io.Writer, years []types.YearCount) {
	if len(years) == 0 {
		return
	}
	fmt.Fprintf(w, "\nYears\n")
	fmt.Fprintf(w, "%-6s  %s\n", "Year", "Count")
	fmt.Fprintln(w, strings.Repeat("-", 13))
	for _, y := range years {
		fmt.Fprintf(w, "%-6d  %d\n", y.Year, y.Count)
	}
}
