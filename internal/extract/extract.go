// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract normalizes raw Scopus records into flat typed facts and
// tallies them into the count tables the static charts consume.
package extract

import (
	"strconv"

	"github.com/pdiddy/biblioviz/pkg/types"
)

// Unknown is the placeholder substituted for an absent affiliation
// organization or country. It is a deliberate value, not an error marker.
const Unknown = "Unknown"

// Normalize converts one raw record into flat facts. It never fails: every
// missing or malformed field degrades to an empty value or to the Unknown
// placeholder.
func Normalize(rec types.Record) types.Facts {
	f := types.Facts{
		Words:   WordSet(rec),
		Authors: AuthorNames(rec),
		Year:    Year(rec.CoverDate),
	}
	for _, aff := range rec.Affiliations {
		f.Organizations = append(f.Organizations, orUnknown(aff.Name))
		f.Countries = append(f.Countries, orUnknown(aff.Country))
	}
	return f
}

func orUnknown(s *string) string {
	if s == nil {
		return Unknown
	}
	return *s
}

// Year parses the leading four characters of a cover date. It returns nil
// when the date is missing or does not start with an integer year, making
// the recovery visible in the signature rather than hidden in the caller.
func Year(coverDate string) *int {
	if len(coverDate) < 4 {
		return nil
	}
	y, err := strconv.Atoi(coverDate[:4])
	if err != nil {
		return nil
	}
	return &y
}

// AuthorNames extracts author display names from a record: authname when
// present, otherwise "surname, given-name" (bare surname when the given
// name is missing). When no structured author yields a name, the single
// dc:creator string is the fallback.
func AuthorNames(rec types.Record) []string {
	var names []string
	for _, a := range rec.Authors {
		if name := authorName(a); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 && rec.Creator != "" {
		names = append(names, rec.Creator)
	}
	return names
}

func authorName(a types.Author) string {
	if a.AuthName != nil && *a.AuthName != "" {
		return *a.AuthName
	}
	if a.Surname == nil || *a.Surname == "" {
		return ""
	}
	if a.GivenName != nil && *a.GivenName != "" {
		return *a.Surname + ", " + *a.GivenName
	}
	return *a.Surname
}

// Extraction holds the flat fact sequences across all records, in input
// order. Nothing is deduplicated across records: repeats are what drive
// the frequency counts downstream. Years skips records without a parseable
// year, so it may be shorter than the record count.
type Extraction struct {
	Words         []string
	Organizations []string
	Countries     []string
	Years         []int
	Authors       []string
}

// Extract applies Normalize across the records and concatenates the
// per-record facts.
func Extract(records []types.Record) Extraction {
	var out Extraction
	for _, rec := range records {
		f := Normalize(rec)
		out.Words = append(out.Words, f.Words...)
		out.Organizations = append(out.Organizations, f.Organizations...)
		out.Countries = append(out.Countries, f.Countries...)
		out.Authors = append(out.Authors, f.Authors...)
		if f.Year != nil {
			out.Years = append(out.Years, *f.Year)
		}
	}
	return out
}
