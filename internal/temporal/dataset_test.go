// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/biblioviz/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		coverDate string
		want      time.Time
		ok        bool
	}{
		{"2020", date(2020, time.January, 1), true},
		{"2020-03", date(2020, time.March, 1), true},
		{"2020-03-15", date(2020, time.March, 15), true},
		{"", time.Time{}, false},
		{"n.d.", time.Time{}, false},
		{"2020-13", time.Time{}, false},
		{"March 2020", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.coverDate)
		assert.Equal(t, tt.ok, ok, "ParseDate(%q)", tt.coverDate)
		if tt.ok {
			assert.True(t, got.Equal(tt.want), "ParseDate(%q) = %v, want %v", tt.coverDate, got, tt.want)
		}
	}
}

func TestParseDateIdempotent(t *testing.T) {
	first, ok1 := ParseDate("2021-07")
	second, ok2 := ParseDate("2021-07")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.True(t, first.Equal(second))
}

func strptr(s string) *string { return &s }

func TestBuildDatasetDropsUndatedAndSorts(t *testing.T) {
	records := []types.Record{
		{Title: "later", CoverDate: "2021-05-02"},
		{Title: "undated"},
		{Title: "earlier", CoverDate: "2020"},
		{Title: "junk", CoverDate: "n.d."},
	}
	ds := BuildDataset(records)
	require.Len(t, ds, 2)
	assert.True(t, ds[0].Date.Equal(date(2020, time.January, 1)))
	assert.True(t, ds[1].Date.Equal(date(2021, time.May, 2)))
}

func TestBuildDatasetDeduplicatesPerRecord(t *testing.T) {
	rec := types.Record{
		CoverDate: "2020-03-15",
		Title:     "deep learning",
		Keywords:  types.KeywordField{Text: "deep learning | deep"},
		Affiliations: types.AffiliationList{
			{Country: strptr("USA")},
			{Country: strptr("USA")},
			{Name: strptr("ETH")}, // no country key: contributes nothing here
			{Country: strptr("")}, // empty country dropped
		},
		Authors: types.AuthorList{
			{AuthName: strptr("Doe, J.")},
			{AuthName: strptr("Doe, J.")},
		},
	}
	ds := BuildDataset([]types.Record{rec})
	require.Len(t, ds, 1)
	assert.Equal(t, []string{"USA"}, ds[0].Countries)
	assert.Equal(t, []string{"Doe, J."}, ds[0].Authors)
	assert.Equal(t, []string{"deep", "deep learning", "learning"}, ds[0].Words)
}

func TestBuildDatasetEmpty(t *testing.T) {
	assert.Empty(t, BuildDataset(nil))
	assert.Empty(t, BuildDataset([]types.Record{{Title: "undated"}}))
}
