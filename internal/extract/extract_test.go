// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/biblioviz/pkg/types"
)

func strptr(s string) *string { return &s }

func TestNormalizeSubstitutesUnknown(t *testing.T) {
	rec := types.Record{
		Affiliations: types.AffiliationList{
			{Name: strptr("MIT"), Country: strptr("USA")},
			{Name: strptr("ETH")},
			{Country: strptr("France")},
			{},
		},
	}
	f := Normalize(rec)
	assert.Equal(t, []string{"MIT", "ETH", Unknown, Unknown}, f.Organizations)
	assert.Equal(t, []string{"USA", Unknown, "France", Unknown}, f.Countries)
}

func TestNormalizeEmptyRecord(t *testing.T) {
	f := Normalize(types.Record{})
	assert.Empty(t, f.Words)
	assert.Empty(t, f.Organizations)
	assert.Empty(t, f.Countries)
	assert.Empty(t, f.Authors)
	assert.Nil(t, f.Year)
}

func TestYear(t *testing.T) {
	tests := []struct {
		coverDate string
		want      *int
	}{
		{"2020-03-15", intptr(2020)},
		{"2020-03", intptr(2020)},
		{"2020", intptr(2020)},
		{"19", nil},
		{"", nil},
		{"n.d.", nil},
		{"20xx-01-01", nil},
	}
	for _, tt := range tests {
		got := Year(tt.coverDate)
		if tt.want == nil {
			assert.Nil(t, got, "Year(%q)", tt.coverDate)
		} else {
			require.NotNil(t, got, "Year(%q)", tt.coverDate)
			assert.Equal(t, *tt.want, *got, "Year(%q)", tt.coverDate)
		}
	}
}

func intptr(n int) *int { return &n }

func TestAuthorNames(t *testing.T) {
	tests := []struct {
		name string
		rec  types.Record
		want []string
	}{
		{
			"authname preferred",
			types.Record{Authors: types.AuthorList{{AuthName: strptr("Doe, J."), Surname: strptr("Doe")}}},
			[]string{"Doe, J."},
		},
		{
			"synthesized from surname and given name",
			types.Record{Authors: types.AuthorList{{Surname: strptr("Doe"), GivenName: strptr("Jane")}}},
			[]string{"Doe, Jane"},
		},
		{
			"bare surname",
			types.Record{Authors: types.AuthorList{{Surname: strptr("Doe")}}},
			[]string{"Doe"},
		},
		{
			"creator fallback",
			types.Record{Creator: "Roe R."},
			[]string{"Roe R."},
		},
		{
			"structured authors suppress creator",
			types.Record{Creator: "Roe R.", Authors: types.AuthorList{{AuthName: strptr("Doe, J.")}}},
			[]string{"Doe, J."},
		},
		{
			"nameless authors fall back to creator",
			types.Record{Creator: "Roe R.", Authors: types.AuthorList{{GivenName: strptr("Jane")}}},
			[]string{"Roe R."},
		},
		{"nothing", types.Record{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AuthorNames(tt.rec))
		})
	}
}

func TestExtractConcatenatesInOrder(t *testing.T) {
	records := []types.Record{
		{
			CoverDate: "2020-01-01",
			Affiliations: types.AffiliationList{
				{Name: strptr("MIT"), Country: strptr("USA")},
				{Name: strptr("ETH"), Country: strptr("Switzerland")},
			},
		},
		{
			CoverDate:    "bad-date",
			Affiliations: types.AffiliationList{{Country: strptr("France")}},
		},
	}
	ex := Extract(records)

	// One organization and one country per affiliation entry, in order.
	assert.Equal(t, []string{"MIT", "ETH", Unknown}, ex.Organizations)
	assert.Equal(t, []string{"USA", "Switzerland", "France"}, ex.Countries)

	// The unparsable date contributes no year: the sequence is shorter
	// than the record count.
	assert.Equal(t, []int{2020}, ex.Years)
}

func TestExtractAffiliationCountProperty(t *testing.T) {
	records := []types.Record{
		{Affiliations: types.AffiliationList{{}, {}, {}}},
		{},
		{Affiliations: types.AffiliationList{{Name: strptr("MIT")}}},
	}
	ex := Extract(records)
	require.Len(t, ex.Organizations, 4)
	require.Len(t, ex.Countries, 4)
}

func TestExtractKeepsCrossRecordDuplicates(t *testing.T) {
	rec := types.Record{Affiliations: types.AffiliationList{{Name: strptr("MIT"), Country: strptr("USA")}}}
	ex := Extract([]types.Record{rec, rec})
	assert.Equal(t, []string{"MIT", "MIT"}, ex.Organizations)
	assert.Equal(t, []string{"USA", "USA"}, ex.Countries)
}
