// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the biblioviz pipeline:
// raw Scopus records, the flat facts extracted from them, and the count
// tables and frames the aggregation stages produce.
package types

import (
	"encoding/json"
	"time"
)

// Record is one raw search-result entry from the Scopus Search API. Every
// field is optional, and several arrive in inconsistent shapes (scalar or
// list); decoding tolerates all of them. Raw retains the original JSON so
// a session store can round-trip the entry.
type Record struct {
	Title        string          `json:"dc:title"`
	Description  string          `json:"dc:description"`
	Creator      string          `json:"dc:creator"`
	CoverDate    string          `json:"prism:coverDate"`
	Keywords     KeywordField    `json:"authkeywords"`
	Affiliations AffiliationList `json:"affiliation"`
	Authors      AuthorList      `json:"author"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the entry and keeps a copy of the source bytes.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = Record(a)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// KeywordField holds the authkeywords value, which arrives either as a
// single pipe-delimited string or as a list of strings. Exactly one of
// Text and List is set; both stay empty when the field is absent or has
// an unexpected shape.
type KeywordField struct {
	Text string
	List []string
}

// UnmarshalJSON accepts a string, a list of strings, or null. Any other
// shape degrades to an absent field rather than an error.
func (k *KeywordField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		k.Text = s
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		k.List = list
	}
	return nil
}

// MarshalJSON writes the value back in the shape it arrived in.
func (k KeywordField) MarshalJSON() ([]byte, error) {
	if k.List != nil {
		return json.Marshal(k.List)
	}
	return json.Marshal(k.Text)
}

// Affiliation is one affiliation entry. Sub-fields stay nil when absent so
// extraction can substitute its placeholder value.
type Affiliation struct {
	Name    *string `json:"affilname,omitempty"`
	Country *string `json:"affiliation-country,omitempty"`
}

// AffiliationList accepts either a single affiliation object or a list of
// them. Unexpected shapes decode to an empty list.
type AffiliationList []Affiliation

func (a *AffiliationList) UnmarshalJSON(data []byte) error {
	var list []Affiliation
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}
	var one Affiliation
	if err := json.Unmarshal(data, &one); err == nil {
		*a = AffiliationList{one}
	}
	return nil
}

// Author is one author entry. A display name may be given directly or be
// synthesized from surname and given name by the extraction stage.
type Author struct {
	AuthName  *string `json:"authname,omitempty"`
	GivenName *string `json:"given-name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
}

// AuthorList accepts either a single author object or a list of them.
// Unexpected shapes decode to an empty list.
type AuthorList []Author

func (a *AuthorList) UnmarshalJSON(data []byte) error {
	var list []Author
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}
	var one Author
	if err := json.Unmarshal(data, &one); err == nil {
		*a = AuthorList{one}
	}
	return nil
}

// Facts is the normalized flat extraction from one record (static path).
// Words is the record's deduplicated word set; Year is nil when the cover
// date is missing or does not start with a parseable year.
type Facts struct {
	Words         []string
	Organizations []string
	Countries     []string
	Year          *int
	Authors       []string
}

// TemporalRecord is the date-bearing extraction from one record (animation
// path). The date is resolved to the first day of the finest component the
// cover date provided. All three sets are deduplicated per record.
type TemporalRecord struct {
	Date      time.Time
	Countries []string
	Authors   []string
	Words     []string
}
