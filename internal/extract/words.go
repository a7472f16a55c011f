// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/biblioviz/pkg/types"
)

// wordRun matches a maximal run of word characters (letters, digits,
// underscore).
var wordRun = regexp.MustCompile(`\w+`)

// stopWords are common English words excluded from the bar-chart bag of
// words. The word-cloud tokenizer deliberately does not use them.
var stopWords = map[string]struct{}{
	"and": {}, "the": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// CloudTokens lowercases the text and returns every maximal run of word
// characters, single-character tokens included. This is the word-cloud and
// animation tokenizer; it is intentionally distinct from BagOfWords, which
// serves the term bar chart with a stricter filter.
func CloudTokens(text string) []string {
	return wordRun.FindAllString(strings.ToLower(text), -1)
}

// BagOfWords lowercases the text, replaces every non-alphabetic character
// with a space, and keeps tokens longer than two characters that are not
// stop words. This is the term bar-chart tokenizer.
func BagOfWords(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var out []string
	for _, w := range strings.Fields(b.String()) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Keywords returns the lowercased keyword list for a record: split on the
// literal " | " delimiter when the field arrived as a single string,
// element-wise (no further splitting) when it arrived as a list. Empty
// keywords are dropped.
func Keywords(k types.KeywordField) []string {
	if len(k.List) > 0 {
		out := make([]string, 0, len(k.List))
		for _, kw := range k.List {
			if kw = strings.ToLower(kw); kw != "" {
				out = append(out, kw)
			}
		}
		return out
	}
	if k.Text == "" {
		return nil
	}
	var out []string
	for _, kw := range strings.Split(k.Text, " | ") {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// WordSet builds a record's deduplicated word set from its keywords, title,
// and description using the CloudTokens rule. The result is sorted so
// repeated runs over the same input are identical.
func WordSet(rec types.Record) []string {
	seen := make(map[string]struct{})
	for _, w := range Keywords(rec.Keywords) {
		seen[w] = struct{}{}
	}
	for _, w := range CloudTokens(rec.Title) {
		seen[w] = struct{}{}
	}
	for _, w := range CloudTokens(rec.Description) {
		seen[w] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
