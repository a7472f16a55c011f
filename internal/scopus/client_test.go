// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/biblioviz/pkg/types"
)

func testClient(baseURL string) *Client {
	return NewClient(types.ScopusConfig{
		HTTPConfig:        types.HTTPConfig{UserAgent: "biblioviz-test/0.1"},
		APIKey:            "test-key",
		BaseURL:           baseURL,
		RequestsPerSecond: 1000, // no pacing in tests
	})
}

func entriesPayload(total int, titles ...string) string {
	entries := ""
	for i, title := range titles {
		if i > 0 {
			entries += ","
		}
		entries += fmt.Sprintf(`{"dc:title":%q}`, title)
	}
	return fmt.Sprintf(`{"search-results":{"opensearch:totalResults":"%d","entry":[%s]}}`, total, entries)
}

func TestSearchSendsHeadersAndParams(t *testing.T) {
	var gotHeader, gotQuery, gotCount, gotStart, gotView string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-ELS-APIKey")
		q := r.URL.Query()
		gotQuery = q.Get("query")
		gotCount = q.Get("count")
		gotStart = q.Get("start")
		gotView = q.Get("view")
		fmt.Fprint(w, entriesPayload(1, "A Study"))
	}))
	defer ts.Close()

	page, err := testClient(ts.URL).Search(context.Background(), `TITLE("ai") AND PUBYEAR > 2019`, 0, 25)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotHeader)
	assert.Equal(t, `TITLE("ai") AND PUBYEAR > 2019`, gotQuery)
	assert.Equal(t, "25", gotCount)
	assert.Equal(t, "0", gotStart)
	assert.Equal(t, "STANDARD", gotView)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "A Study", page.Entries[0].Title)
	assert.Equal(t, 1, page.TotalResults)
}

func TestSearchRateLimitedIsTerminal(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Search(context.Background(), "a AND b", 0, 25)
	require.ErrorIs(t, err, ErrRateLimited)
	// No retry: a single request was made.
	assert.Equal(t, 1, calls)
}

func TestSearchNoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Search(context.Background(), "a AND b", 0, 25)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestSearchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Search(context.Background(), "a AND b", 0, 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestSearchMalformedTotalResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"search-results":{"opensearch:totalResults":"many","entry":[]}}`)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Search(context.Background(), "a AND b", 0, 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total results")
}

func TestSearchAbsentTotalResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"search-results":{"entry":[{"dc:title":"A"}]}}`)
	}))
	defer ts.Close()

	page, err := testClient(ts.URL).Search(context.Background(), "a AND b", 0, 25)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalResults)
	require.Len(t, page.Entries, 1)
}

func TestSearchAllPaginates(t *testing.T) {
	// 60 results requested: pages of 25, 25, 10.
	var starts []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		starts = append(starts, q.Get("start"))
		count, _ := strconv.Atoi(q.Get("count"))
		start, _ := strconv.Atoi(q.Get("start"))
		titles := make([]string, count)
		for i := range titles {
			titles[i] = fmt.Sprintf("paper-%d", start+i)
		}
		fmt.Fprint(w, entriesPayload(200, titles...))
	}))
	defer ts.Close()

	records, available, err := testClient(ts.URL).SearchAll(context.Background(), "a AND b", 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "25", "50"}, starts)
	require.Len(t, records, 60)
	assert.Equal(t, "paper-0", records[0].Title)
	assert.Equal(t, "paper-59", records[59].Title)
	assert.Equal(t, 200, available)
}

func TestSearchAllStopsOnShortPage(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Only 8 results exist in total.
		fmt.Fprint(w, entriesPayload(8, "a", "b", "c", "d", "e", "f", "g", "h"))
	}))
	defer ts.Close()

	records, available, err := testClient(ts.URL).SearchAll(context.Background(), "a AND b", 100)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, records, 8)
	assert.Equal(t, 8, available)
}

func TestSearchAllPropagatesPageFailure(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		titles := make([]string, 25)
		for i := range titles {
			titles[i] = fmt.Sprintf("p%d", i)
		}
		fmt.Fprint(w, entriesPayload(100, titles...))
	}))
	defer ts.Close()

	_, _, err := testClient(ts.URL).SearchAll(context.Background(), "a AND b", 75)
	assert.ErrorIs(t, err, ErrRateLimited)
}
