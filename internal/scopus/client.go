// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scopus queries the Scopus Search API: single-page fetches, the
// sequential pagination wrapper, and the minimal search-equation check.
package scopus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/biblioviz/pkg/types"
)

// defaultBaseURL is the Scopus Search endpoint. Tests substitute an
// httptest server through ScopusConfig.BaseURL.
const defaultBaseURL = "https://api.elsevier.com/content/search/scopus"

// PageSize is the fixed page size used by SearchAll.
const PageSize = 25

var (
	// ErrRateLimited reports an HTTP 429. The client performs no retry or
	// backoff: the condition is terminal for the invocation and surfaces
	// to the caller as-is.
	ErrRateLimited = errors.New("scopus: rate limit exceeded")

	// ErrNoContent reports an HTTP 204 for the given search equation.
	ErrNoContent = errors.New("scopus: no content for search equation")
)

// Client calls the Scopus Search API. It is a plain value constructed by
// and owned by the caller; there is no shared process-wide instance.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	view       string
	userAgent  string
}

// NewClient builds a client from configuration, applying defaults for
// anything unset.
func NewClient(cfg types.ScopusConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	view := cfg.View
	if view == "" {
		view = "STANDARD"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		view:       view,
		userAgent:  cfg.UserAgent,
	}
}

// Page is one decoded page of search results.
type Page struct {
	Entries []types.Record

	// TotalResults is the total available count reported by the API,
	// independent of how many entries this page carries.
	TotalResults int
}

// searchEnvelope mirrors the Scopus response wrapper. The total count
// arrives as a string.
type searchEnvelope struct {
	SearchResults struct {
		TotalResults string         `json:"opensearch:totalResults"`
		Entry        []types.Record `json:"entry"`
	} `json:"search-results"`
}

// Search fetches one page of results starting at the given offset.
func (c *Client) Search(ctx context.Context, eq Equation, start, count int) (*Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"query": {string(eq)},
		"count": {strconv.Itoa(count)},
		"start": {strconv.Itoa(start)},
		"view":  {c.view},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-ELS-APIKey", c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scopus request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusNoContent:
		return nil, ErrNoContent
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("scopus returned HTTP %d", resp.StatusCode)
	}

	var env searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing scopus response: %w", err)
	}

	// An absent total means zero; a present but non-numeric one is a
	// malformed envelope and surfaces as an error.
	total := 0
	if raw := env.SearchResults.TotalResults; raw != "" {
		total, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing total results %q: %w", raw, err)
		}
	}
	return &Page{Entries: env.SearchResults.Entry, TotalResults: total}, nil
}

// SearchAll fetches up to total results in sequential fixed-size pages and
// concatenates the entries, stopping early when a page comes back short.
// It returns the entries plus the total-available count reported by the
// API. Any page failure aborts the whole invocation.
func (c *Client) SearchAll(ctx context.Context, eq Equation, total int) ([]types.Record, int, error) {
	if total <= 0 {
		total = PageSize
	}

	var all []types.Record
	available := 0
	for start := 0; start < total; start += PageSize {
		count := PageSize
		if remaining := total - start; remaining < count {
			count = remaining
		}

		page, err := c.Search(ctx, eq, start, count)
		if err != nil {
			return nil, 0, err
		}
		all = append(all, page.Entries...)
		available = page.TotalResults

		if len(page.Entries) < count {
			break
		}
	}
	return all, available, nil
}
