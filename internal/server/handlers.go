// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/biblioviz/internal/extract"
	"github.com/pdiddy/biblioviz/internal/report"
	"github.com/pdiddy/biblioviz/internal/scopus"
	"github.com/pdiddy/biblioviz/internal/session"
	"github.com/pdiddy/biblioviz/internal/temporal"
	"github.com/pdiddy/biblioviz/pkg/types"
)

type searchRequest struct {
	Equation string `json:"equation"`
	Limit    int    `json:"limit"`
}

type searchResponse struct {
	ID             string `json:"id"`
	Equation       string `json:"equation"`
	Fetched        int    `json:"fetched"`
	TotalAvailable int    `json:"total_available"`
}

// startSearch runs a search equation against the API and stores the
// fetched records as a new session.
func (s *Server) startSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eq, err := scopus.ParseEquation(req.Equation)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.analysis.MaxResults
	}

	records, available, err := s.client.SearchAll(r.Context(), eq, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("equation", req.Equation).Msg("search failed")
		status := http.StatusBadGateway
		if errors.Is(err, scopus.ErrRateLimited) {
			status = http.StatusTooManyRequests
		}
		writeError(w, status, err.Error())
		return
	}

	id, err := s.store.Save(r.Context(), req.Equation, records, available)
	if err != nil {
		s.logger.Error().Err(err).Msg("storing search session")
		writeError(w, http.StatusInternalServerError, "storing search session")
		return
	}

	s.logger.Info().Str("id", id).Int("fetched", len(records)).Int("available", available).Msg("search stored")
	writeJSON(w, http.StatusCreated, searchResponse{
		ID:             id,
		Equation:       req.Equation,
		Fetched:        len(records),
		TotalAvailable: available,
	})
}

func (s *Server) listSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing searches")
		return
	}
	if searches == nil {
		searches = []session.Summary{}
	}
	writeJSON(w, http.StatusOK, searches)
}

// getOverview returns the static count tables for a stored search,
// optionally restricted to an inclusive publication-year range.
func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	set, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	records := set.Records
	start, startSet, err := intParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start year")
		return
	}
	end, endSet, err := intParam(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end year")
		return
	}
	if startSet || endSet {
		if !startSet {
			start = 0
		}
		if !endSet {
			end = 9999
		}
		records = extract.FilterByPeriod(records, start, end)
	}

	ov := report.BuildOverview(records)
	top := s.analysis.TopEntries
	if top > 0 {
		ov.WordCounts = extract.TopN(ov.WordCounts, top)
		ov.Terms = extract.TopN(ov.Terms, top)
		ov.Organizations = extract.TopN(ov.Organizations, top)
		ov.Countries = extract.TopN(ov.Countries, top)
		ov.Authors = extract.TopN(ov.Authors, top)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       set.ID,
		"equation": set.Equation,
		"fetched":  len(records),
		"overview": ov,
	})
}

// getFrames returns the rolling-window animation frames for a stored
// search. The requested window is clamped to the dataset's valid range;
// authors are zero-filled per month so bar charts animate smoothly.
func (s *Server) getFrames(w http.ResponseWriter, r *http.Request) {
	set, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	window, windowSet, err := intParam(r, "window")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid window")
		return
	}
	if !windowSet {
		window = s.analysis.DefaultWindow
	}

	ds := temporal.BuildDataset(set.Records)
	window = temporal.ClampWindow(ds, window)
	agg := temporal.Aggregate(ds, window)
	agg.Authors = densifyAuthors(agg.Authors, agg.Months)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       set.ID,
		"equation": set.Equation,
		"window":   window,
		"frames":   agg,
	})
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.SearchSet, bool) {
	id := chi.URLParam(r, "id")
	set, err := s.store.Load(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "search not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("loading search session")
		writeError(w, http.StatusInternalServerError, "loading search session")
		return nil, false
	}
	return set, true
}

// intParam reads an optional integer query parameter. The second return
// reports whether the parameter was present.
func intParam(r *http.Request, name string) (int, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}

// densifyAuthors zero-fills the author table so every author that appears
// anywhere in the animation has a row in every populated month. Bar-chart
// animations need a constant category set to tween between frames.
func densifyAuthors(rows []types.CountRow, months []string) []types.CountRow {
	if len(rows) == 0 || len(months) == 0 {
		return rows
	}

	names := map[string]bool{}
	byMonth := map[string]map[string]int{}
	for _, row := range rows {
		names[row.Name] = true
		if byMonth[row.Month] == nil {
			byMonth[row.Month] = map[string]int{}
		}
		byMonth[row.Month][row.Name] = row.Count
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	out := make([]types.CountRow, 0, len(months)*len(sorted))
	for _, month := range months {
		monthRows := make([]types.CountRow, 0, len(sorted))
		for _, name := range sorted {
			monthRows = append(monthRows, types.CountRow{
				Name:  name,
				Count: byMonth[month][name],
				Month: month,
			})
		}
		sort.SliceStable(monthRows, func(i, j int) bool {
			if monthRows[i].Count != monthRows[j].Count {
				return monthRows[i].Count > monthRows[j].Count
			}
			return monthRows[i].Name < monthRows[j].Name
		})
		out = append(out, monthRows...)
	}
	return out
}
