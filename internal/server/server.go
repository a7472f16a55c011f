// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the dashboard: a JSON API over stored searches
// plus a single embedded HTML page that renders the charts.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pdiddy/biblioviz/internal/scopus"
	"github.com/pdiddy/biblioviz/internal/session"
	"github.com/pdiddy/biblioviz/pkg/types"
)

//go:embed index.html
var indexHTML embed.FS

// Searcher is the slice of the Scopus client the server needs.
type Searcher interface {
	SearchAll(ctx context.Context, eq scopus.Equation, total int) ([]types.Record, int, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	client     Searcher
	store      *session.Store
	analysis   types.AnalysisConfig
	logger     zerolog.Logger
}

// NewServer wires the dashboard server from its dependencies.
func NewServer(cfg types.ServerConfig, analysis types.AnalysisConfig, client Searcher, store *session.Store, logger zerolog.Logger) *Server {
	s := &Server{
		client:   client,
		store:    store,
		analysis: analysis,
		logger:   logger.With().Str("component", "http-server").Logger(),
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthHandler)
	r.Get("/", s.indexHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.startSearch)
		r.Get("/searches", s.listSearches)
		r.Get("/searches/{id}/overview", s.getOverview)
		r.Get("/searches/{id}/frames", s.getFrames)
	})

	return r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("dashboard server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) indexHandler(w http.ResponseWriter, _ *http.Request) {
	data, err := indexHTML.ReadFile("index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dashboard page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent; nothing useful left to do.
		_ = err
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
