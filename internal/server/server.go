// Package server provides the preview HTTP server: it exposes the emitted
// navigation artifacts, resolve history, health, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/emit"
	"git.home.luguber.info/inful/navbuilder/internal/history"
	"git.home.luguber.info/inful/navbuilder/internal/logfields"
	"git.home.luguber.info/inful/navbuilder/internal/metrics"
	"git.home.luguber.info/inful/navbuilder/internal/util/sets"
)

// Server serves the output directory and a small JSON API.
type Server struct {
	cfg     *config.Config
	locales sets.Set[string]
	store   *history.Store // optional
	httpSrv *http.Server
}

// New creates a preview server. registry may be nil to disable /metrics;
// store may be nil to disable /api/history.
func New(cfg *config.Config, registry *prom.Registry, store *history.Store) *Server {
	s := &Server{
		cfg:     cfg,
		locales: sets.New(cfg.Site.Locales...),
		store:   store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/nav/{locale}", s.handleNav)
	mux.HandleFunc("GET /api/manifest", s.handleManifest)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	if registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(registry))
	}
	mux.Handle("/", http.FileServer(http.Dir(cfg.Output.Dir)))

	s.httpSrv = &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the routing for tests.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", slog.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleNav serves the resolved sidebar for one locale.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	locale := r.PathValue("locale")
	if !s.locales.Has(locale) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown locale " + locale})
		return
	}
	s.serveArtifact(w, r, "sidebar."+locale+".json")
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, "manifest.json")
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history not configured"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("History query failed", logfields.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history query failed"})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// serveArtifact streams an emitted JSON file, 404ing when no resolve run has
// produced it yet.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, name string) {
	path := emit.NewWriter(s.cfg.Output.Dir).Path(name)
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": name + " not generated yet"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to encode response", logfields.Error(err))
	}
}
