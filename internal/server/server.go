// Package server exposes the deck service over HTTP. The API surface is
// thin on purpose: reads, backup import/export and a health probe. All
// heavy lifting stays in the deck and backup packages.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lazycat-apps/milka/internal/backup"
	"github.com/lazycat-apps/milka/internal/deck"
	"github.com/lazycat-apps/milka/internal/version"
)

// Config carries the handler-level settings.
type Config struct {
	StaticDir      string
	AllowedOrigins []string
}

// Server wires the deck service and the backup reconciler into an HTTP
// handler. Flush is optional; when set it runs after every successful
// mutating request to persist the file store.
type Server struct {
	service  *deck.Service
	exporter *backup.Exporter
	importer *backup.Importer
	config   Config
	logger   *slog.Logger
	flush    func() error
	now      func() time.Time
}

func New(service *deck.Service, exporter *backup.Exporter, importer *backup.Importer, cfg Config, logger *slog.Logger, flush func() error) *Server {
	return &Server{
		service:  service,
		exporter: exporter,
		importer: importer,
		config:   cfg,
		logger:   logger,
		flush:    flush,
		now:      time.Now,
	}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/stats", s.handleStats)
		r.Get("/themes", s.handleThemes)
		r.Get("/themes/{themeID}/cards", s.handleThemeCards)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
	})

	if s.config.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.config.StaticDir)))
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "milka-backend",
		"version":   version.Version,
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Statistics(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.service.Themes(r.Context(), deck.ListOptions{PinnedFirst: true})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, themes)
}

func (s *Server) handleThemeCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.service.GetThemeCards(r.Context(), chi.URLParam(r, "themeID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.exporter.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("milka-backup-%s.json", s.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		s.logger.Error("encode export", "error", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	mode, err := backup.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	doc, err := backup.Parse(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stats, err := s.importer.Import(r.Context(), doc, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.flush != nil {
		if err := s.flush(); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		formatErr   *backup.FormatError
		notFoundErr *deck.NotFoundError
		validErr    *deck.ValidationError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &formatErr), errors.As(err, &validErr):
		status = http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
