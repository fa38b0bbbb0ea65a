// Package api serves the editing core over HTTP. Every request carries the
// full document, so the server keeps no per-document state.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iw2rmb/smedit"
	"github.com/iw2rmb/smedit/engine"
	"github.com/iw2rmb/smedit/internal/config"
)

// maxBody bounds request documents.
const maxBody = 8 << 20

type Server struct {
	router chi.Router
	eng    engine.Engine
	log    *slog.Logger
	cfg    config.Config
}

func NewServer(e engine.Engine, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		eng: e,
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/highlight", s.handleHighlight)
		r.Post("/active", s.handleActive)
		r.Post("/toggle", s.handleToggle)
		r.Post("/wrap", s.handleWrap)
		r.Post("/sections", s.handleSections)
		r.Post("/preview/anchors", s.handleAnchors)

		r.Route("/table", func(r chi.Router) {
			r.Post("/parse", s.handleTableParse)
			r.Post("/merge", s.handleTableMerge)
			r.Post("/split", s.handleTableSplit)
			r.Post("/serialize", s.handleTableSerialize)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "version": smedit.Version()})
}
