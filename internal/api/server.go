package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/checktree/internal/config"
	"github.com/dgallion1/checktree/internal/session"
	"github.com/dgallion1/checktree/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for checktree.
type Server struct {
	router  chi.Router
	store   *session.Store
	toggles *stats.Latency
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. A nil toggles gets a
// fresh one-hour window.
func NewServer(store *session.Store, toggles *stats.Latency, log *slog.Logger, cfg config.Config) *Server {
	if toggles == nil {
		toggles = stats.NewLatency(time.Hour)
	}
	s := &Server{
		store:   store,
		toggles: toggles,
		log:     log,
		cfg:     cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/trees", s.handleCreateTree)
		r.Post("/api/trees/upload", s.handleUpload)
		r.Post("/api/trees/upload/batch", s.handleBatchUpload)

		r.Route("/api/trees/{treeID}", func(r chi.Router) {
			r.Get("/", s.handleGetTree)
			r.Delete("/", s.handleDeleteTree)
			r.Put("/items", s.handleReplaceItems)
			r.Post("/toggle", s.handleToggle)
			r.Get("/checked", s.handleCollect)
			r.Put("/checked", s.handleSelect)
			r.Post("/filter", s.handleFilter)
			r.Post("/collapse", s.handleCollapse)
			r.Post("/expand", s.handleExpand)
			r.Get("/html", s.handleHTML)
			r.Get("/events", s.handleEvents)
		})

		r.Get("/api/stats/toggles", s.handleToggleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
