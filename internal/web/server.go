// Package web provides the HTTP server and handlers for the storefront lists.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/storefront/internal/config"
	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/i18n"
	"github.com/JonMunkholm/storefront/internal/web/middleware"
)

// Server is the HTTP server for the storefront back office.
type Server struct {
	service  *core.Service
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
	sessions *sessionStore
	metrics  *middleware.Metrics
	validate *validator.Validate
	locale   i18n.Locale // Fallback when the request names none
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service:  service,
		cfg:      cfg,
		router:   chi.NewRouter(),
		sessions: newSessionStore(cfg.Session),
		metrics:  middleware.NewMetrics(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		locale:   i18n.Parse(cfg.Locale.Default),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(s.metrics.Instrument)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(middleware.RateLimit("requests", s.cfg.Rate.RequestsPerMinute))
	}

	s.router.Use(s.negotiateLocale)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// Pages
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/{portal}/{list}", s.handleListPage)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/lists", s.handleListLists)
		r.Get("/audit", s.handleAuditLog)

		r.Route("/lists/{list}", func(r chi.Router) {
			r.Get("/", s.handleListView)
			r.Get("/export", s.handleExport)
			r.Get("/audit", s.handleAuditLog)

			// Mutating routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.APIKeyAuth(&s.cfg.Security))

				r.Post("/selection", s.handleSelectAll)
				r.Delete("/selection", s.handleClearSelection)
				r.Delete("/selection/page", s.handleDeselectPage)
				r.Post("/selection/{rowKey}", s.handleToggle)

				actions := r
				if s.cfg.Rate.Enabled {
					actions = r.With(middleware.RateLimit("actions", s.cfg.Rate.ActionLimit))
				}
				actions.Post("/rows/{rowKey}/actions/{action}", s.handleDispatch)
			})
		})
	})
}

// Start begins listening for HTTP requests on the configured address.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
