// Package api provides the HTTP API server and handlers for Momentum.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/momentumapp/momentum-server/internal/config"
	"github.com/momentumapp/momentum-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	cfg      *config.Config
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		store:    st,
		services: services,
		cfg:      cfg,
		router:   chi.NewRouter(),
		logger:   logger,
		// 20 login attempts per minute per IP is generous for humans
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Momentum API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"session": {
			Type: "apiKey",
			In:   "cookie",
			Name: cfg.Session.CookieName,
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerTaskRoutes()
	s.registerDiaryRoutes()
	s.registerStatsRoutes()
	s.registerProfileRoutes()
	s.registerAuthRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// The SPA runs on its own origin and sends the session cookie
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.Client.URL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(sessionMiddleware(s.services.Auth, s.cfg.Session.CookieName))
}
