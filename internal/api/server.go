package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/bridge-console/internal/config"
	"github.com/terra-clan/bridge-console/internal/models"
	"github.com/terra-clan/bridge-console/internal/services"
	"github.com/terra-clan/bridge-console/internal/stations"
	"github.com/terra-clan/bridge-console/internal/storage"
)

// ScenarioSource provides the memoized scenario
type ScenarioSource interface {
	Load(ctx context.Context) *models.Scenario
	Info() (models.LoadRecord, bool)
}

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	source         ScenarioSource
	renderer       *stations.Renderer
	history        storage.Repository
	registry       *services.Registry
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server. A nil history disables the loads endpoint.
func NewServer(
	cfg config.ServerConfig,
	auth config.AuthConfig,
	source ScenarioSource,
	renderer *stations.Renderer,
	history storage.Repository,
	registry *services.Registry,
) *Server {
	if registry == nil {
		registry = services.NewRegistry()
	}
	s := &Server{
		config:         cfg,
		source:         source,
		renderer:       renderer,
		history:        history,
		registry:       registry,
		authMiddleware: NewAuthMiddleware(auth.APIKey),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check (outside versioned API - public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// API v1 routes (protected by authentication)
	r.Route("/api/v1", func(r chi.Router) {
		// Apply authentication middleware to all /api/v1/* routes
		r.Use(s.authMiddleware.Authenticate)

		// Websocket feeds outlive the request timeout
		r.Get("/stations/{id}/ws", s.handleStationWS)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			// Scenario data
			r.Route("/scenario", func(r chi.Router) {
				r.Get("/", s.handleGetScenario)
				r.Get("/status", s.handleScenarioStatus)
				r.Get("/systems", s.handleListSystems)
				r.Get("/systems/{id}", s.handleGetSystem)
				r.Get("/damage/{id}", s.handleGetDamageNode)
			})

			// Station panels
			r.Route("/stations", func(r chi.Router) {
				r.Get("/", s.handleListStations)
				r.Get("/{id}", s.handleGetStation)
			})

			// Load history
			r.Get("/loads", s.handleListLoads)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
