// Package server exposes the PII engine over HTTP to its collaborators
// (drafting and planning glue call /v1/sanitize before LLM submission and
// /v1/validate before releasing a draft).
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/harishm17/smart-email/internal/cache"
	"github.com/harishm17/smart-email/internal/config"
	"github.com/harishm17/smart-email/internal/logger"
	"github.com/harishm17/smart-email/internal/pii"
	"github.com/harishm17/smart-email/internal/websocket"
)

// Server wires the engine, cache, rate limiter and event hub behind a router.
type Server struct {
	config  *config.Config
	logger  *logger.Logger
	engine  *pii.Engine
	cache   *cache.ResultCache // nil when disabled
	limiter *ClientLimiter
	router  *mux.Router
	server  *http.Server
	wsHub   *websocket.Hub
}

// New creates a server instance. The engine is constructed here and injected
// into the handlers; there is no package-level engine instance.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	s := &Server{
		config:  cfg,
		logger:  log.WithComponent("server"),
		engine:  pii.New(cfg.Privacy.Enabled, cfg.Privacy.Threshold),
		limiter: NewClientLimiter(cfg.RateLimit),
		router:  mux.NewRouter(),
		wsHub:   websocket.NewHub(cfg.WebSocket, log.WithComponent("websocket").Logger),
	}

	if cfg.Cache.Enabled {
		resultCache, err := cache.New(cfg.Cache, log.WithComponent("cache").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create validation cache: %w", err)
		}
		s.cache = resultCache
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")

	if s.config.WebSocket.Enabled {
		s.router.HandleFunc(s.config.WebSocket.Path, s.handleWebSocket).Methods("GET")
	}

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/validate", s.handleValidate).Methods("POST")
	api.HandleFunc("/sanitize", s.handleSanitize).Methods("POST")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting smart-email privacy server",
		zap.Int("port", s.config.Server.Port),
		zap.Bool("privacy_enabled", s.engine.Enabled()),
		zap.Float64("threshold", s.engine.Threshold()),
		zap.Bool("cache_enabled", s.cache != nil),
	)

	if s.config.WebSocket.Enabled {
		go s.wsHub.Run()
	}
	s.limiter.StartCleanupRoutine()

	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping smart-email privacy server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

// handleInfo handles info requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{
		"name":"smart-email",
		"version":"0.1.0",
		"privacy_enabled":%t,
		"threshold":%g,
		"detectors":%d
	}`, s.engine.Enabled(), s.engine.Threshold(), len(pii.Categories()))
}

// handleWebSocket handles WebSocket connections for the dashboard
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
