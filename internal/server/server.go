package server

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/spamurai/spamurai/internal/config"
	"github.com/spamurai/spamurai/internal/metrics"
	"github.com/spamurai/spamurai/internal/webhook"
)

// HealthResponse represents the health check response structure.
type HealthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]interface{} `json:"checks"`
}

// Server is the HTTP server for Spamurai.
type Server struct {
	cfg     *config.Config
	mux     *http.ServeMux
	handler webhook.EventHandler

	mu       sync.RWMutex // protects httpSrv and listener
	httpSrv  *http.Server
	listener net.Listener

	ready chan struct{} // closed when the server is accepting connections
}

// New creates a new Server with the given config. The handler receives
// every validated pull request webhook payload.
func New(cfg *config.Config, handler webhook.EventHandler) *Server {
	s := &Server{
		cfg:     cfg,
		mux:     http.NewServeMux(),
		ready:   make(chan struct{}),
		handler: handler,
	}
	s.routes()
	return s
}

// Ready returns a channel that is closed when the server is ready to accept connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// routes sets up the HTTP routes.
func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/metrics", s.handleMetrics)
	s.mux.Handle("/webhooks/github", webhook.NewHandler(s.cfg.GitHub.WebhookSecret, s.handler))
}

// handleHealth responds with server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]interface{}{
		"github_app":   s.cfg.GitHub.AppID != 0,
		"llm_provider": s.cfg.LLM.Provider,
	}

	status := "ok"
	if s.cfg.GitHub.AppID == 0 {
		status = "degraded"
	}

	health := HealthResponse{
		Status: status,
		Checks: checks,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// handleMetrics responds with current operational metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m := metrics.Get()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}
