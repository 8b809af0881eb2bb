package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mbbank-monitor/internal/config"
	"mbbank-monitor/internal/middleware"
	"mbbank-monitor/pkg/logger"
)

// Server exposes /health and /metrics over HTTP. It is optional: the monitor
// runs fine without a listener.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	channel    string
	startTime  time.Time
}

// NewServer creates the health/metrics server. The prometheus handler is
// guarded by API-key auth when a key is configured.
func NewServer(cfg *config.HealthConfig, channel string, log *logger.Logger) *Server {
	s := &Server{
		logger:    log,
		channel:   channel,
		startTime: time.Now(),
	}

	auth := middleware.NewAuthMiddleware(cfg.APIKey, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.checkHealth)
	mux.HandleFunc("/metrics", auth.Authenticate(promhttp.Handler()))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins serving in the background
func (s *Server) Start() {
	go func() {
		s.logger.Info("Health server starting", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Health server error", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// checkHealth handles GET /health
func (s *Server) checkHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"channel":   s.channel,
		"uptime":    time.Since(s.startTime).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
