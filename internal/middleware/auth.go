package middleware

import (
	"encoding/json"
	"net/http"

	"mbbank-monitor/pkg/logger"
)

// AuthMiddleware provides API key authentication for the health endpoints
type AuthMiddleware struct {
	apiKey string
	logger *logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(apiKey string, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		apiKey: apiKey,
		logger: log,
	}
}

// Authenticate validates API key from request header
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no key is configured (local mode)
		if m.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get("X-API-Key")

		if apiKey == "" {
			m.logger.Warn("Missing API key",
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
			)
			m.sendErrorResponse(w, "ERR_UNAUTHORIZED", "Missing API key", http.StatusUnauthorized)
			return
		}

		if apiKey != m.apiKey {
			m.logger.Warn("Invalid API key",
				"path", r.URL.Path,
				"method", r.Method,
				"remote_addr", r.RemoteAddr,
			)
			m.sendErrorResponse(w, "ERR_UNAUTHORIZED", "Invalid API key", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// sendErrorResponse sends error response in JSON format
func (m *AuthMiddleware) sendErrorResponse(w http.ResponseWriter, code, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := map[string]interface{}{
		"status": "error",
		"error": map[string]string{
			"error_code": code,
			"message":    message,
		},
	}

	json.NewEncoder(w).Encode(response)
}
