package auth

import (
	"net/http"
	"strings"

	"unit-convert-service/internal/metrics"
)

// Middleware validates the shared bearer token for API routes. Probe and
// metrics endpoints are mounted outside this middleware and stay open.
func Middleware(enabled bool, bearerToken string, m *metrics.Metrics, next http.Handler) http.Handler {
	if !enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			m.AuthFailures.Inc()
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" || token != bearerToken {
			m.AuthFailures.Inc()
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
