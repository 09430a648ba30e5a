package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowedOrigin is the single configured production origin. Empty
	// disables the explicit allowance.
	AllowedOrigin string
}

// CORS returns middleware applying a minimal CORS policy: the configured
// origin is allowed, and any http://localhost:<port> origin is echoed back to
// keep local frontends working without configuration. Preflight OPTIONS
// requests are answered directly with 204.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && config.originAllowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				if r.Method == http.MethodOptions {
					w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (c CORSConfig) originAllowed(origin string) bool {
	if c.AllowedOrigin != "" && origin == c.AllowedOrigin {
		return true
	}
	return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
}
