// Package middleware provides HTTP middleware for ingress admission control,
// authentication, and CORS.
package middleware

import (
	"log/slog"
	"net/http"

	"newssearch/internal/handler/http/respond"
	"newssearch/internal/observability/metrics"
	"newssearch/pkg/ratelimit"
)

// RateLimit returns middleware that gates requests through the ingress
// limiter before any authentication, validation, cache, or provider work.
//
// The rate-limit identity is the Authorization header value when present,
// otherwise the client IP. Keying on the credential means all traffic from
// one API key shares a budget regardless of source address; anonymous
// traffic is budgeted per IP.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := Identity(r)

			allowed := limiter.Allow(r.Context(), identity)
			metrics.RecordRateLimitDecision(limiter.Scope(), allowed)
			if !allowed {
				slog.Warn("request denied by ingress limiter",
					slog.String("path", r.URL.Path),
					slog.String("identity", identity))
				respond.Error(w, http.StatusTooManyRequests, respond.CodeRateLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Identity derives the rate-limit identity for a request.
func Identity(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		return auth
	}
	return ClientIP(r)
}
