package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"newssearch/internal/handler/http/respond"
)

// Auth returns middleware enforcing a static bearer API key. When secret is
// empty the check is disabled, which supports local development without
// credentials.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				slog.Warn("request rejected by auth",
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr))
				respond.Error(w, http.StatusUnauthorized, respond.CodeUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer <key>"
// header. A bare key without the Bearer prefix is accepted as well.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return auth
}
