package middleware

import (
	"net"
	"net/http"
)

// ClientIP extracts the client IP address for rate-limit identity purposes.
// It checks X-Forwarded-For (first entry) and X-Real-IP before falling back
// to RemoteAddr, so deployments behind a reverse proxy attribute requests to
// the originating client rather than the proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP parses the first address from a comma-separated list, as found
// in X-Forwarded-For headers ("client, proxy1, proxy2").
func parseFirstIP(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			if ip := net.ParseIP(s[:i]); ip != nil {
				return ip.String()
			}
			return ""
		}
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return ""
}
