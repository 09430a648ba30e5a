package http

import (
	"log/slog"
	"net/http"

	"newssearch/internal/handler/http/middleware"
	"newssearch/internal/handler/http/news"
	"newssearch/internal/handler/http/requestid"
	"newssearch/internal/observability/tracing"
	"newssearch/pkg/ratelimit"
)

// RouterConfig carries the dependencies and policy for the HTTP surface.
type RouterConfig struct {
	Logger         *slog.Logger
	Resolver       news.Resolver
	OfflineDefault bool

	// IngressLimiter gates /search before any other processing. Nil disables
	// admission control.
	IngressLimiter *ratelimit.Limiter

	// APISecretKey protects /search and /openapi.json. Empty disables auth.
	APISecretKey string

	AllowedOrigin string
	OpenAPIPath   string
	Version       string

	// Metrics is the Prometheus exposition handler. Nil omits the route.
	Metrics http.Handler
}

// NewRouter assembles the full handler chain.
//
// Route policy: /search sits behind the ingress limiter and then auth, so a
// denied request costs no credential check, validation, cache read, or
// provider traffic. /openapi.json requires auth only. /health and /metrics
// are open for probes and scrapers.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	auth := middleware.Auth(cfg.APISecretKey)

	searchHandler := http.Handler(news.SearchHandler{
		Svc:            cfg.Resolver,
		OfflineDefault: cfg.OfflineDefault,
	})
	searchHandler = auth(searchHandler)
	if cfg.IngressLimiter != nil {
		searchHandler = middleware.RateLimit(cfg.IngressLimiter)(searchHandler)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /search", searchHandler)
	mux.Handle("GET /health", HealthHandler{Version: cfg.Version})
	mux.Handle("GET /openapi.json", auth(OpenAPIHandler{Path: cfg.OpenAPIPath}))
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	var h http.Handler = mux
	h = middleware.CORS(middleware.CORSConfig{AllowedOrigin: cfg.AllowedOrigin})(h)
	h = Recover(logger)(h)
	h = Logging(logger)(h)
	h = tracing.Middleware(h)
	h = requestid.Middleware(h)
	return h
}
