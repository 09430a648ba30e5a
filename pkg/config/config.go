package config

import "time"

// Config is the full application configuration, assembled from environment
// variables with sensible local-development defaults.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// APISecretKey is the bearer key for /search and /openapi.json. Empty
	// disables authentication.
	APISecretKey string

	// AllowedOrigin is the production CORS origin.
	AllowedOrigin string

	// OpenAPIPath is the filesystem location of the OpenAPI document.
	OpenAPIPath string

	// GuardianAPIKey and NYTAPIKey are the upstream credentials. A provider
	// with no key serves its offline dataset.
	GuardianAPIKey string
	NYTAPIKey      string

	// OfflineDefault forces offline mode for every search.
	OfflineDefault bool

	// OfflineDir is an extra directory searched for offline dataset files.
	OfflineDir string

	// RedisAddr selects the shared Redis instance for the result cache and
	// rate-limit counters. Empty falls back to in-memory stores.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// CacheTTL bounds result cache entries.
	CacheTTL time.Duration

	// IngressRate and EgressRate are requests per minute for the admission
	// and per-provider egress limiters.
	IngressRate int
	EgressRate  int
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Port:           GetEnvInt("PORT", 8080),
		APISecretKey:   GetEnvString("API_SECRET_KEY", ""),
		AllowedOrigin:  GetEnvString("ALLOWED_ORIGIN", ""),
		OpenAPIPath:    GetEnvString("OPENAPI_PATH", "api/openapi.json"),
		GuardianAPIKey: GetEnvString("GUARDIAN_API_KEY", ""),
		NYTAPIKey:      GetEnvString("NYT_API_KEY", ""),
		OfflineDefault: GetEnvBool("OFFLINE_DEFAULT", false),
		OfflineDir:     GetEnvString("OFFLINE_DATA_DIR", ""),
		RedisAddr:      GetEnvString("REDIS_ADDR", ""),
		RedisPassword:  GetEnvString("REDIS_PASSWORD", ""),
		RedisDB:        GetEnvInt("REDIS_DB", 0),
		CacheTTL:       GetEnvDuration("REDIS_CACHE_TTL", 5*time.Minute),
		IngressRate:    GetEnvInt("INGRESS_RATE_PER_MINUTE", 60),
		EgressRate:     GetEnvInt("EGRESS_RATE_PER_MINUTE", 30),
	}
}
