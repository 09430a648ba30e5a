package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.APISecretKey)
	assert.False(t, cfg.OfflineDefault)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 60, cfg.IngressRate)
	assert.Equal(t, 30, cfg.EgressRate)
	assert.Equal(t, "api/openapi.json", cfg.OpenAPIPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_SECRET_KEY", "s3cret")
	t.Setenv("OFFLINE_DEFAULT", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_CACHE_TTL", "90s")
	t.Setenv("INGRESS_RATE_PER_MINUTE", "120")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "s3cret", cfg.APISecretKey)
	assert.True(t, cfg.OfflineDefault)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 120, cfg.IngressRate)
}

func TestGetEnvIntInvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 42, GetEnvInt("SOME_INT", 42))
}

func TestGetEnvBoolVariants(t *testing.T) {
	for _, v := range []string{"1", "t", "true", "True", "TRUE"} {
		t.Setenv("SOME_BOOL", v)
		assert.True(t, GetEnvBool("SOME_BOOL", false), "value %q", v)
	}
	for _, v := range []string{"0", "f", "false"} {
		t.Setenv("SOME_BOOL", v)
		assert.False(t, GetEnvBool("SOME_BOOL", true), "value %q", v)
	}
	t.Setenv("SOME_BOOL", "maybe")
	assert.True(t, GetEnvBool("SOME_BOOL", true))
}

func TestGetEnvDurationInvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Minute, GetEnvDuration("SOME_DURATION", time.Minute))
}
