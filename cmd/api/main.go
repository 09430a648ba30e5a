package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"newssearch/internal/infra/cache"
	"newssearch/internal/infra/provider"
	"newssearch/internal/observability/logging"
	"newssearch/internal/observability/tracing"
	"newssearch/internal/usecase/search"
	"newssearch/pkg/config"
	"newssearch/pkg/ratelimit"

	hhttp "newssearch/internal/handler/http"
)

const version = "1.0.0"

func main() {
	logger := logging.NewLogger()
	if os.Getenv("LOG_FORMAT") == "text" {
		logger = logging.NewTextLogger()
	}
	slog.SetDefault(logger)

	cfg := config.Load()

	tp := tracing.InitProvider()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("tracer provider shutdown failed", slog.Any("error", err))
		}
	}()

	counterStore, cacheStore, closeRedis := buildStores(cfg, logger)
	defer closeRedis()

	ingressLimiter := ratelimit.Config{
		Scope:  "ingress",
		Rate:   cfg.IngressRate,
		Window: time.Minute,
	}.Build(counterStore)

	egress := func(name string) *ratelimit.Limiter {
		c := ratelimit.EgressConfig(name)
		c.Rate = cfg.EgressRate
		return c.Build(counterStore)
	}

	guardian := provider.NewGuardian(provider.Config{
		APIKey:     cfg.GuardianAPIKey,
		OfflineDir: cfg.OfflineDir,
		Egress:     egress("guardian"),
	})
	nyt := provider.NewNYT(provider.Config{
		APIKey:     cfg.NYTAPIKey,
		OfflineDir: cfg.OfflineDir,
		Egress:     egress("nytimes"),
	})

	svc := search.NewService(
		[]provider.Provider{guardian, nyt},
		cache.NewResultCache(cacheStore, cfg.CacheTTL),
	)

	router := hhttp.NewRouter(hhttp.RouterConfig{
		Logger:         logger,
		Resolver:       svc,
		OfflineDefault: cfg.OfflineDefault,
		IngressLimiter: ingressLimiter,
		APISecretKey:   cfg.APISecretKey,
		AllowedOrigin:  cfg.AllowedOrigin,
		OpenAPIPath:    cfg.OpenAPIPath,
		Version:        version,
		Metrics:        promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			slog.Int("port", cfg.Port),
			slog.Bool("offline_default", cfg.OfflineDefault),
			slog.Bool("redis", cfg.RedisAddr != ""),
			slog.Bool("auth", cfg.APISecretKey != ""))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

// buildStores selects the backing stores for rate-limit counters and the
// result cache. With REDIS_ADDR configured and reachable, both share one
// Redis client so limits and cached pages hold across replicas; otherwise
// in-memory stores keep a single process fully functional.
func buildStores(cfg config.Config, logger *slog.Logger) (ratelimit.CounterStore, cache.Store, func()) {
	if cfg.RedisAddr == "" {
		return newMemoryStores(logger)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, falling back to in-memory stores",
			slog.String("addr", cfg.RedisAddr),
			slog.Any("error", err))
		_ = client.Close()
		return newMemoryStores(logger)
	}

	logger.Info("using redis stores", slog.String("addr", cfg.RedisAddr))
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Error("redis close failed", slog.Any("error", err))
		}
	}
	return ratelimit.NewRedisCounterStore(client), cache.NewRedisStore(client), closeFn
}

// newMemoryStores returns in-memory backends with a periodic sweep keeping
// the counter map bounded.
func newMemoryStores(logger *slog.Logger) (ratelimit.CounterStore, cache.Store, func()) {
	counters := ratelimit.NewMemoryCounterStore(nil)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed := counters.Cleanup()
				logger.Debug("rate limit counters swept", slog.Int("removed", removed))
			case <-done:
				return
			}
		}
	}()

	return counters, cache.NewMemoryStore(), func() { close(done) }
}
