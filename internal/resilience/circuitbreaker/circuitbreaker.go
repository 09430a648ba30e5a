// Package circuitbreaker provides circuit breaker wrappers for upstream
// provider calls. It uses the github.com/sony/gobreaker library to prevent
// cascading failures when an upstream is consistently unavailable.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name is the circuit breaker name for logging and metrics.
	Name string

	// MaxRequests is the maximum number of trial requests allowed while the
	// breaker is half-open.
	MaxRequests uint32

	// Timeout is how long the breaker stays open before moving to half-open.
	Timeout time.Duration

	// ConsecutiveFailures is the number of consecutive failures that trips
	// the breaker from closed to open.
	ConsecutiveFailures uint32
}

// DefaultConfig returns a default configuration for provider breakers:
// trip after 5 consecutive failures, cool down for 60 seconds, allow a
// single trial call in half-open.
func DefaultConfig(name string) Config {
	return Config{
		Name:                name,
		MaxRequests:         1,
		Timeout:             60 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// GuardianConfig returns the breaker configuration for the Guardian API.
func GuardianConfig() Config {
	return DefaultConfig("guardian-api")
}

// NYTConfig returns the breaker configuration for the NYT API.
func NYTConfig() Config {
	return DefaultConfig("nyt-api")
}

// CircuitBreaker wraps gobreaker.CircuitBreaker for provider clients.
//
// Each provider client owns exactly one breaker instance; the state is
// process-wide and shared by all concurrent requests to that provider, so it
// reflects the upstream's health as seen by the whole process. Breakers are
// never shared across providers.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a new circuit breaker with the given configuration.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the circuit breaker. If the circuit is open it
// returns gobreaker.ErrOpenState immediately without invoking fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen returns true if the circuit breaker is in the open state.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// IsRejection reports whether err is the breaker refusing a call rather than
// the call itself failing. It covers the open state and half-open
// over-admission; retrying such an error before the cool-down elapses cannot
// succeed.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}
