// Package retry provides bounded retry logic with a fixed inter-attempt
// delay. It helps handle transient upstream failures gracefully by
// automatically retrying failed operations.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Config holds the configuration for retry logic.
//
// Each provider carries its own policy; the attempt counts and delays are
// part of the provider's observable behavior and must stay independently
// configurable rather than unified into one shared policy.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first call.
	MaxAttempts int

	// Delay is the fixed delay between attempts. Zero means retry immediately.
	Delay time.Duration
}

// GuardianConfig returns the retry policy for Guardian API calls:
// three attempts with a two second pause between them.
func GuardianConfig() Config {
	return Config{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
	}
}

// NYTConfig returns the retry policy for NYT API calls:
// three immediate attempts with no inter-attempt delay.
func NYTConfig() Config {
	return Config{
		MaxAttempts: 3,
		Delay:       0,
	}
}

// Abort wraps err so WithFixedDelay returns it at once instead of retrying.
// Use it for failures further attempts cannot fix, such as a call rejected
// by an open circuit breaker.
func Abort(err error) error {
	if err == nil {
		return nil
	}
	return nonRetryableError{err: err}
}

type nonRetryableError struct{ err error }

func (e nonRetryableError) Error() string { return e.err.Error() }
func (e nonRetryableError) Unwrap() error { return e.err }

// WithFixedDelay executes fn with bounded retry and a fixed delay between
// attempts. It returns nil as soon as fn succeeds, or the last error once
// all attempts are exhausted. An error wrapped with Abort stops the loop
// immediately, without waiting out the delay. Context cancellation aborts
// the wait between attempts.
func WithFixedDelay(ctx context.Context, cfg Config, fn func() error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		var abort nonRetryableError
		if errors.As(lastErr, &abort) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", abort.err))
			return abort.err
		}

		if attempt == attempts {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", cfg.Delay),
			slog.Any("error", lastErr))

		if cfg.Delay <= 0 {
			continue
		}
		select {
		case <-time.After(cfg.Delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", attempts, lastErr)
}
