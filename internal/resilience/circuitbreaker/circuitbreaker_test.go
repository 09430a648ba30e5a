package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing() (interface{}, error) {
	return nil, errors.New("upstream failure")
}

func succeeding() (interface{}, error) {
	return "ok", nil
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	cb := New(Config{
		Name:                "test",
		MaxRequests:         1,
		Timeout:             time.Minute,
		ConsecutiveFailures: 3,
	})

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(failing)
		require.Error(t, err)
	}

	assert.True(t, cb.IsOpen())

	// Open breaker fails fast without invoking the call.
	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := New(Config{
		Name:                "test",
		MaxRequests:         1,
		Timeout:             time.Minute,
		ConsecutiveFailures: 3,
	})

	// Two failures, a success, then two more failures: the breaker counts
	// consecutive failures, so it must still be closed.
	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(failing)
	}
	_, err := cb.Execute(succeeding)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(failing)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestBreakerHalfOpenTrialClosesOnSuccess(t *testing.T) {
	cb := New(Config{
		Name:                "test",
		MaxRequests:         1,
		Timeout:             50 * time.Millisecond,
		ConsecutiveFailures: 1,
	})

	_, _ = cb.Execute(failing)
	require.True(t, cb.IsOpen())

	time.Sleep(60 * time.Millisecond)

	// First call after the cool-down is the half-open trial.
	_, err := cb.Execute(succeeding)
	require.NoError(t, err)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestBreakerHalfOpenTrialReopensOnFailure(t *testing.T) {
	cb := New(Config{
		Name:                "test",
		MaxRequests:         1,
		Timeout:             50 * time.Millisecond,
		ConsecutiveFailures: 1,
	})

	_, _ = cb.Execute(failing)
	require.True(t, cb.IsOpen())

	time.Sleep(60 * time.Millisecond)

	_, err := cb.Execute(failing)
	require.Error(t, err)
	assert.True(t, cb.IsOpen())
}

func TestIsRejectionMatchesBreakerRefusals(t *testing.T) {
	assert.True(t, IsRejection(gobreaker.ErrOpenState))
	assert.True(t, IsRejection(gobreaker.ErrTooManyRequests))
	assert.False(t, IsRejection(errors.New("upstream failure")))
	assert.False(t, IsRejection(nil))
}

func TestProviderConfigsAreIndependent(t *testing.T) {
	guardian := New(GuardianConfig())
	nyt := New(NYTConfig())

	// Tripping one provider's breaker must not affect the other.
	for i := 0; i < 5; i++ {
		_, _ = guardian.Execute(failing)
	}
	assert.True(t, guardian.IsOpen())
	assert.Equal(t, gobreaker.StateClosed, nyt.State())
}
