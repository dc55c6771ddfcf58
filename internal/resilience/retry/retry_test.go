package retry_test

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/resilience/retry"
)

func fastConfig(maxAttempts int) retry.Config {
	return retry.Config{
		MaxAttempts:    maxAttempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

func TestWithBackoffSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(t.Context(), fastConfig(3), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoffRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(t.Context(), fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return syscall.ECONNREFUSED
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithBackoffStopsOnNonRetryable(t *testing.T) {
	sentinel := errors.New("schema mismatch")
	calls := 0
	err := retry.WithBackoff(t.Context(), fastConfig(5), func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestWithBackoffExhaustsAttempts(t *testing.T) {
	calls := 0
	err := retry.WithBackoff(t.Context(), fastConfig(3), func() error {
		calls++
		return syscall.ECONNREFUSED
	})
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	assert.Equal(t, 3, calls)
}

func TestWithBackoffHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := retry.WithBackoff(ctx, fastConfig(5), func() error {
		return syscall.ECONNREFUSED
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, retry.IsRetryable(nil))
	assert.False(t, retry.IsRetryable(context.Canceled))
	assert.False(t, retry.IsRetryable(errors.New("constraint violation")))
	assert.True(t, retry.IsRetryable(syscall.ECONNREFUSED))
	assert.True(t, retry.IsRetryable(syscall.ECONNRESET))
}
