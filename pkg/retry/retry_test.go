package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 3 {
			return apperrors.NewServerError("flaky", nil)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_NonRetryableSurfacesImmediately(t *testing.T) {
	attempts := 0
	original := apperrors.NewValidationError("bad payload")
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		return original
	})
	assert.Same(t, original, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), func() error {
		attempts++
		return apperrors.NewServerError("still down", nil)
	})
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "max retry attempts (3) exceeded")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeServer))
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, fastConfig(), func() error {
		attempts++
		return apperrors.NewServerError("down", nil)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, attempts)
}

func TestDoWithLog_ReportsEachAttempt(t *testing.T) {
	var logged []int
	var delays []time.Duration

	err := DoWithLog(context.Background(), fastConfig(), "backend", func() error {
		return apperrors.NewServerError("down", nil)
	}, func(attempt int, err error, nextDelay time.Duration) {
		logged = append(logged, attempt)
		delays = append(delays, nextDelay)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend: max retry attempts")
	// the final attempt fails without a scheduled retry, so only two logs
	assert.Equal(t, []int{1, 2}, logged)
	require.Len(t, delays, 2)
	assert.Equal(t, time.Millisecond, delays[0])
	assert.Equal(t, 2*time.Millisecond, delays[1])
}

func TestDoWithLog_RateLimitHintOverridesBackoff(t *testing.T) {
	var delays []time.Duration

	cfg := fastConfig()
	cfg.MaxAttempts = 2

	err := DoWithLog(context.Background(), cfg, "backend", func() error {
		return apperrors.NewRateLimitError("throttled", 3*time.Millisecond)
	}, func(attempt int, err error, nextDelay time.Duration) {
		delays = append(delays, nextDelay)
	})

	require.Error(t, err)
	require.Len(t, delays, 1)
	// server-supplied cooldown wins over the 1ms backoff
	assert.Equal(t, 3*time.Millisecond, delays[0])
}
