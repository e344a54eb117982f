package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Maximus-08/Assignment-solver/pkg/errors"
)

// Config holds retry configuration
type Config struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultConfig returns the retry configuration used for delivery calls:
// 3 attempts total with exponential backoff bounded between 1s and 60s.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		InitialDelay:  1 * time.Second,
		MaxDelay:      60 * time.Second,
		BackoffFactor: 2.0,
	}
}

// Do executes the given function with exponential backoff retry logic.
// Non-retryable AppErrors (validation, authentication, not-found) surface
// immediately without consuming an attempt. A rate-limit error carrying a
// server-supplied retry-after overrides the computed backoff delay.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	return DoWithLog(ctx, cfg, "", fn, nil)
}

// DoWithLog executes the function with retry and logs each failed attempt.
func DoWithLog(ctx context.Context, cfg Config, serviceName string, fn func() error, logFn func(attempt int, err error, nextDelay time.Duration)) error {
	prefix := serviceName
	if prefix != "" {
		prefix += ": "
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("%sretry aborted after %d attempts: %w (last error: %v)", prefix, attempt-1, ctx.Err(), lastErr)
			}
			return fmt.Errorf("%sretry aborted: %w", prefix, ctx.Err())
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}

		if !apperrors.IsRetryable(err) {
			return err
		}

		lastErr = err

		if attempt == cfg.MaxAttempts {
			return fmt.Errorf("%smax retry attempts (%d) exceeded: %w", prefix, cfg.MaxAttempts, lastErr)
		}

		wait := delay
		if after := retryAfterHint(err); after > wait {
			wait = after
		}

		if logFn != nil {
			logFn(attempt, err, wait)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%sretry aborted after %d attempts: %w (last error: %v)", prefix, attempt, ctx.Err(), lastErr)
		case <-time.After(wait):
		}

		// Calculate next delay with exponential backoff
		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%smax retry attempts exceeded: %w", prefix, lastErr)
}

func retryAfterHint(err error) time.Duration {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeRateLimit {
		return appErr.RetryAfter
	}
	return 0
}
