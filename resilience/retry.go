package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	MaxAttempts int
	// InitialBackoff is the initial delay between retries.
	InitialBackoff time.Duration
	// MaxBackoff is the maximum delay between retries.
	MaxBackoff time.Duration
	// BackoffFactor is the multiplier for exponential backoff.
	BackoffFactor float64
	// Jitter adds randomness to backoff (0.0 to 1.0).
	Jitter float64
	// RetryIf determines if an error should be retried.
	RetryIf func(*errors.Error) bool
	// OnRetry is called before each retry.
	OnRetry func(attempt int, err *errors.Error, backoff time.Duration)
}

// DefaultRetryConfig returns sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         0.1,
		RetryIf:        Transient,
	}
}

var transientIO = map[errors.IOCode]bool{
	errors.IOConnectionRefused: true,
	errors.IOConnectionReset:   true,
	errors.IOConnectionAborted: true,
	errors.IONotConnected:      true,
	errors.IOBrokenPipe:        true,
	errors.IOTimedOut:          true,
	errors.IOWouldBlock:        true,
	errors.IOUnexpectedEOF:     true,
}

// Transient reports whether err describes a connection-level failure that
// may succeed on another attempt. Protocol, certificate and decoding
// failures are never transient.
func Transient(err *errors.Error) bool {
	if io, ok := err.IO(); ok {
		return transientIO[io.Code]
	}
	if h, ok := err.HTTP(); ok {
		return h.Code == errors.HTTPAddressNotFound || h.Code == errors.HTTPProxyConnect
	}
	return false
}

// Retry executes a function with retry logic.
// Returns the result of the function or the last error if all retries fail.
// Context expiry is reported through the I/O translator.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, *errors.Error)) (T, *errors.Error) {
	var zero T
	var lastErr *errors.Error

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 100 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 10 * time.Second
	}
	if cfg.BackoffFactor <= 0 {
		cfg.BackoffFactor = 2.0
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = Transient
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ioerr.Translate(ctx.Err())
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !cfg.RetryIf(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt == cfg.MaxAttempts {
			break
		}

		backoff := calculateBackoff(attempt, cfg)

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ioerr.Translate(ctx.Err())
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// RetryOutcome retries an operation that produces no value.
func RetryOutcome(ctx context.Context, cfg RetryConfig, fn func() *errors.Error) errors.Outcome {
	_, err := Retry(ctx, cfg, func() (struct{}, *errors.Error) {
		return struct{}{}, fn()
	})
	if err != nil {
		return errors.Failure(err)
	}
	return errors.Success()
}

// calculateBackoff calculates the backoff duration for an attempt.
func calculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	// Exponential backoff: initial * factor^(attempt-1)
	backoffFloat := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffFactor, float64(attempt-1))

	if cfg.Jitter > 0 {
		jitterRange := backoffFloat * cfg.Jitter
		jitter := (rand.Float64()*2 - 1) * jitterRange // Random between -jitter and +jitter
		backoffFloat += jitter
	}

	if backoffFloat > float64(cfg.MaxBackoff) {
		backoffFloat = float64(cfg.MaxBackoff)
	}

	if backoffFloat < 0 {
		backoffFloat = float64(cfg.InitialBackoff)
	}

	return time.Duration(backoffFloat)
}
