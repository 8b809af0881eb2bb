package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mbbank-monitor/internal/bank"
	"mbbank-monitor/pkg/logger"
)

// ErrRetriesExhausted marks a call that failed transiently on every attempt
var ErrRetriesExhausted = errors.New("retries exhausted")

// Retry wraps fallible upstream calls with bounded exponential backoff.
// Transient failures (see bank.IsTransient) are retried with the delay
// doubling after each attempt; anything else propagates immediately.
type Retry struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Logger       *logger.Logger

	// OnRetry, when set, is invoked before each backoff delay
	OnRetry func(attempt int)

	// Sleep is replaceable in tests; nil means a ctx-aware timer sleep
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewRetry creates a retry policy
func NewRetry(maxAttempts int, initialDelay time.Duration, log *logger.Logger) *Retry {
	return &Retry{
		MaxAttempts:  maxAttempts,
		InitialDelay: initialDelay,
		Logger:       log,
	}
}

func (r *Retry) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do invokes fn at most r.MaxAttempts times. On success the result is
// returned as-is; a non-transient error propagates unchanged after a single
// invocation; exhausting all attempts on transient errors yields an error
// wrapping ErrRetriesExhausted.
func Do[T any](ctx context.Context, r *Retry, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	delay := r.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !bank.IsTransient(err) {
			return zero, err
		}

		lastErr = err
		if attempt == r.MaxAttempts {
			break
		}

		r.Logger.Warn("Upstream call failed, retrying",
			"attempt", attempt,
			"max_attempts", r.MaxAttempts,
			"backoff", delay.String(),
			"error", err,
		)
		if r.OnRetry != nil {
			r.OnRetry(attempt)
		}
		if err := r.sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
	}

	return zero, fmt.Errorf("%w: %d attempts failed: %v", ErrRetriesExhausted, r.MaxAttempts, lastErr)
}
