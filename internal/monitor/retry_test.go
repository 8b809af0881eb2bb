package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"mbbank-monitor/internal/bank"
	"mbbank-monitor/pkg/logger"
)

func testRetry(maxAttempts int, delays *[]time.Duration) *Retry {
	r := NewRetry(maxAttempts, 5*time.Second, logger.New("ERROR"))
	r.Sleep = func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return r
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	var delays []time.Duration
	r := testRetry(5, &delays)

	calls := 0
	result, err := Do(context.Background(), r, func(context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", &bank.APIError{Kind: bank.KindUnavailable, Message: "503"}
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want %q", result, "ok")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	// Doubling series starting at the initial delay
	wantDelays := []time.Duration{5 * time.Second, 10 * time.Second}
	if len(delays) != len(wantDelays) {
		t.Fatalf("delays = %v, want %v", delays, wantDelays)
	}
	for i := range wantDelays {
		if delays[i] != wantDelays[i] {
			t.Errorf("delays[%d] = %v, want %v", i, delays[i], wantDelays[i])
		}
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	var delays []time.Duration
	r := testRetry(3, &delays)

	calls := 0
	_, err := Do(context.Background(), r, func(context.Context) (string, error) {
		calls++
		return "", &bank.APIError{Kind: bank.KindTimeout, Message: "timeout"}
	})

	if calls != 3 {
		t.Errorf("calls = %d, want exactly 3", calls)
	}
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("err = %v, want wrapped ErrRetriesExhausted", err)
	}
	if len(delays) != 2 {
		t.Errorf("backoff delays = %d, want 2 (no delay after the final attempt)", len(delays))
	}
}

func TestDoNonTransientFailsImmediately(t *testing.T) {
	var delays []time.Duration
	r := testRetry(3, &delays)

	permanent := errors.New("invalid credentials")
	calls := 0
	_, err := Do(context.Background(), r, func(context.Context) (string, error) {
		calls++
		return "", permanent
	})

	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1", calls)
	}
	if !errors.Is(err, permanent) {
		t.Errorf("err = %v, want the original error unchanged", err)
	}
	if len(delays) != 0 {
		t.Errorf("delays = %v, want none", delays)
	}
}

func TestDoUntypedTransientMessage(t *testing.T) {
	var delays []time.Duration
	r := testRetry(2, &delays)

	calls := 0
	result, err := Do(context.Background(), r, func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("upstream returned 503")
		}
		return 42, nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}
	if result != 42 || calls != 2 {
		t.Errorf("result = %d after %d calls, want 42 after 2", result, calls)
	}
}

func TestDoStopsOnContextCancel(t *testing.T) {
	r := NewRetry(3, 5*time.Second, logger.New("ERROR"))
	ctx, cancel := context.WithCancel(context.Background())
	r.Sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	calls := 0
	_, err := Do(ctx, r, func(context.Context) (string, error) {
		calls++
		return "", &bank.APIError{Kind: bank.KindUnavailable, Message: "503"}
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
