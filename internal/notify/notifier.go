package notify

import (
	"context"

	"golang.org/x/time/rate"

	"mbbank-monitor/pkg/logger"
)

// Notifier delivers a formatted message to the configured channel
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Dispatcher wraps a Notifier with rate limiting and fire-and-forget error
// handling. Delivery failures are logged and swallowed: a broken notification
// channel must not take down monitoring.
type Dispatcher struct {
	notifier Notifier
	limiter  *rate.Limiter
	logger   *logger.Logger
}

// NewDispatcher creates a dispatcher limited to maxPerSecond messages
func NewDispatcher(n Notifier, maxPerSecond int, log *logger.Logger) *Dispatcher {
	if maxPerSecond <= 0 {
		maxPerSecond = 1
	}
	return &Dispatcher{
		notifier: n,
		limiter:  rate.NewLimiter(rate.Limit(maxPerSecond), maxPerSecond),
		logger:   log,
	}
}

// Dispatch delivers text to the channel, reporting whether delivery succeeded.
// Errors never propagate beyond the returned bool and a log line.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) bool {
	if err := d.limiter.Wait(ctx); err != nil {
		d.logger.Warn("Notification dropped before send", "error", err)
		return false
	}

	if err := d.notifier.Send(ctx, text); err != nil {
		d.logger.Error("Failed to deliver notification", "error", err)
		return false
	}
	return true
}
