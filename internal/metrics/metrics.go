package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the monitor's counters
type Metrics struct {
	Ticks                prometheus.Counter
	TransactionsDetected prometheus.Counter
	FetchErrors          prometheus.Counter
	RetryAttempts        prometheus.Counter
	DispatchFailures     prometheus.Counter
	WeatherUpdates       prometheus.Counter
	LogRotations         prometheus.Counter
}

// New registers and returns the monitor's metrics on the default registerer
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the monitor's metrics on reg
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_ticks_total",
			Help: "Poll loop iterations completed.",
		}),
		TransactionsDetected: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_transactions_detected_total",
			Help: "New transactions detected and notified.",
		}),
		FetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_fetch_errors_total",
			Help: "Upstream fetches that yielded no data.",
		}),
		RetryAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_retry_attempts_total",
			Help: "Backoff retries performed against the bank API.",
		}),
		DispatchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_dispatch_failures_total",
			Help: "Notifications that failed to deliver.",
		}),
		WeatherUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_weather_updates_total",
			Help: "Weather reports dispatched.",
		}),
		LogRotations: factory.NewCounter(prometheus.CounterOpts{
			Name: "monitor_log_rotations_total",
			Help: "Daily log rotation runs.",
		}),
	}
}
