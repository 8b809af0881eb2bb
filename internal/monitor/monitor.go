package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mbbank-monitor/internal/bank"
	"mbbank-monitor/internal/config"
	"mbbank-monitor/internal/metrics"
	"mbbank-monitor/internal/model"
	"mbbank-monitor/internal/notify"
	"mbbank-monitor/pkg/logger"
)

// txDateLayout is the dd/mm/yyyy hh:mm:ss format of transactionDate fields
const txDateLayout = "02/01/2006 15:04:05"

// rotationSlot is how long past the operating start the daily log rotation
// window stays open. Missing the slot skips rotation for the day.
const rotationSlot = 5 * time.Minute

// BankClient fetches account transaction history, newest first
type BankClient interface {
	TransactionHistory(ctx context.Context, from, to time.Time) (*model.TransactionHistory, error)
}

// WeatherClient fetches current conditions
type WeatherClient interface {
	Current(ctx context.Context) (*model.Weather, error)
}

// Store persists the last observed transaction
type Store interface {
	Load() (*model.Transaction, error)
	Save(*model.Transaction) error
}

// Archive keeps an audit record of confirmed transactions
type Archive interface {
	Save(tx *model.Transaction, observedAt time.Time) error
}

// Options wires a Scheduler
type Options struct {
	Config          config.MonitorConfig
	WeatherInterval time.Duration
	AccountInfo     string
	LogDir          string
	Bank            BankClient
	Weather         WeatherClient
	Store           Store
	Archive         Archive
	Dispatcher      *notify.Dispatcher
	Metrics         *metrics.Metrics
	Logger          *logger.Logger

	// Now is replaceable in tests; nil means time.Now
	Now func() time.Time
}

// Scheduler drives the monitoring loop: one cooperative task that, on every
// tick, handles console housekeeping, daily log rotation, operating-hours
// transitions, periodic weather reports and the transaction check.
type Scheduler struct {
	cfg             config.MonitorConfig
	weatherInterval time.Duration
	accountInfo     string
	logDir          string
	window          Window
	retry           *Retry
	bank            BankClient
	weather         WeatherClient
	store           Store
	archive         Archive
	dispatcher      *notify.Dispatcher
	metrics         *metrics.Metrics
	logger          *logger.Logger
	now             func() time.Time

	startedAt          time.Time
	lastConsoleClear   time.Time
	lastWeatherCheck   time.Time
	lastFlushDate      time.Time
	lastOperationState bool
}

// New creates a Scheduler
func New(opts Options) *Scheduler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Scheduler{
		cfg:             opts.Config,
		weatherInterval: opts.WeatherInterval,
		accountInfo:     opts.AccountInfo,
		logDir:          opts.LogDir,
		window: Window{
			StartHour:   opts.Config.OperatingStartHour,
			StartMinute: opts.Config.OperatingStartMinute,
			EndHour:     opts.Config.OperatingEndHour,
			EndMinute:   opts.Config.OperatingEndMinute,
		},
		retry:      NewRetry(opts.Config.RetryMaxAttempts, opts.Config.RetryInitialDelay, opts.Logger),
		bank:       opts.Bank,
		weather:    opts.Weather,
		store:      opts.Store,
		archive:    opts.Archive,
		dispatcher: opts.Dispatcher,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		now:        now,
	}
	s.retry.OnRetry = func(int) { s.metrics.RetryAttempts.Inc() }

	return s
}

// Run executes the monitoring loop until stop is closed or a fatal error
// occurs. Startup and shutdown notifications bracket the loop; a signal only
// requests termination, the current tick always finishes its work.
func (s *Scheduler) Run(stop <-chan struct{}) error {
	ctx := context.Background()
	start := s.now()
	s.startedAt = start
	s.lastConsoleClear = start
	s.lastFlushDate = dateOf(start)

	clearConsole()
	s.console("MB Bank transaction monitor starting...")
	s.logger.Info("Monitor starting", "check_interval", s.cfg.CheckInterval.String())
	s.dispatch(ctx, FormatStartup(start))

	s.lastOperationState = s.window.Contains(start)

	var fatal error
loop:
	for {
		select {
		case <-stop:
			break loop
		default:
		}

		if err := s.tick(ctx); err != nil {
			fatal = err
			break
		}

		// Additive interval: the timer starts after the tick's work completes
		select {
		case <-stop:
			break loop
		case <-time.After(s.cfg.CheckInterval):
		}
	}

	stopTime := s.now()
	s.console("MB Bank transaction monitor stopped")
	if fatal != nil {
		s.logger.Error("Monitor stopped after fatal error", "error", fatal)
	} else {
		s.logger.Info("Monitor stopped")
	}
	s.dispatch(ctx, FormatShutdown(stopTime))

	return fatal
}

// tick performs one iteration of the loop. A returned error is fatal and
// terminates the loop.
func (s *Scheduler) tick(ctx context.Context) error {
	now := s.now()
	s.metrics.Ticks.Inc()

	// Console housekeeping, purely cosmetic
	if now.Sub(s.lastConsoleClear) > s.cfg.ConsoleClearInterval {
		clearConsole()
		s.console("Console cleared. MB Bank transaction monitor running...")
		s.lastConsoleClear = now
	}

	// Daily log rotation, best effort inside its slot
	if dateOf(now).After(s.lastFlushDate) && s.inRotationSlot(now) {
		s.console("Rotating log files...")
		RotateLogs(s.logDir, now, s.logger)
		s.metrics.LogRotations.Inc()
		s.lastFlushDate = dateOf(now)
	}

	// Operating-hours transition detection
	operating := s.window.Contains(now)
	if operating != s.lastOperationState {
		if operating {
			s.enterOperatingHours(ctx, now)
		} else {
			s.leaveOperatingHours(ctx, now)
		}
		s.lastOperationState = operating
	}

	// Periodic weather refresh, only while operating. The last-check
	// timestamp advances even when the fetch fails so a broken weather
	// endpoint is not hammered every tick.
	if operating && now.Sub(s.lastWeatherCheck) >= s.weatherInterval {
		s.console("Checking weather data...")
		s.reportWeather(ctx)
		s.lastWeatherCheck = now
	}

	if operating {
		return s.checkTransactions(ctx, now)
	}

	s.logger.Debug("Outside operating hours, skipping transaction check")
	return nil
}

// enterOperatingHours handles the off → on transition: good morning first,
// then an immediate weather report
func (s *Scheduler) enterOperatingHours(ctx context.Context, now time.Time) {
	s.console("Operating hours began, sending morning message")
	s.dispatch(ctx, morningMessage)

	if s.reportWeather(ctx) {
		s.lastWeatherCheck = now
	}
}

// leaveOperatingHours handles the on → off transition: the daily summary goes
// out before the goodnight message
func (s *Scheduler) leaveOperatingHours(ctx context.Context, now time.Time) {
	s.console("Operating hours ended, generating daily transaction summary...")

	dayStart := dateOf(now)
	history, err := Do(ctx, s.retry, func(ctx context.Context) (*model.TransactionHistory, error) {
		return s.bank.TransactionHistory(ctx, dayStart, now)
	})

	var records []model.Transaction
	if err != nil {
		s.logger.Error("Failed to fetch history for daily summary", "error", err)
	} else if history != nil {
		records = history.TransactionHistoryList
	}

	summary := Summarize(dayStart, records, err)
	s.dispatch(ctx, FormatDailySummary(summary))
	s.dispatch(ctx, goodnightMessage)
}

// reportWeather fetches and dispatches a weather report. Weather is never
// load-bearing: any failure is logged and reported as "no data".
func (s *Scheduler) reportWeather(ctx context.Context) bool {
	weather, err := s.weather.Current(ctx)
	if err != nil {
		s.logger.Warn("Weather fetch failed", "error", err)
		return false
	}

	s.dispatch(ctx, FormatWeather(weather, s.now().Sub(s.startedAt)))
	s.metrics.WeatherUpdates.Inc()
	return true
}

// checkTransactions fetches today's latest transaction and notifies when it
// is new. Transient upstream trouble and empty results keep the loop running;
// anything else is fatal.
func (s *Scheduler) checkTransactions(ctx context.Context, now time.Time) error {
	dayStart := dateOf(now)
	s.console("Requesting transaction data from MB Bank server...")

	history, err := Do(ctx, s.retry, func(ctx context.Context) (*model.TransactionHistory, error) {
		return s.bank.TransactionHistory(ctx, dayStart, now)
	})
	if err != nil {
		if bank.IsTransient(err) || errors.Is(err, ErrRetriesExhausted) {
			s.metrics.FetchErrors.Inc()
			s.console("No transaction found or API temporarily unavailable")
			s.logger.Warn("Transient bank API failure, will retry on next check", "error", err)
			return nil
		}
		return s.fatal(ctx, err)
	}

	latest := latestOf(history.TransactionHistoryList)
	if latest == nil {
		s.console("No transactions found for today")
		s.logger.Debug("No transaction history found for today")
		return nil
	}

	previous, err := s.store.Load()
	if err != nil {
		return s.fatal(ctx, err)
	}

	if !IsNewTransaction(latest, previous) {
		s.console("No new transactions. Latest refNo: %s", latest.RefNo)
		s.logger.Debug("No new transactions", "ref_no", latest.RefNo)
		return nil
	}

	s.console("New transaction detected! Ref: %s", latest.RefNo)
	s.logger.WithRefNo(latest.RefNo).Info("New transaction detected")

	// Persist before dispatch: a crash after dispatch must not re-notify
	if err := s.store.Save(latest); err != nil {
		return s.fatal(ctx, err)
	}
	if s.archive != nil {
		if err := s.archive.Save(latest, now); err != nil {
			s.logger.Error("Failed to archive transaction", "ref_no", latest.RefNo, "error", err)
		}
	}

	s.metrics.TransactionsDetected.Inc()
	s.dispatch(ctx, FormatTransaction(latest, s.accountInfo))

	// Raw record to the console as well
	if raw, err := json.MarshalIndent(latest, "", "    "); err == nil {
		fmt.Println(string(raw))
	}

	return nil
}

// fatal logs err at highest severity and sends a best-effort error
// notification before the loop terminates
func (s *Scheduler) fatal(ctx context.Context, err error) error {
	s.console("Error during transaction check: %v", err)
	s.logger.Error("Fatal error during transaction check", "error", err)
	s.dispatch(ctx, FormatFatalError(err, s.now()))
	return err
}

// dispatch sends a notification, counting failures but never failing the loop
func (s *Scheduler) dispatch(ctx context.Context, text string) {
	if !s.dispatcher.Dispatch(ctx, text) {
		s.metrics.DispatchFailures.Inc()
	}
}

// inRotationSlot reports whether now is inside the daily rotation window,
// which opens at the operating start time
func (s *Scheduler) inRotationSlot(now time.Time) bool {
	slotStart := time.Date(now.Year(), now.Month(), now.Day(),
		s.window.StartHour, s.window.StartMinute, 0, 0, now.Location())
	return !now.Before(slotStart) && now.Before(slotStart.Add(rotationSlot))
}

// latestOf picks the most recent transaction. The upstream API claims
// newest-first ordering, but that is not trusted: entries with parseable
// dates are compared, and only a fully unparseable list falls back to the
// upstream's ordering.
func latestOf(records []model.Transaction) *model.Transaction {
	if len(records) == 0 {
		return nil
	}

	best := 0
	bestTime, ok := parseTxDate(records[0].TransactionDate)
	for i := 1; i < len(records); i++ {
		t, parsed := parseTxDate(records[i].TransactionDate)
		if !parsed {
			continue
		}
		if !ok || t.After(bestTime) {
			best, bestTime, ok = i, t, true
		}
	}

	tx := records[best]
	return &tx
}

func parseTxDate(s string) (time.Time, bool) {
	t, err := time.Parse(txDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func clearConsole() {
	fmt.Print("\033[2J\033[H")
}

func (s *Scheduler) console(format string, args ...interface{}) {
	fmt.Printf("[%s] %s\n", s.now().Format(time.DateTime), fmt.Sprintf(format, args...))
}
