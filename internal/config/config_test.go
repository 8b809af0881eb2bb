package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_GROUP_ID", "-100200300")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Monitor.Channel != ChannelTelegram {
		t.Errorf("Monitor.Channel = %q, want %q", cfg.Monitor.Channel, ChannelTelegram)
	}
	if cfg.Monitor.CheckInterval != 10*time.Second {
		t.Errorf("Monitor.CheckInterval = %v, want 10s", cfg.Monitor.CheckInterval)
	}
	if cfg.Monitor.ConsoleClearInterval != 5*time.Minute {
		t.Errorf("Monitor.ConsoleClearInterval = %v, want 5m", cfg.Monitor.ConsoleClearInterval)
	}
	if cfg.Monitor.OperatingStartHour != 7 || cfg.Monitor.OperatingStartMinute != 30 {
		t.Errorf("operating start = %d:%d, want 7:30",
			cfg.Monitor.OperatingStartHour, cfg.Monitor.OperatingStartMinute)
	}
	if cfg.Monitor.OperatingEndHour != 22 || cfg.Monitor.OperatingEndMinute != 30 {
		t.Errorf("operating end = %d:%d, want 22:30",
			cfg.Monitor.OperatingEndHour, cfg.Monitor.OperatingEndMinute)
	}
	if cfg.Monitor.RetryMaxAttempts != 3 {
		t.Errorf("Monitor.RetryMaxAttempts = %d, want 3", cfg.Monitor.RetryMaxAttempts)
	}
	if cfg.Monitor.RetryInitialDelay != 5*time.Second {
		t.Errorf("Monitor.RetryInitialDelay = %v, want 5s", cfg.Monitor.RetryInitialDelay)
	}
	if cfg.Weather.Interval != 90*time.Minute {
		t.Errorf("Weather.Interval = %v, want 90m", cfg.Weather.Interval)
	}
	if cfg.Storage.LastTransactionFile != "last_transaction.json" {
		t.Errorf("Storage.LastTransactionFile = %q, want last_transaction.json", cfg.Storage.LastTransactionFile)
	}
	if cfg.Bank.Timeout != 15*time.Second {
		t.Errorf("Bank.Timeout = %v, want 15s", cfg.Bank.Timeout)
	}
	if cfg.RateLimit.MaxMessagesPerSecond != 5 {
		t.Errorf("RateLimit.MaxMessagesPerSecond = %d, want 5", cfg.RateLimit.MaxMessagesPerSecond)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_GROUP_ID", "-100200300")
	t.Setenv("CHECK_INTERVAL", "30s")
	t.Setenv("OPERATING_START_HOUR", "8")
	t.Setenv("RETRY_MAX_ATTEMPTS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Monitor.CheckInterval != 30*time.Second {
		t.Errorf("Monitor.CheckInterval = %v, want 30s", cfg.Monitor.CheckInterval)
	}
	if cfg.Monitor.OperatingStartHour != 8 {
		t.Errorf("Monitor.OperatingStartHour = %d, want 8", cfg.Monitor.OperatingStartHour)
	}
	if cfg.Monitor.RetryMaxAttempts != 5 {
		t.Errorf("Monitor.RetryMaxAttempts = %d, want 5", cfg.Monitor.RetryMaxAttempts)
	}
}

func TestLoadMissingTelegramConfig(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_GROUP_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error for missing telegram credentials")
	}
}

func TestLoadWhatsAppChannel(t *testing.T) {
	t.Setenv("NOTIFY_CHANNEL", "whatsapp")
	t.Setenv("WA_GROUP_ID", "1234567890@g.us")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Monitor.Channel != ChannelWhatsApp {
		t.Errorf("Monitor.Channel = %q, want %q", cfg.Monitor.Channel, ChannelWhatsApp)
	}
}

func TestLoadUnknownChannel(t *testing.T) {
	t.Setenv("NOTIFY_CHANNEL", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error for unknown channel")
	}
}

func TestParseHelpers(t *testing.T) {
	if got := parseInt("42", 7); got != 42 {
		t.Errorf("parseInt(42) = %d, want 42", got)
	}
	if got := parseInt("not-a-number", 7); got != 7 {
		t.Errorf("parseInt(bad) = %d, want default 7", got)
	}
	if got := parseDuration("2m", time.Second); got != 2*time.Minute {
		t.Errorf("parseDuration(2m) = %v, want 2m", got)
	}
	if got := parseDuration("soon", time.Second); got != time.Second {
		t.Errorf("parseDuration(bad) = %v, want default 1s", got)
	}
}
