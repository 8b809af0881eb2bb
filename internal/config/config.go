package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Bank      BankConfig
	Telegram  TelegramConfig
	WhatsApp  WhatsAppConfig
	Weather   WeatherConfig
	Monitor   MonitorConfig
	Storage   StorageConfig
	Logging   LoggingConfig
	Health    HealthConfig
	RateLimit RateLimitConfig
}

// BankConfig holds MB Bank API configuration
type BankConfig struct {
	BaseURL     string
	AccountInfo string
	Timeout     time.Duration
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string
	GroupID  string
}

// WhatsAppConfig holds WhatsApp channel configuration
type WhatsAppConfig struct {
	DBPath  string
	GroupID string
}

// WeatherConfig holds weather API configuration
type WeatherConfig struct {
	APIKey      string
	Coordinates string
	Interval    time.Duration
}

// MonitorConfig holds poll loop configuration
type MonitorConfig struct {
	Channel              string
	CheckInterval        time.Duration
	ConsoleClearInterval time.Duration
	OperatingStartHour   int
	OperatingStartMinute int
	OperatingEndHour     int
	OperatingEndMinute   int
	RetryMaxAttempts     int
	RetryInitialDelay    time.Duration
}

// StorageConfig holds durable state configuration
type StorageConfig struct {
	LastTransactionFile string
	ArchiveDBPath       string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
	File  string
	Dir   string
}

// HealthConfig holds health/metrics endpoint configuration
type HealthConfig struct {
	Addr   string
	APIKey string
}

// RateLimitConfig holds notification rate limiting configuration
type RateLimitConfig struct {
	MaxMessagesPerSecond int
}

// Channel identifiers accepted by MonitorConfig.Channel.
const (
	ChannelTelegram = "telegram"
	ChannelWhatsApp = "whatsapp"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	config := &Config{
		Bank: BankConfig{
			BaseURL:     getEnv("BANK_API_BASE_URL", "https://online.mbbank.com.vn"),
			AccountInfo: getEnv("ACCOUNT_INFO", ""),
			Timeout:     parseDuration(getEnv("REQUEST_TIMEOUT", "15s"), 15*time.Second),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			GroupID:  getEnv("TELEGRAM_GROUP_ID", ""),
		},
		WhatsApp: WhatsAppConfig{
			DBPath:  getEnv("WA_DB_PATH", "./db/whatsmeow.db"),
			GroupID: getEnv("WA_GROUP_ID", ""),
		},
		Weather: WeatherConfig{
			APIKey:      getEnv("WEATHER_API_KEY", ""),
			Coordinates: getEnv("WEATHER_COORDINATES", ""),
			Interval:    parseDuration(getEnv("WEATHER_CHECK_INTERVAL", "90m"), 90*time.Minute),
		},
		Monitor: MonitorConfig{
			Channel:              getEnv("NOTIFY_CHANNEL", ChannelTelegram),
			CheckInterval:        parseDuration(getEnv("CHECK_INTERVAL", "10s"), 10*time.Second),
			ConsoleClearInterval: parseDuration(getEnv("CONSOLE_CLEAR_INTERVAL", "5m"), 5*time.Minute),
			OperatingStartHour:   parseInt(getEnv("OPERATING_START_HOUR", "7"), 7),
			OperatingStartMinute: parseInt(getEnv("OPERATING_START_MINUTE", "30"), 30),
			OperatingEndHour:     parseInt(getEnv("OPERATING_END_HOUR", "22"), 22),
			OperatingEndMinute:   parseInt(getEnv("OPERATING_END_MINUTE", "30"), 30),
			RetryMaxAttempts:     parseInt(getEnv("RETRY_MAX_ATTEMPTS", "3"), 3),
			RetryInitialDelay:    parseDuration(getEnv("RETRY_INITIAL_DELAY", "5s"), 5*time.Second),
		},
		Storage: StorageConfig{
			LastTransactionFile: getEnv("TRANSACTION_STORE_FILE", "last_transaction.json"),
			ArchiveDBPath:       getEnv("ARCHIVE_DB_PATH", "./db/transactions.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
			File:  getEnv("LOG_FILE", "mb_transaction_monitor.log"),
			Dir:   getEnv("LOG_DIR", "."),
		},
		Health: HealthConfig{
			Addr:   getEnv("HEALTH_ADDR", ""),
			APIKey: getEnv("HEALTH_API_KEY", ""),
		},
		RateLimit: RateLimitConfig{
			MaxMessagesPerSecond: parseInt(getEnv("MAX_MESSAGES_PER_SECOND", "5"), 5),
		},
	}

	// Validate required fields
	switch config.Monitor.Channel {
	case ChannelTelegram:
		if config.Telegram.BotToken == "" || config.Telegram.GroupID == "" {
			return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_GROUP_ID are required for the telegram channel")
		}
	case ChannelWhatsApp:
		if config.WhatsApp.GroupID == "" {
			return nil, fmt.Errorf("WA_GROUP_ID is required for the whatsapp channel")
		}
	default:
		return nil, fmt.Errorf("unknown NOTIFY_CHANNEL %q (expected %q or %q)",
			config.Monitor.Channel, ChannelTelegram, ChannelWhatsApp)
	}

	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseInt parses string to int with default value
func parseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// parseDuration parses string to time.Duration with default value
func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
