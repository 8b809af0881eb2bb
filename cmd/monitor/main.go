package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mbbank-monitor/internal/bank"
	"mbbank-monitor/internal/config"
	"mbbank-monitor/internal/metrics"
	"mbbank-monitor/internal/monitor"
	"mbbank-monitor/internal/notify"
	"mbbank-monitor/internal/repository"
	"mbbank-monitor/internal/weather"
	"mbbank-monitor/pkg/logger"
)

func main() {
	if len(os.Args) != 3 {
		printJSONError("Usage: mbbank-monitor <username> <password>")
		os.Exit(1)
	}
	username := os.Args[1]
	password := os.Args[2]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewFile(cfg.Logging.Level, filepath.Join(cfg.Logging.Dir, cfg.Logging.File))
	appLogger.Info("Starting MB Bank transaction monitor", "channel", cfg.Monitor.Channel)

	// Initialize notification channel
	var notifier notify.Notifier
	switch cfg.Monitor.Channel {
	case config.ChannelWhatsApp:
		wa, err := notify.NewWhatsApp(context.Background(), &cfg.WhatsApp, appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize WhatsApp notifier", "error", err)
			log.Fatalf("Failed to initialize WhatsApp notifier: %v", err)
		}
		if err := wa.Connect(context.Background()); err != nil {
			appLogger.Error("Failed to connect to WhatsApp", "error", err)
			log.Fatalf("Failed to connect to WhatsApp: %v", err)
		}
		defer wa.Disconnect()
		notifier = wa
	default:
		notifier = notify.NewTelegram(&cfg.Telegram, appLogger)
	}

	dispatcher := notify.NewDispatcher(notifier, cfg.RateLimit.MaxMessagesPerSecond, appLogger)

	// Durable state
	store := repository.NewLastTransactionStore(cfg.Storage.LastTransactionFile, appLogger)
	archive, err := repository.NewArchiveRepository(cfg.Storage.ArchiveDBPath)
	if err != nil {
		appLogger.Error("Failed to open transaction archive", "error", err)
		log.Fatalf("Failed to open transaction archive: %v", err)
	}
	defer archive.Close()

	// Collaborators
	bankClient := bank.NewClient(&cfg.Bank, username, password, appLogger)
	weatherClient := weather.NewClient(&cfg.Weather, appLogger)

	// Metrics, with an optional health/metrics listener
	monitorMetrics := metrics.New()
	if cfg.Health.Addr != "" {
		healthServer := metrics.NewServer(&cfg.Health, cfg.Monitor.Channel, appLogger)
		healthServer.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthServer.Shutdown(ctx); err != nil {
				appLogger.Error("Health server shutdown failed", "error", err)
			}
		}()
	}

	// Cooperative shutdown: both termination signals request the same stop,
	// and the loop finishes its current tick before exiting
	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLogger.Info("Received termination signal, shutting down gracefully", "signal", sig.String())
		close(stop)
	}()

	sched := monitor.New(monitor.Options{
		Config:          cfg.Monitor,
		WeatherInterval: cfg.Weather.Interval,
		AccountInfo:     cfg.Bank.AccountInfo,
		LogDir:          cfg.Logging.Dir,
		Bank:            bankClient,
		Weather:         weatherClient,
		Store:           store,
		Archive:         archive,
		Dispatcher:      dispatcher,
		Metrics:         monitorMetrics,
		Logger:          appLogger,
	})

	if err := sched.Run(stop); err != nil {
		printJSONError(fmt.Sprintf("monitoring stopped: %v", err))
		os.Exit(1)
	}
}

func printJSONError(msg string) {
	out, _ := json.Marshal(map[string]string{"error": msg})
	fmt.Println(string(out))
}
