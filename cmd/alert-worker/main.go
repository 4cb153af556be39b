package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/ai"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/amqp"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/config"
	applog "github.com/abditahlilabdinur71-create/Smart-Expense/internal/log"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage/sqlite"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: "alert-worker",
	})
	applog.SetDefault(logger)

	logger.Info("Starting alert-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required: the alert-worker consumes transaction events")
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	// OpenAI is optional; without it alerts are logged without advisory text.
	var insights ai.InsightGenerator
	if cfg.OpenAIAPIKey != "" {
		insights = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		logger.Info("OpenAI client initialized")
	} else {
		logger.Info("OpenAI disabled - alerts will not carry advisory insights")
	}

	alertWorker := worker.NewAlertWorker(store, insights)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Evaluate once on startup so a restart never misses alerts raised while
	// the worker was down.
	if alerts, err := alertWorker.Evaluate(ctx, time.Now()); err != nil {
		logger.Error("Startup evaluation failed", "error", err)
	} else {
		logger.Info("Startup evaluation complete", "alerts", len(alerts))
	}

	go func() {
		err := amqpClient.ConsumeTransactionEvents(ctx, func(msg *amqp.TransactionEventMessage) error {
			return alertWorker.HandleTransactionEvent(ctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Event consumption failed", "error", err)
		}
		cancel()
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down alert-worker...")
	cancel()
	logger.Info("Alert-worker shutdown complete")
}
