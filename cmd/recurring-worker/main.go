package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/amqp"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/config"
	applog "github.com/abditahlilabdinur71-create/Smart-Expense/internal/log"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/services"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage/sqlite"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: "recurring-worker",
	})
	applog.SetDefault(logger)

	logger.Info("Starting recurring-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// The worker shares the SQLite database with the server; a memory backend
	// would materialize into a private store nobody reads.
	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	// AMQP client for publishing materialization events (optional).
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing in local-only mode", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized - materialization events will be published")
		}
	} else {
		logger.Info("AMQP disabled - materialization events will not be published")
	}

	reconciler := services.NewReconciler(store, amqpClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Recurring reconciler configured",
		"interval", cfg.ReconcileInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.ReconcileInterval)
	defer ticker.Stop()

	// Run initial reconciliation on startup
	logger.Info("Running initial recurring reconciliation...")
	if count, err := reconciler.Reconcile(ctx, time.Now()); err != nil {
		logger.Error("Initial reconciliation failed", "error", err)
	} else {
		logger.Info("Initial reconciliation complete", "transactions_created", count)
	}

	// Start periodic reconciliation
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				count, err := reconciler.Reconcile(ctx, now)
				if err != nil {
					logger.Error("Periodic reconciliation failed", "error", err)
				} else {
					logger.Info("Periodic reconciliation complete",
						"transactions_created", count,
						"next_check", now.Add(cfg.ReconcileInterval).Format("15:04:05"))
				}
			}
		}
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

	logger.Info("Shutting down recurring-worker...")
	cancel()
	logger.Info("Recurring-worker shutdown complete")
}
