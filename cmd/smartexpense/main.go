package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/ai"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/amqp"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/config"
	apphttp "github.com/abditahlilabdinur71-create/Smart-Expense/internal/http"
	applog "github.com/abditahlilabdinur71-create/Smart-Expense/internal/log"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/services"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage/memory"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage/sqlite"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: "smartexpense",
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Choose data backend (default: memory).
	var (
		store storage.Store
		err   error
	)
	switch cfg.DataBackend {
	case "sqlite":
		store, err = sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		store = memory.New()
		logger.Info("Initialized memory backend")
	}
	defer store.Close()

	// AMQP is optional; without it mutations stay local-only.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing in local-only mode", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - transaction events will not be published")
	}

	// OpenAI is optional; without it categorization and insights degrade to
	// their fallbacks.
	var (
		categorizer ai.Categorizer
		insights    ai.InsightGenerator
	)
	if cfg.OpenAIAPIKey != "" {
		client := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		categorizer, insights = client, client
		logger.Info("OpenAI client initialized")
	} else {
		logger.Info("OpenAI disabled - using fallback category and insights")
	}

	transactions := services.NewTransactionService(store, amqpClient)
	reconciler := services.NewReconciler(store, amqpClient)
	resolver := ai.NewResolver(store, categorizer)

	srv := apphttp.NewServer(":"+cfg.Port, store, transactions, reconciler, resolver, insights)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run initial materialization so recurring rules with past start dates
	// backfill before the first request.
	if count, err := reconciler.Reconcile(ctx, time.Now()); err != nil {
		logger.Error("Initial reconciliation failed", "error", err)
	} else if count > 0 {
		logger.Info("Initial reconciliation complete", "transactions_created", count)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting smartexpense server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ReconcileInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				if count, err := reconciler.Reconcile(gctx, now); err != nil {
					logger.Error("Periodic reconciliation failed", "error", err)
				} else if count > 0 {
					srv.InvalidateSummaries()
					logger.Info("Periodic reconciliation complete", "transactions_created", count)
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
