package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zayLatt25/receipt-app/internal/amqp"
	"github.com/zayLatt25/receipt-app/internal/backend"
	"github.com/zayLatt25/receipt-app/internal/config"
	apphttp "github.com/zayLatt25/receipt-app/internal/http"
	applog "github.com/zayLatt25/receipt-app/internal/log"
	"github.com/zayLatt25/receipt-app/internal/services"
	"github.com/zayLatt25/receipt-app/internal/stats"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	backendType, err := backend.ParseType(cfg.DataBackend)
	if err != nil {
		logger.Error("Invalid backend", "error", err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger.Logger).Create(backendType, cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	// AMQP is optional: without it mutations still work, they just go
	// unannounced.
	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPEventQueue, cfg.AMQPNotifyQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			defer amqpClient.Close()
			events = amqpClient
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"event_queue", cfg.AMQPEventQueue)
		}
	}

	months := stats.NewMonthCache(result.Stores.Records.ListByMonth)
	expenses := services.NewExpenseService(result.Stores.Records, result.Stores.Records, months, events)
	summaries := services.NewSummaryService(result.Stores.Records, months)

	srv := apphttp.NewServer(":"+cfg.Port, expenses, summaries, result.Stores.Taxonomy, result.Stores.Grocery,
		logger.WithComponent(applog.ComponentHTTP))
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting receiptd", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
