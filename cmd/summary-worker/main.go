package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zayLatt25/receipt-app/internal/amqp"
	"github.com/zayLatt25/receipt-app/internal/config"
	applog "github.com/zayLatt25/receipt-app/internal/log"
	"github.com/zayLatt25/receipt-app/internal/services"
	"github.com/zayLatt25/receipt-app/internal/sheets"
	"github.com/zayLatt25/receipt-app/internal/stats"
	"github.com/zayLatt25/receipt-app/internal/storage"
	"github.com/zayLatt25/receipt-app/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting summary-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// The worker reads the same SQLite database the server writes.
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPEventQueue, cfg.AMQPNotifyQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Spreadsheet export is optional.
	var exporter worker.RecordExporter
	if cfg.SheetsExportEnabled() {
		exp, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleCredentialsFile,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
		})
		if err != nil {
			logger.Error("Failed to initialize sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = exp
		logger.Info("Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Sheets export disabled - no spreadsheet configured")
	}

	exportWorker := worker.NewExportWorker(amqpClient, repo, exporter)
	go func() {
		if err := exportWorker.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("Record event consumption failed", "error", err)
			cancel()
		}
	}()

	months := stats.NewMonthCache(repo.ListByMonth)
	summaries := services.NewSummaryService(repo, months)
	notifyWorker := worker.NewNotifyWorker(summaries, amqpClient, cfg.NotifyInterval)
	if err := notifyWorker.Start(ctx); err != nil {
		logger.Error("Failed to start notify worker", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := notifyWorker.Stop(shutdownCtx); err != nil {
		logger.Warn("Notify worker shutdown timed out", "error", err)
	}

	logger.Info("Worker shutdown complete")
}
