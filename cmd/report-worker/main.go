// Command report-worker consumes report requests from AMQP and exports each
// month report to Google Sheets, or to CSV files when no spreadsheet is
// configured.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"wealthify/internal/amqp"
	"wealthify/internal/api"
	"wealthify/internal/cli"
	"wealthify/internal/core"
	applog "wealthify/internal/log"
	"wealthify/internal/services"
	"wealthify/internal/sheets"
	gsheet "wealthify/internal/sheets/google"
	"wealthify/internal/worker"
)

const (
	dedupSize       = 256
	dedupTTL        = 24 * time.Hour
	shutdownTimeout = 30 * time.Second
)

func main() {
	if err := cli.LoadEnvFile(); err != nil {
		applog.New(applog.DefaultConfig()).Warn("Failed to load .env", applog.FieldError, err)
	}
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), os.Stderr)
	logger.Info("Starting report-worker")

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if !cfg.QueueEnabled() {
		logger.Error("AMQP_URL is required for the report worker")
		os.Exit(1)
	}

	startCtx := context.Background()
	mgr, closeSession, err := cli.OpenSession(startCtx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open session store", applog.FieldError, err)
		os.Exit(1)
	}
	defer closeSession()

	client, err := api.NewClient(cfg.APIURL, mgr, api.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to create API client", applog.FieldError, err)
		os.Exit(1)
	}

	var writer sheets.ReportWriter
	if cfg.SheetsEnabled() {
		writer, err = gsheet.New(startCtx, gsheet.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		}, logger)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = sheets.NewCSVWriter(cfg.ReportOutput)
		logger.Info("Google Sheets disabled, writing CSV reports", "output", cfg.ReportOutput)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}

	reports := services.NewReportService(client, writer, nil, logger)
	reportWorker := worker.NewReportWorker(reports, dedupSize, dedupTTL, logger)

	ctx, done := cli.GracefulShutdown(logger, shutdownTimeout, func() {
		if err := amqpClient.Close(); err != nil {
			logger.Warn("AMQP close failed", applog.FieldError, err)
		}
	})

	// Refresh the current month once so a restarted worker catches up.
	today := core.Today()
	if err := reportWorker.ExportMonth(ctx, today.Year(), today.Month()); err != nil {
		logger.Error("Startup export failed", applog.FieldError, err)
	}

	go func() {
		err := amqpClient.Run(ctx, reportWorker.HandleReportRequest)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", applog.FieldError, err)
			os.Exit(1)
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
