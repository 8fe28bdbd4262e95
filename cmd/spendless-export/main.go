// spendless-export is a one-shot export runner: it reads the stored
// transactions, serializes the requested format and hands the bytes to
// a directory FileSink.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rribeiro1/spendless/internal/config"
	"github.com/rribeiro1/spendless/internal/export"
	"github.com/rribeiro1/spendless/internal/log"
	"github.com/rribeiro1/spendless/internal/services"
	"github.com/rribeiro1/spendless/internal/storage"
)

func main() {
	_ = godotenv.Load()

	formatFlag := flag.String("format", "csv", "export format: csv, pdf-layout or chart")
	windowFlag := flag.String("window", "all", "time window: all, current-month, last-month or last-three-months")
	userFlag := flag.Int64("user", 1, "user whose formatting preferences apply")
	flag.Parse()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentExport)
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	if err := run(context.Background(), logger, cfg, *formatFlag, *windowFlag, *userFlag); err != nil {
		logger.Error("Export failed", log.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, cfg *config.Config, format, window string, userID int64) error {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	transactions, err := repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	now := time.Now()
	switch window {
	case "all":
	case "current-month":
		transactions = services.FromCurrentMonth(transactions, now)
	case "last-month":
		transactions = services.FromLastMonth(transactions, now)
	case "last-three-months":
		transactions = services.FromLastThreeMonths(transactions, now)
	default:
		return fmt.Errorf("unknown window %q", window)
	}

	prefs, err := repo.FormattingPreferences(ctx, userID)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	var (
		name string
		mime string
		data []byte
	)
	switch format {
	case "csv":
		text, err := export.ToCSV(transactions)
		if err != nil {
			return fmt.Errorf("serialize csv: %w", err)
		}
		name, mime, data = "transactions.csv", "text/csv", []byte(text)
	case "pdf-layout":
		pages := export.ToPDFLayout(transactions, prefs)
		encoded, err := json.MarshalIndent(pages, "", "  ")
		if err != nil {
			return fmt.Errorf("encode pdf layout: %w", err)
		}
		name, mime, data = "transactions-layout.json", "application/json", encoded
	case "chart":
		png, err := export.TrendChart(transactions, now)
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		if png == nil {
			return fmt.Errorf("no transactions in the chart window")
		}
		name, mime, data = "spending-trend.png", "image/png", png
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	sink, err := export.NewDirSink(cfg.ExportDir)
	if err != nil {
		return fmt.Errorf("open export sink: %w", err)
	}

	handle, err := sink.Put(name, mime, data)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	logger.InfoContext(ctx, "Export written",
		log.FieldExportName, name,
		log.FieldMimeType, mime,
		log.FieldHandle, handle,
		"transactions", len(transactions))
	return nil
}
