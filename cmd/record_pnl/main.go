package main

import (
	"context"
	"flag"
	"log"
	"time"

	"cryptoDashboard/config"
	"cryptoDashboard/internal/adapters/logger"
	"cryptoDashboard/internal/adapters/sqlite"
	"cryptoDashboard/internal/app"
)

func main() {
	value := flag.Float64("value", -1, "Account value in USD")
	date := flag.String("date", time.Now().UTC().Format("2006-01-02"), "Snapshot date (YYYY-MM-DD)")
	flag.Parse()

	if *value < 0 {
		log.Fatalf("FATAL: -value is required and cannot be negative")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	appLogger := logger.NewZeroLogger(cfg.LogLevel)
	ctx := context.Background()

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	portfolio, err := app.NewPortfolioService(appLogger, repo)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize portfolio service: %v", err)
	}

	snap, created, err := portfolio.RecordSnapshot(ctx, *date, *value)
	if err != nil {
		appLogger.Error(ctx, err, "Error recording snapshot")
		log.Fatalf("Error recording snapshot: %v", err)
	}
	if !created {
		appLogger.Warn(ctx, "Snapshot for date already recorded, left unchanged", map[string]interface{}{"date": *date})
		return
	}
	appLogger.Info(ctx, "Snapshot recorded", map[string]interface{}{
		"date":      snap.Date,
		"value_usd": snap.ValueUSD,
		"pct_pnl":   snap.PctPnL,
	})
}
