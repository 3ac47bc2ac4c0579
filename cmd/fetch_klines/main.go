package main

import (
	"context"
	"flag"
	"log"
	"time"

	"cryptoDashboard/config"
	"cryptoDashboard/internal/adapters/binanceclient"
	"cryptoDashboard/internal/adapters/csvstore"
	"cryptoDashboard/internal/adapters/logger"
)

func main() {
	symbol := flag.String("symbol", "BTC/USD", "Dashboard pair to fetch, e.g. BTC/USD")
	interval := flag.String("interval", "1d", "Kline interval, also the CSV file name")
	days := flag.Int("days", 90, "Number of days of history to fetch")
	flag.Parse()

	if *days <= 0 {
		log.Fatalf("FATAL: -days must be positive, got %d", *days)
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewZeroLogger(cfg.LogLevel)
	ctx := context.Background()

	// 3. Initialize Exchange Client and Candle Store
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	store, err := csvstore.New(cfg.HistoricalDir, appLogger)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize CSV candle store")
		log.Fatalf("FATAL: Failed to initialize CSV candle store: %v", err)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -*days)
	market := binanceclient.MarketSymbol(*symbol)

	appLogger.Info(ctx, "Fetching klines", map[string]interface{}{
		"symbol":   *symbol,
		"market":   market,
		"interval": *interval,
		"start":    start.Format(time.RFC3339),
		"end":      end.Format(time.RFC3339),
	})
	klines, err := binanceClient.GetKlinesRange(ctx, market, *interval, start, end)
	if err != nil {
		appLogger.Error(ctx, err, "Error fetching klines")
		log.Fatalf("Error fetching klines: %v", err)
	}
	appLogger.Info(ctx, "Fetched klines", map[string]interface{}{"count": len(klines)})

	if err := store.WriteKlines(*symbol, *interval, klines); err != nil {
		appLogger.Error(ctx, err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	path, _ := store.Path(*symbol, *interval)
	appLogger.Info(ctx, "Saved klines", map[string]interface{}{"path": path})
}
