package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"cryptoDashboard/config"
	"cryptoDashboard/internal/adapters/logger"
	"cryptoDashboard/internal/adapters/sqlite"
	"cryptoDashboard/internal/app"
	"cryptoDashboard/internal/domain"
)

// Imports the bot's portfolio.json ({"BTC/USD": 0.5, ...}) and
// ranked_coins.json ({"BTC/USD": {"score": 0.9, "price": 61000}, ...}) into
// the dashboard database. A missing file is skipped.
func main() {
	portfolioPath := flag.String("portfolio", "data/portfolio.json", "Holdings file, symbol to quantity")
	rankingPath := flag.String("ranking", "data/ranked_coins.json", "Ranking file, symbol to score and price")
	flag.Parse()

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

	holdings, err := app.NewHoldingsService(appLogger, repo, repo)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize holdings service: %v", err)
	}

	var quantities map[string]float64
	if found, err := readJSON(*portfolioPath, &quantities); err != nil {
		appLogger.Error(ctx, err, "Error reading portfolio file", map[string]interface{}{"path": *portfolioPath})
		log.Fatalf("Error reading portfolio file: %v", err)
	} else if found {
		for symbol, qty := range quantities {
			if err := holdings.SetHolding(ctx, symbol, qty); err != nil {
				appLogger.Error(ctx, err, "Error importing holding", map[string]interface{}{"symbol": symbol})
				log.Fatalf("Error importing holding %s: %v", symbol, err)
			}
		}
		appLogger.Info(ctx, "Portfolio imported", map[string]interface{}{"path": *portfolioPath, "count": len(quantities)})
	}

	var ranked map[string]domain.RankedCoin
	if found, err := readJSON(*rankingPath, &ranked); err != nil {
		appLogger.Error(ctx, err, "Error reading ranking file", map[string]interface{}{"path": *rankingPath})
		log.Fatalf("Error reading ranking file: %v", err)
	} else if found {
		if err := holdings.ReplaceRanking(ctx, ranked); err != nil {
			appLogger.Error(ctx, err, "Error importing ranking")
			log.Fatalf("Error importing ranking: %v", err)
		}
		appLogger.Info(ctx, "Ranking imported", map[string]interface{}{"path": *rankingPath, "count": len(ranked)})
	}
}

func readJSON(path string, dst interface{}) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()
	return true, json.NewDecoder(f).Decode(dst)
}
