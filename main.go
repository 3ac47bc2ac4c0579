package main

import (
	"context"
	"errors"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cryptoDashboard/config"
	"cryptoDashboard/internal/adapters/binanceclient"
	"cryptoDashboard/internal/adapters/csvstore"
	"cryptoDashboard/internal/adapters/dashclient"
	"cryptoDashboard/internal/adapters/logger"
	"cryptoDashboard/internal/adapters/sqlite"
	"cryptoDashboard/internal/adapters/webui"
	"cryptoDashboard/internal/api"
	"cryptoDashboard/internal/app"
	"cryptoDashboard/internal/ports"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewZeroLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()
	appLogger.Info(ctx, "Database repository initialized", map[string]interface{}{"path": cfg.DBPath})

	// 4. Initialize Candle Sources (CSV first, exchange as fallback)
	store, err := csvstore.New(cfg.HistoricalDir, appLogger)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize CSV candle store")
		log.Fatalf("FATAL: Failed to initialize CSV candle store: %v", err)
	}
	sources := []ports.CandleSource{store}
	if cfg.UseExchangeCandles {
		binanceClient, err := binanceclient.New(binanceclient.Config{
			APIKey:     cfg.APIKey,
			SecretKey:  cfg.SecretKey,
			UseTestnet: cfg.IsTestnet,
			Limit:      cfg.CandleLimit,
			Logger:     appLogger,
		})
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to initialize Binance client")
			log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
		}
		sources = append(sources, binanceClient)
	}
	appLogger.Info(ctx, "Candle sources initialized", map[string]interface{}{"count": len(sources)})

	// 5. Initialize Application Services
	coinService, err := app.NewCoinDataService(appLogger, repo, repo, sources...)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize coin data service")
		log.Fatalf("FATAL: Failed to initialize coin data service: %v", err)
	}
	portfolioService, err := app.NewPortfolioService(appLogger, repo)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize portfolio service")
		log.Fatalf("FATAL: Failed to initialize portfolio service: %v", err)
	}

	holdingsService, err := app.NewHoldingsService(appLogger, repo, repo)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize holdings service")
		log.Fatalf("FATAL: Failed to initialize holdings service: %v", err)
	}

	// 6. Initialize Views
	backend, err := dashclient.New(dashclient.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.FetchTimeout,
		Logger:  appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize backend client")
		log.Fatalf("FATAL: Failed to initialize backend client: %v", err)
	}
	hub := webui.NewHub(appLogger)
	dashboard, err := app.NewDashboard(appLogger, backend, hub, cfg.Views)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize dashboard")
		log.Fatalf("FATAL: Failed to initialize dashboard: %v", err)
	}

	// 7. Start HTTP Server
	handler := api.NewAPIHandler(coinService, portfolioService, holdingsService, dashboard, hub, appLogger)
	srv := &http.Server{
		Handler:           handler.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Listen before the views start so their first fetch can reach the backend.
	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to listen", map[string]interface{}{"addr": cfg.HTTPAddr})
		log.Fatalf("FATAL: Failed to listen on %s: %v", cfg.HTTPAddr, err)
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	appLogger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": ln.Addr().String()})

	// 8. Start the Dashboard
	if err := dashboard.Start(ctx); err != nil {
		appLogger.Error(ctx, err, "Dashboard failed to start")
	}

	select {
	case <-ctx.Done():
		appLogger.Info(context.Background(), "Shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(context.Background(), err, "HTTP server exited with error")
		}
	}

	dashboard.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, err, "HTTP server shutdown failed")
	}

	appLogger.Info(context.Background(), "Application finished gracefully.")
}
