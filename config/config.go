package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"cryptoDashboard/internal/adapters/logger"
	"cryptoDashboard/internal/domain"
)

const defaultAssetRefresh = 15 * time.Second

// Config holds all application configuration.
type Config struct {
	// HTTP
	HTTPAddr     string
	BackendURL   string        // Base URL the views fetch their payloads from
	FetchTimeout time.Duration // Client timeout for view fetches

	// Storage
	DBPath        string
	HistoricalDir string // Root of <symbol>/<timeframe>.csv candle files

	// Binance API (public klines work without keys)
	APIKey             string
	SecretKey          string
	IsTestnet          bool
	UseExchangeCandles bool
	CandleLimit        int

	// Logging
	LogLevel logger.LogLevel

	// Views
	ViewConfigPath string
	Views          Views
}

// Views holds the page settings loaded from the optional YAML view config.
type Views struct {
	Timeframes       []string `yaml:"timeframes"`
	DefaultTimeframe string   `yaml:"default_timeframe"`
	AssetRefreshMs   int      `yaml:"asset_refresh_ms"`
	Symbols          []string `yaml:"symbols"`
}

// AssetRefreshInterval returns the home view polling interval.
func (v Views) AssetRefreshInterval() time.Duration {
	if v.AssetRefreshMs <= 0 {
		return defaultAssetRefresh
	}
	return time.Duration(v.AssetRefreshMs) * time.Millisecond
}

// DefaultViews returns the settings used when no view config file exists.
func DefaultViews() Views {
	tfs := make([]string, len(domain.DefaultTimeframes))
	copy(tfs, domain.DefaultTimeframes)
	return Views{
		Timeframes:       tfs,
		DefaultTimeframe: domain.DefaultTimeframe,
		AssetRefreshMs:   int(defaultAssetRefresh / time.Millisecond),
	}
}

// LoadConfig loads configuration from environment variables (.env file) and the
// YAML view config.
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":5000")
	cfg.BackendURL = strings.TrimSuffix(getEnv("BACKEND_URL", "http://localhost:5000"), "/")
	if !strings.HasPrefix(cfg.BackendURL, "http://") && !strings.HasPrefix(cfg.BackendURL, "https://") {
		errs = append(errs, "BACKEND_URL must start with http:// or https://")
	}

	timeoutSeconds, err := getEnvAsIntRequired("FETCH_TIMEOUT_SECONDS", 10)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid FETCH_TIMEOUT_SECONDS: %v", err))
	} else if timeoutSeconds <= 0 {
		errs = append(errs, "FETCH_TIMEOUT_SECONDS must be positive")
	}
	cfg.FetchTimeout = time.Duration(timeoutSeconds) * time.Second

	cfg.DBPath = getEnv("DB_PATH", "./data/dashboard.db")
	cfg.HistoricalDir = getEnv("HISTORICAL_DIR", "./data/historical")

	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)
	cfg.UseExchangeCandles = getEnvAsBool("USE_EXCHANGE_CANDLES", true)

	cfg.CandleLimit, err = getEnvAsIntRequired("CANDLE_LIMIT", 500)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CANDLE_LIMIT: %v", err))
	} else if cfg.CandleLimit <= 0 || cfg.CandleLimit > 1500 {
		errs = append(errs, "CANDLE_LIMIT must be between 1 and 1500")
	}

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	cfg.ViewConfigPath = getEnv("VIEW_CONFIG", "./config/views.yaml")
	cfg.Views, err = LoadViews(cfg.ViewConfigPath)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// LoadViews reads the YAML view config at path. A missing file yields DefaultViews.
func LoadViews(path string) (Views, error) {
	views := DefaultViews()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return views, nil
		}
		return views, fmt.Errorf("open view config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&views); err != nil {
		return views, fmt.Errorf("decode view config %s: %w", path, err)
	}

	if len(views.Timeframes) == 0 {
		views.Timeframes = DefaultViews().Timeframes
	}
	if views.DefaultTimeframe == "" {
		views.DefaultTimeframe = domain.DefaultTimeframe
	}
	found := false
	for _, tf := range views.Timeframes {
		if tf == views.DefaultTimeframe {
			found = true
			break
		}
	}
	if !found {
		return views, fmt.Errorf("default_timeframe %q is not one of timeframes %v", views.DefaultTimeframe, views.Timeframes)
	}
	if views.AssetRefreshMs < 0 {
		return views, fmt.Errorf("asset_refresh_ms cannot be negative")
	}
	return views, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
