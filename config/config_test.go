package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptoDashboard/internal/adapters/logger"
)

func TestLoadViews(t *testing.T) {
	views, err := LoadViews(filepath.Join("testdata", "views.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"15m", "1h", "4h", "1d"}, views.Timeframes)
	assert.Equal(t, "4h", views.DefaultTimeframe)
	assert.Equal(t, 5*time.Second, views.AssetRefreshInterval())
	assert.Equal(t, []string{"BTC/USD", "ETH/USD"}, views.Symbols)
}

func TestLoadViews_MissingFileUsesDefaults(t *testing.T) {
	views, err := LoadViews(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultViews(), views)
	assert.Equal(t, "1d", views.DefaultTimeframe)
	assert.Equal(t, 15*time.Second, views.AssetRefreshInterval())
}

func TestLoadViews_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"default not listed", "timeframes: [\"1h\"]\ndefault_timeframe: \"1d\"\n"},
		{"negative refresh", "asset_refresh_ms: -1\n"},
		{"bad yaml", "timeframes: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "views.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadViews(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("VIEW_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 500, cfg.CandleLimit)
	assert.True(t, cfg.UseExchangeCandles)
	assert.Equal(t, logger.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	t.Setenv("VIEW_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("BACKEND_URL", "localhost:5000")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "soon")
	t.Setenv("CANDLE_LIMIT", "0")

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BACKEND_URL")
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT_SECONDS")
	assert.Contains(t, err.Error(), "CANDLE_LIMIT")
}
