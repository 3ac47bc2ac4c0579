package indicators

import (
	"context"
	"fmt"

	"cryptoDashboard/internal/domain"
)

// MACDConfig holds the fast, slow and signal EMA periods.
type MACDConfig struct {
	Fast   int
	Slow   int
	Signal int
}

// DefaultMACDConfig is the classic 12/26/9 setup.
func DefaultMACDConfig() MACDConfig {
	return MACDConfig{Fast: 12, Slow: 26, Signal: 9}
}

// MACD reports the histogram: MACD line minus its signal line.
type MACD struct {
	config MACDConfig
}

func NewMACD(config MACDConfig) *MACD {
	return &MACD{config: config}
}

func (m *MACD) Name() string {
	return "MACD"
}

func (m *MACD) RequiredDataPoints() int {
	return m.config.Slow + m.config.Signal - 1
}

func (m *MACD) Calculate(ctx context.Context, klines []*domain.Kline) (float64, error) {
	return MACDHistogram(Closes(klines), m.config)
}

// MACDHistogram computes MACD minus signal at the last close. The signal EMA
// starts at the first point where the slow EMA is fully warmed up.
func MACDHistogram(closes []float64, cfg MACDConfig) (float64, error) {
	if cfg.Fast <= 0 || cfg.Slow <= cfg.Fast || cfg.Signal <= 0 {
		return 0, fmt.Errorf("invalid MACD periods %d/%d/%d", cfg.Fast, cfg.Slow, cfg.Signal)
	}
	need := cfg.Slow + cfg.Signal - 1
	if len(closes) < need {
		return 0, fmt.Errorf("not enough data (%d) to calculate MACD, need %d", len(closes), need)
	}

	fast, err := EMASeries(closes, cfg.Fast)
	if err != nil {
		return 0, fmt.Errorf("fast EMA: %w", err)
	}
	slow, err := EMASeries(closes, cfg.Slow)
	if err != nil {
		return 0, fmt.Errorf("slow EMA: %w", err)
	}

	line := make([]float64, 0, len(closes)-cfg.Slow+1)
	for i := cfg.Slow - 1; i < len(closes); i++ {
		line = append(line, fast[i]-slow[i])
	}
	signal, err := EMASeries(line, cfg.Signal)
	if err != nil {
		return 0, fmt.Errorf("signal EMA: %w", err)
	}
	last := len(line) - 1
	return line[last] - signal[last], nil
}
