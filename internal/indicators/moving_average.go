package indicators

import (
	"context"
	"fmt"

	"cryptoDashboard/internal/domain"
)

// MovingAverageType defines the type of moving average
type MovingAverageType string

const (
	SimpleMovingAverage      MovingAverageType = "SMA"
	ExponentialMovingAverage MovingAverageType = "EMA"
)

// MovingAverageConfig holds configuration for moving average indicators
type MovingAverageConfig struct {
	IndicatorConfig
	Type MovingAverageType
}

// MovingAverage implements both SMA and EMA indicators
type MovingAverage struct {
	BaseIndicator
	config MovingAverageConfig
}

// NewMovingAverage creates a new moving average indicator instance
func NewMovingAverage(config MovingAverageConfig) *MovingAverage {
	return &MovingAverage{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
}

func (m *MovingAverage) Name() string {
	return string(m.config.Type)
}

// Calculate computes the moving average of the closes based on the configured type
func (m *MovingAverage) Calculate(ctx context.Context, klines []*domain.Kline) (float64, error) {
	closes := Closes(klines)
	switch m.config.Type {
	case SimpleMovingAverage:
		return SMA(closes, m.Config.Period)
	case ExponentialMovingAverage:
		series, err := EMASeries(closes, m.Config.Period)
		if err != nil {
			return 0, err
		}
		return series[len(series)-1], nil
	default:
		return 0, fmt.Errorf("unsupported moving average type: %s", m.config.Type)
	}
}

// SMA averages the last period values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("invalid SMA period %d", period)
	}
	if len(values) < period {
		return 0, fmt.Errorf("not enough data (%d) to calculate SMA for period %d", len(values), period)
	}

	total := 0.0
	for _, v := range values[len(values)-period:] {
		total += v
	}
	return total / float64(period), nil
}

// EMASeries returns the exponential moving average at every point, seeded with
// the first value and smoothed by 2/(period+1).
func EMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("invalid EMA period %d", period)
	}
	if len(values) < period {
		return nil, fmt.Errorf("not enough data (%d) to calculate EMA for period %d", len(values), period)
	}

	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}
