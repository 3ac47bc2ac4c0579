// Package indicators computes the technical indicators behind the coin momentum score.
package indicators

import (
	"context"

	"cryptoDashboard/internal/domain"
)

// Indicator is a technical indicator evaluated on the last kline of a series.
type Indicator interface {
	// Calculate returns the indicator value at the last kline.
	Calculate(ctx context.Context, klines []*domain.Kline) (float64, error)

	// RequiredDataPoints returns the minimum number of klines needed for calculation
	RequiredDataPoints() int

	Name() string
}

// IndicatorConfig holds common configuration for indicators
type IndicatorConfig struct {
	Period int
}

// BaseIndicator provides common functionality for indicators
type BaseIndicator struct {
	Config IndicatorConfig
}

// RequiredDataPoints returns the minimum number of klines needed for calculation
func (b *BaseIndicator) RequiredDataPoints() int {
	return b.Config.Period
}

// Closes extracts the close prices in kline order.
func Closes(klines []*domain.Kline) []float64 {
	closes := make([]float64, len(klines))
	for i, k := range klines {
		closes[i] = k.Close
	}
	return closes
}
