package indicators

import (
	"context"
	"fmt"
	"math"

	"cryptoDashboard/internal/domain"
)

// ROC is the percentage rate of change over Period closes.
type ROC struct {
	BaseIndicator
}

func NewROC(period int) *ROC {
	return &ROC{BaseIndicator: BaseIndicator{Config: IndicatorConfig{Period: period}}}
}

func (r *ROC) Name() string {
	return "ROC"
}

func (r *ROC) RequiredDataPoints() int {
	return r.Config.Period + 1
}

func (r *ROC) Calculate(ctx context.Context, klines []*domain.Kline) (float64, error) {
	return RateOfChange(Closes(klines), r.Config.Period)
}

// RateOfChange returns (last - closes[last-period]) / closes[last-period] * 100.
func RateOfChange(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("invalid ROC period %d", period)
	}
	if len(closes) <= period {
		return 0, fmt.Errorf("not enough data (%d) to calculate ROC for period %d", len(closes), period)
	}
	base := closes[len(closes)-1-period]
	if base == 0 {
		return 0, fmt.Errorf("ROC base price is zero")
	}
	return (closes[len(closes)-1] - base) / base * 100, nil
}

// StdDev is the sample standard deviation of values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
