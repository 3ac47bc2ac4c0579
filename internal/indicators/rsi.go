package indicators

import (
	"context"
	"fmt"

	"cryptoDashboard/internal/domain"
)

// RSI implements the Relative Strength Index with Wilder's smoothing.
type RSI struct {
	BaseIndicator
}

// NewRSI creates an RSI over period closes.
func NewRSI(period int) *RSI {
	return &RSI{BaseIndicator: BaseIndicator{Config: IndicatorConfig{Period: period}}}
}

func (r *RSI) Name() string {
	return "RSI"
}

// RequiredDataPoints is one more than the period since RSI works on close-to-close changes.
func (r *RSI) RequiredDataPoints() int {
	return r.Config.Period + 1
}

func (r *RSI) Calculate(ctx context.Context, klines []*domain.Kline) (float64, error) {
	return RSIValue(Closes(klines), r.Config.Period)
}

// RSIValue returns the RSI in [0, 100] at the last close. A flat series is 50.
func RSIValue(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("invalid RSI period %d", period)
	}
	if len(closes) <= period {
		return 0, fmt.Errorf("not enough data (%d) to calculate RSI for period %d", len(closes), period)
	}

	n := float64(period)
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain += gain
		avgLoss += loss
	}
	avgGain /= n
	avgLoss /= n

	for i := period + 1; i < len(closes); i++ {
		gain, loss := split(closes[i] - closes[i-1])
		avgGain = (avgGain*(n-1) + gain) / n
		avgLoss = (avgLoss*(n-1) + loss) / n
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50, nil
		}
		return 100, nil
	}
	return 100 - 100/(1+avgGain/avgLoss), nil
}

func split(change float64) (gain, loss float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}
