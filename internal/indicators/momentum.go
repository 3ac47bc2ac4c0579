package indicators

import (
	"context"
	"fmt"
	"math"

	"cryptoDashboard/internal/domain"
)

// MinMomentumCandles is the history below which the momentum score is 0.
const MinMomentumCandles = 30

// Momentum blends RSI(14), the MACD histogram, ROC(5) and the distance from
// SMA(20) into one score in [-1, 1].
type Momentum struct {
	rsi  *RSI
	roc  *ROC
	sma  *MovingAverage
	macd *MACD
}

func NewMomentum() *Momentum {
	return &Momentum{
		rsi: NewRSI(14),
		roc: NewROC(5),
		sma: NewMovingAverage(MovingAverageConfig{
			IndicatorConfig: IndicatorConfig{Period: 20},
			Type:            SimpleMovingAverage,
		}),
		macd: NewMACD(DefaultMACDConfig()),
	}
}

func (m *Momentum) Name() string {
	return "Momentum"
}

func (m *Momentum) RequiredDataPoints() int {
	return MinMomentumCandles
}

// Components returns the indicators the score is built from.
func (m *Momentum) Components() []Indicator {
	return []Indicator{m.rsi, m.macd, m.roc, m.sma}
}

// Calculate returns the score at the last kline, 0 with fewer than
// MinMomentumCandles klines.
func (m *Momentum) Calculate(ctx context.Context, klines []*domain.Kline) (float64, error) {
	if len(klines) < MinMomentumCandles {
		return 0, nil
	}
	last := klines[len(klines)-1].Close

	rsi, err := m.rsi.Calculate(ctx, klines)
	if err != nil {
		return 0, fmt.Errorf("momentum %s: %w", m.rsi.Name(), err)
	}
	roc, err := m.roc.Calculate(ctx, klines)
	if err != nil {
		return 0, fmt.Errorf("momentum %s: %w", m.roc.Name(), err)
	}
	sma, err := m.sma.Calculate(ctx, klines)
	if err != nil {
		return 0, fmt.Errorf("momentum %s: %w", m.sma.Name(), err)
	}

	rsiScore := (rsi - 50) / 50
	// The MACD term stays 0 until the signal line has warmed up.
	macdScore := 0.0
	if len(klines) >= m.macd.RequiredDataPoints() {
		hist, err := m.macd.Calculate(ctx, klines)
		if err != nil {
			return 0, fmt.Errorf("momentum %s: %w", m.macd.Name(), err)
		}
		if std := StdDev(Closes(klines)); std > 0 {
			macdScore = math.Tanh(hist / std)
		}
	}
	rocScore := math.Tanh(roc / 10)
	smaScore := 0.0
	if sma != 0 {
		smaScore = math.Tanh((last/sma - 1) * 10)
	}

	score := (rsiScore + macdScore + rocScore + smaScore) / 4
	return math.Max(-1, math.Min(1, score)), nil
}
