package ports

import (
	"context"

	"cryptoDashboard/internal/domain"
)

// CandleSource provides historical candles for a symbol and timeframe.
// Implementations return ErrNotFound (wrapped) when they have no data for the pair.
type CandleSource interface {
	GetCandles(ctx context.Context, symbol, timeframe string) ([]*domain.Kline, error)
	// Name identifies the source in logs.
	Name() string
}
