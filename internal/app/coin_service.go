package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/indicators"
	"cryptoDashboard/internal/ports"
)

// CoinDataService assembles /coin_data payloads from candle sources, recorded
// trade events and the position monitor.
type CoinDataService struct {
	logger   ports.Logger
	sources  []ports.CandleSource
	events   ports.EventRepository
	monitors ports.MonitorRepository
	momentum indicators.Indicator
}

// NewCoinDataService creates the service. Sources are tried in order.
func NewCoinDataService(
	logger ports.Logger,
	events ports.EventRepository,
	monitors ports.MonitorRepository,
	sources ...ports.CandleSource,
) (*CoinDataService, error) {
	if logger == nil || events == nil || monitors == nil {
		return nil, fmt.Errorf("missing required dependencies for CoinDataService")
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one candle source is required")
	}
	for i, src := range sources {
		if src == nil {
			return nil, fmt.Errorf("candle source %d is nil", i)
		}
	}

	return &CoinDataService{
		logger:   logger,
		sources:  sources,
		events:   events,
		monitors: monitors,
		momentum: indicators.NewMomentum(),
	}, nil
}

// GetCoinData returns the payload for symbol and timeframe. It fails with
// ports.ErrNotFound when no source knows the pair. A source that knows the pair
// but has no candles yields an empty series.
func (s *CoinDataService) GetCoinData(ctx context.Context, symbol, timeframe string) (*domain.CoinPayload, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ports.ErrInvalidRequest)
	}
	if timeframe == "" {
		timeframe = domain.DefaultTimeframe
	}
	if !domain.ValidTimeframe(timeframe) {
		return nil, fmt.Errorf("%w: invalid timeframe %q", ports.ErrInvalidRequest, timeframe)
	}

	klines, err := s.candles(ctx, symbol, timeframe)
	if err != nil {
		return nil, err
	}

	payload := &domain.CoinPayload{
		Symbol: symbol,
		Series: make([]domain.Candle, len(klines)),
		Events: s.loadEvents(ctx, symbol),
	}
	for i, k := range klines {
		payload.Series[i] = k.Candle()
	}

	monitor, err := s.monitors.FindMonitor(ctx, symbol)
	if err != nil {
		s.logger.Warn(ctx, "Failed to load monitor, serving without stop loss", map[string]interface{}{
			"symbol": symbol,
			"error":  err.Error(),
		})
	}
	if monitor != nil {
		payload.StopLoss = monitor.StopLoss
	}

	switch {
	case monitor != nil && monitor.MomentumScore != nil:
		payload.MomentumScore = *monitor.MomentumScore
	default:
		score, err := s.momentum.Calculate(ctx, klines)
		if err != nil {
			s.logger.Warn(ctx, "Failed to compute momentum score", map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			})
		}
		payload.MomentumScore = score
	}

	return payload, nil
}

func (s *CoinDataService) candles(ctx context.Context, symbol, timeframe string) ([]*domain.Kline, error) {
	var (
		found   bool
		lastErr error
	)
	for _, src := range s.sources {
		klines, err := src.GetCandles(ctx, symbol, timeframe)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !errors.Is(err, ports.ErrNotFound) {
				s.logger.Warn(ctx, "Candle source failed", map[string]interface{}{
					"source":    src.Name(),
					"symbol":    symbol,
					"timeframe": timeframe,
					"error":     err.Error(),
				})
			}
			lastErr = err
			continue
		}
		found = true
		if len(klines) > 0 {
			s.logger.Debug(ctx, "Candles loaded", map[string]interface{}{
				"source":    src.Name(),
				"symbol":    symbol,
				"timeframe": timeframe,
				"count":     len(klines),
			})
			return klines, nil
		}
	}

	if found {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: no candles for %s %s: %w", ports.ErrNotFound, symbol, timeframe, lastErr)
}

func (s *CoinDataService) loadEvents(ctx context.Context, symbol string) []domain.TradeEvent {
	events, err := s.events.FindEventsBySymbol(ctx, symbol)
	if err != nil {
		s.logger.Warn(ctx, "Failed to load trade events, serving none", map[string]interface{}{
			"symbol": symbol,
			"error":  err.Error(),
		})
		return []domain.TradeEvent{}
	}
	if events == nil {
		return []domain.TradeEvent{}
	}
	return events
}
