package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/echarts"
	"cryptoDashboard/internal/metrics"
	"cryptoDashboard/internal/ports"
)

// Render states reported to metrics.
const (
	stateRendered = "rendered"
	stateEmpty    = "empty"
	stateFailed   = "failed"
)

// CoinView renders the candlestick chart, labels and trade ledger of one symbol.
type CoinView struct {
	symbol string
	client ports.DashboardClient
	els    CoinElements
	logger ports.Logger

	// generation identifies the newest Load; older responses are dropped.
	// It is bumped under renderMu so button state and the newest load agree.
	generation atomic.Uint64
	renderMu   sync.Mutex
}

// NewCoinView creates a coin view for symbol rendering into els.
func NewCoinView(symbol string, client ports.DashboardClient, els CoinElements, logger ports.Logger) (*CoinView, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ports.ErrInvalidRequest)
	}
	if client == nil {
		return nil, errors.New("dashboard client is required")
	}
	if els.Chart == nil || els.Ledger == nil || els.Momentum == nil || els.StopLoss == nil || els.Selector == nil {
		return nil, errors.New("all coin view elements are required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &CoinView{symbol: symbol, client: client, els: els, logger: logger}, nil
}

// Symbol returns the pair this view renders.
func (v *CoinView) Symbol() string { return v.symbol }

// Load fetches the coin payload for timeframe and draws it. A failed fetch shows
// the "No data for <timeframe>" placeholder and returns the error. Responses
// superseded by a newer Load are discarded.
func (v *CoinView) Load(ctx context.Context, timeframe string) error {
	v.renderMu.Lock()
	gen := v.generation.Add(1)
	v.renderMu.Unlock()
	return v.load(ctx, gen, timeframe)
}

func (v *CoinView) load(ctx context.Context, gen uint64, timeframe string) error {
	payload, err := v.client.CoinData(ctx, v.symbol, timeframe)

	v.renderMu.Lock()
	defer v.renderMu.Unlock()

	if gen != v.generation.Load() {
		v.logger.Debug(ctx, "Discarding stale coin data response", map[string]interface{}{
			"symbol":    v.symbol,
			"timeframe": timeframe,
		})
		return nil
	}

	if err != nil {
		metrics.FetchesTotal.WithLabelValues("coin_data", metrics.OutcomeError).Inc()
		v.logger.Warn(ctx, "Failed to load coin data", map[string]interface{}{
			"symbol":    v.symbol,
			"timeframe": timeframe,
			"error":     err.Error(),
		})
		v.showPlaceholder("No data for " + timeframe)
		metrics.RendersTotal.WithLabelValues("coin", stateFailed).Inc()
		return fmt.Errorf("loading %s %s: %w", v.symbol, timeframe, err)
	}
	metrics.FetchesTotal.WithLabelValues("coin_data", metrics.OutcomeOK).Inc()

	v.draw(ctx, payload)
	return nil
}

// Draw renders payload into the view's elements.
func (v *CoinView) Draw(ctx context.Context, payload *domain.CoinPayload) {
	v.renderMu.Lock()
	defer v.renderMu.Unlock()
	v.draw(ctx, payload)
}

func (v *CoinView) draw(ctx context.Context, p *domain.CoinPayload) {
	if p == nil || len(p.Series) == 0 {
		v.showPlaceholder("No candles")
		metrics.RendersTotal.WithLabelValues("coin", stateEmpty).Inc()
		return
	}

	text, color := MomentumLabel(p.MomentumScore)
	v.els.Momentum.SetText(text)
	v.els.Momentum.SetColor(color)
	v.els.StopLoss.SetText(StopLossLabel(p.StopLoss))

	events, invalid := SplitEvents(p.Events)
	for _, e := range invalid {
		v.logger.Warn(ctx, "Skipping trade event", map[string]interface{}{
			"symbol": v.symbol,
			"time":   e.Time,
			"side":   string(e.Side),
			"error":  ports.ErrInvalidSide.Error(),
		})
	}

	v.els.Chart.SetOption(BuildCoinOption(p, events))
	v.els.Ledger.Render(LedgerRows(events))
	metrics.RendersTotal.WithLabelValues("coin", stateRendered).Inc()
}

func (v *CoinView) showPlaceholder(text string) {
	v.els.Chart.Clear()
	v.els.Chart.SetOption(echarts.Placeholder(text))
	v.els.Ledger.Render(nil)
}

// SelectTimeframe marks timeframe as the only active button and reloads the view.
func (v *CoinView) SelectTimeframe(ctx context.Context, timeframe string) error {
	known := false
	for _, tf := range v.els.Selector.Timeframes() {
		if tf == timeframe {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: unknown timeframe %q", ports.ErrInvalidRequest, timeframe)
	}

	v.renderMu.Lock()
	for _, tf := range v.els.Selector.Timeframes() {
		v.els.Selector.SetActive(tf, false)
	}
	v.els.Selector.SetActive(timeframe, true)
	gen := v.generation.Add(1)
	v.renderMu.Unlock()

	return v.load(ctx, gen, timeframe)
}
