package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/echarts"
	"cryptoDashboard/internal/metrics"
	"cryptoDashboard/internal/ports"
	"cryptoDashboard/internal/scheduler"
)

// DefaultAssetRefresh is how often the asset labels are refreshed.
const DefaultAssetRefresh = 15 * time.Second

// HomeView renders the account PnL chart and the live asset labels.
type HomeView struct {
	client   ports.DashboardClient
	els      HomeElements
	logger   ports.Logger
	interval time.Duration

	mu     sync.Mutex
	poller *scheduler.Poller
}

// NewHomeView creates the home view. A non-positive interval uses DefaultAssetRefresh.
func NewHomeView(client ports.DashboardClient, els HomeElements, interval time.Duration, logger ports.Logger) (*HomeView, error) {
	if client == nil {
		return nil, errors.New("dashboard client is required")
	}
	if els.PnlChart == nil || els.AssetValue == nil || els.AssetDelta == nil {
		return nil, errors.New("all home view elements are required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if interval <= 0 {
		interval = DefaultAssetRefresh
	}
	return &HomeView{client: client, els: els, logger: logger, interval: interval}, nil
}

// BuildPnlOption maps the PnL history to the line chart option.
func BuildPnlOption(p *domain.PnlPayload) echarts.Option {
	labels := p.Labels
	if labels == nil {
		labels = []string{}
	}
	values := p.Values
	if values == nil {
		values = []float64{}
	}
	return echarts.Option{
		Title: &echarts.Title{
			Text:      "Account % PnL Over Time",
			TextStyle: &echarts.TextStyle{Color: "#fff"},
		},
		Tooltip: &echarts.Tooltip{Trigger: "axis"},
		XAxis:   &echarts.Axis{Type: "category", Data: labels},
		YAxis: &echarts.Axis{
			Type:      "value",
			AxisLabel: &echarts.AxisLabel{Formatter: "{value} %"},
			SplitLine: &echarts.SplitLine{LineStyle: &echarts.LineStyle{Color: "#333"}},
		},
		Series: []echarts.Series{{
			Type:       "line",
			Name:       "PnL",
			Data:       values,
			Smooth:     true,
			ShowSymbol: echarts.Bool(false),
			ItemStyle:  &echarts.ItemStyle{Color: colorPnLLine},
			LineStyle:  &echarts.LineStyle{Width: 2},
		}},
	}
}

// DrawChart fetches the PnL history and draws it. On failure the chart is left as is.
func (h *HomeView) DrawChart(ctx context.Context) error {
	p, err := h.client.ChartData(ctx)
	if err != nil {
		metrics.FetchesTotal.WithLabelValues("chart_data", metrics.OutcomeError).Inc()
		h.logger.Warn(ctx, "Failed to load PnL chart data", map[string]interface{}{"error": err.Error()})
		metrics.RendersTotal.WithLabelValues("home_chart", stateFailed).Inc()
		return err
	}
	metrics.FetchesTotal.WithLabelValues("chart_data", metrics.OutcomeOK).Inc()

	h.els.PnlChart.SetOption(BuildPnlOption(p))
	metrics.RendersTotal.WithLabelValues("home_chart", stateRendered).Inc()
	return nil
}

// RefreshAssets fetches the asset snapshot and updates the labels. On failure
// the previous values stay on the page.
func (h *HomeView) RefreshAssets(ctx context.Context) error {
	snap, err := h.client.Assets(ctx)
	if err != nil {
		metrics.FetchesTotal.WithLabelValues("assets_usd", metrics.OutcomeError).Inc()
		h.logger.Warn(ctx, "Failed to refresh assets", map[string]interface{}{"error": err.Error()})
		metrics.RendersTotal.WithLabelValues("home_assets", stateFailed).Inc()
		return err
	}
	metrics.FetchesTotal.WithLabelValues("assets_usd", metrics.OutcomeOK).Inc()

	h.els.AssetValue.SetText(AssetValueText(snap.ValueUSD))
	text, color := AssetDelta(snap.PctPnL)
	h.els.AssetDelta.SetText(text)
	h.els.AssetDelta.SetColor(color)
	metrics.RendersTotal.WithLabelValues("home_assets", stateRendered).Inc()
	return nil
}

// Start draws the chart once and begins refreshing the assets, the first
// refresh happening immediately. Calling Start on a running view is a no-op.
func (h *HomeView) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.poller != nil {
		return nil
	}

	poller, err := scheduler.NewPoller("assets", h.interval, h.RefreshAssets, h.logger)
	if err != nil {
		return err
	}
	_ = h.DrawChart(ctx)
	poller.Start(ctx)
	h.poller = poller
	return nil
}

// Stop ends the asset refresh and waits for an in-flight refresh to finish.
func (h *HomeView) Stop() {
	h.mu.Lock()
	poller := h.poller
	h.poller = nil
	h.mu.Unlock()

	if poller != nil {
		poller.Stop()
	}
}
