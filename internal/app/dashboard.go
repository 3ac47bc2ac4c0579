package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"cryptoDashboard/config"
	"cryptoDashboard/internal/ports"
	"cryptoDashboard/internal/view"
)

// HomePage is the page name of the home view.
const HomePage = "home"

// CoinPage returns the page name of a symbol's coin view.
func CoinPage(symbol string) string {
	return "coin:" + symbol
}

// Dashboard owns the home view and one coin view per opened symbol.
type Dashboard struct {
	logger ports.Logger
	client ports.DashboardClient
	pages  ports.PageProvider
	views  config.Views

	mu    sync.Mutex
	home  *view.HomeView
	coins map[string]*view.CoinView
}

func NewDashboard(logger ports.Logger, client ports.DashboardClient, pages ports.PageProvider, views config.Views) (*Dashboard, error) {
	if logger == nil || client == nil || pages == nil {
		return nil, fmt.Errorf("missing required dependencies for Dashboard")
	}
	if len(views.Timeframes) == 0 {
		return nil, fmt.Errorf("%w: no timeframes configured", ports.ErrConfigurationError)
	}
	return &Dashboard{
		logger: logger,
		client: client,
		pages:  pages,
		views:  views,
		coins:  make(map[string]*view.CoinView),
	}, nil
}

// Start begins the home view refresh and opens the configured coin views.
func (d *Dashboard) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.home == nil {
		home, err := view.NewHomeView(d.client, view.HomeElementsFor(d.pages.Page(HomePage)), d.views.AssetRefreshInterval(), d.logger)
		if err != nil {
			d.mu.Unlock()
			return fmt.Errorf("creating home view: %w", err)
		}
		d.home = home
	}
	home := d.home
	d.mu.Unlock()

	if err := home.Start(ctx); err != nil {
		return fmt.Errorf("starting home view: %w", err)
	}
	d.logger.Info(ctx, "Home view started", map[string]interface{}{"refresh": d.views.AssetRefreshInterval().String()})

	for _, symbol := range d.views.Symbols {
		if _, err := d.OpenCoin(ctx, symbol); err != nil {
			d.logger.Warn(ctx, "Failed to open configured coin view", map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			})
		}
	}
	return nil
}

// Stop ends the home view refresh.
func (d *Dashboard) Stop() {
	d.mu.Lock()
	home := d.home
	d.mu.Unlock()
	if home != nil {
		home.Stop()
	}
}

// RefreshHome redraws the PnL chart, e.g. after a new snapshot was recorded.
func (d *Dashboard) RefreshHome(ctx context.Context) error {
	d.mu.Lock()
	home := d.home
	d.mu.Unlock()
	if home == nil {
		return fmt.Errorf("home view not started")
	}
	return home.DrawChart(ctx)
}

// OpenCoin returns the symbol's coin view, creating it and loading the
// default timeframe on first use. A failed first load is rendered on the page
// and does not fail the call, unless the backend does not know the pair: then
// the view and its page are dropped and ports.ErrUnknownSymbol is returned.
func (d *Dashboard) OpenCoin(ctx context.Context, symbol string) (*view.CoinView, error) {
	v, created, err := d.coinView(symbol)
	if err != nil {
		return nil, err
	}
	if !created {
		return v, nil
	}

	err = v.SelectTimeframe(ctx, d.views.DefaultTimeframe)
	if errors.Is(err, ports.ErrNotFound) {
		d.dropCoin(symbol, v)
		d.logger.Info(ctx, "Dropped coin view for unknown symbol", map[string]interface{}{"symbol": symbol})
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrUnknownSymbol, symbol, err)
	}
	if err != nil {
		d.logger.Warn(ctx, "Initial coin load failed", map[string]interface{}{
			"symbol": symbol,
			"error":  err.Error(),
		})
	}
	return v, nil
}

// SelectTimeframe forwards a timeframe button click to the symbol's coin view,
// opening the view first when needed.
func (d *Dashboard) SelectTimeframe(ctx context.Context, symbol, timeframe string) error {
	v, err := d.OpenCoin(ctx, symbol)
	if err != nil {
		return err
	}
	return v.SelectTimeframe(ctx, timeframe)
}

// Timeframes returns the timeframe buttons shown on coin pages.
func (d *Dashboard) Timeframes() []string {
	out := make([]string, len(d.views.Timeframes))
	copy(out, d.views.Timeframes)
	return out
}

// CoinSymbols lists the symbols with an open coin view.
func (d *Dashboard) CoinSymbols() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.coins))
	for s := range d.coins {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (d *Dashboard) coinView(symbol string) (*view.CoinView, bool, error) {
	if symbol == "" {
		return nil, false, fmt.Errorf("%w: symbol is required", ports.ErrInvalidRequest)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := d.coins[symbol]; ok {
		return v, false, nil
	}

	page := d.pages.Page(CoinPage(symbol))
	v, err := view.NewCoinView(symbol, d.client, view.CoinElementsFor(page, d.views.Timeframes), d.logger)
	if err != nil {
		d.pages.Remove(CoinPage(symbol))
		return nil, false, err
	}
	d.coins[symbol] = v
	return v, true, nil
}

func (d *Dashboard) dropCoin(symbol string, v *view.CoinView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.coins[symbol] == v {
		delete(d.coins, symbol)
		d.pages.Remove(CoinPage(symbol))
	}
}
