package view

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/echarts"
	"cryptoDashboard/internal/ports"
)

// mockLogger implements ports.Logger and records warnings.
type mockLogger struct {
	mu    sync.Mutex
	warns []string
	debug []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debug = append(m.debug, msg)
}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, msg)
}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func (m *mockLogger) warnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.warns)
}

// mockClient is a testify mock of ports.DashboardClient.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) CoinData(ctx context.Context, symbol, timeframe string) (*domain.CoinPayload, error) {
	args := m.Called(ctx, symbol, timeframe)
	p, _ := args.Get(0).(*domain.CoinPayload)
	return p, args.Error(1)
}

func (m *mockClient) ChartData(ctx context.Context) (*domain.PnlPayload, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*domain.PnlPayload)
	return p, args.Error(1)
}

func (m *mockClient) Assets(ctx context.Context) (*domain.AssetSnapshot, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.AssetSnapshot)
	return s, args.Error(1)
}

type fakeChart struct {
	mu      sync.Mutex
	ops     []string
	options []echarts.Option
}

func (c *fakeChart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, "clear")
	c.options = nil
}

func (c *fakeChart) SetOption(opt echarts.Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = append(c.ops, "set")
	c.options = append(c.options, opt)
}

func (c *fakeChart) last() (echarts.Option, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.options) == 0 {
		return echarts.Option{}, false
	}
	return c.options[len(c.options)-1], true
}

func (c *fakeChart) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, op := range c.ops {
		if op == "set" {
			n++
		}
	}
	return n
}

type fakeLabel struct {
	mu    sync.Mutex
	text  string
	color string
}

func (l *fakeLabel) SetText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
}

func (l *fakeLabel) SetColor(color string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = color
}

func (l *fakeLabel) get() (string, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text, l.color
}

type fakeLedger struct {
	mu      sync.Mutex
	rows    []ports.LedgerRow
	renders int
}

func (l *fakeLedger) Render(rows []ports.LedgerRow) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = rows
	l.renders++
}

type fakeSelector struct {
	mu     sync.Mutex
	tfs    []string
	active map[string]bool
}

func (s *fakeSelector) Timeframes() []string { return s.tfs }
func (s *fakeSelector) SetActive(tf string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[tf] = active
}

func (s *fakeSelector) activeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.active {
		if a {
			n++
		}
	}
	return n
}

func (s *fakeSelector) activeTimeframe() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tf := range s.tfs {
		if s.active[tf] {
			return tf
		}
	}
	return ""
}

type coinFixture struct {
	chart    *fakeChart
	ledger   *fakeLedger
	momentum *fakeLabel
	stopLoss *fakeLabel
	selector *fakeSelector
}

func newCoinFixture() *coinFixture {
	return &coinFixture{
		chart:    &fakeChart{},
		ledger:   &fakeLedger{},
		momentum: &fakeLabel{},
		stopLoss: &fakeLabel{},
		selector: &fakeSelector{
			tfs:    []string{"1h", "4h", "1d", "1w"},
			active: map[string]bool{"1d": true},
		},
	}
}

func (f *coinFixture) elements() CoinElements {
	return CoinElements{
		Chart:    f.chart,
		Ledger:   f.ledger,
		Momentum: f.momentum,
		StopLoss: f.stopLoss,
		Selector: f.selector,
	}
}

func candles(n int) []domain.Candle {
	out := make([]domain.Candle, n)
	for i := range out {
		out[i] = domain.Candle{
			Time:  "2024-05-0" + string(rune('1'+i)) + "T00:00:00Z",
			Open:  100 + float64(i),
			Close: 101 + float64(i),
			Low:   99 + float64(i),
			High:  102 + float64(i),
		}
	}
	return out
}
