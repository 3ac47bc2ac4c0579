package app

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
)

// Mock implementations
type mockLogger struct {
	mu        sync.Mutex
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debugMsgs = append(m.debugMsgs, msg)
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorMsgs = append(m.errorMsgs, msg)
}

type mockSource struct {
	name   string
	klines []*domain.Kline
	err    error
	calls  int
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) GetCandles(ctx context.Context, symbol, timeframe string) ([]*domain.Kline, error) {
	m.calls++
	return m.klines, m.err
}

type mockEventRepo struct {
	events []domain.TradeEvent
	err    error
}

func (m *mockEventRepo) CreateEvent(ctx context.Context, e *domain.TradeEvent) (int64, error) {
	m.events = append(m.events, *e)
	return int64(len(m.events)), nil
}

func (m *mockEventRepo) FindEventsBySymbol(ctx context.Context, symbol string) ([]domain.TradeEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.TradeEvent
	for _, e := range m.events {
		if e.Symbol == symbol {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockMonitorRepo struct {
	monitors map[string]*domain.Monitor
	err      error
}

func (m *mockMonitorRepo) UpsertMonitor(ctx context.Context, mon *domain.Monitor) error {
	if m.monitors == nil {
		m.monitors = make(map[string]*domain.Monitor)
	}
	m.monitors[mon.Symbol] = mon
	return nil
}

func (m *mockMonitorRepo) FindMonitor(ctx context.Context, symbol string) (*domain.Monitor, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.monitors[symbol], nil
}

type mockAccountRepo struct {
	snaps []domain.AccountSnapshot
	err   error
}

func (m *mockAccountRepo) CreateSnapshot(ctx context.Context, snap *domain.AccountSnapshot) error {
	if m.err != nil {
		return m.err
	}
	for _, s := range m.snaps {
		if s.Date == snap.Date {
			return ports.ErrAlreadyExists
		}
	}
	m.snaps = append(m.snaps, *snap)
	sort.Slice(m.snaps, func(i, j int) bool { return m.snaps[i].Date < m.snaps[j].Date })
	return nil
}

func (m *mockAccountRepo) FindSnapshots(ctx context.Context) ([]domain.AccountSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.AccountSnapshot, len(m.snaps))
	copy(out, m.snaps)
	return out, nil
}

func (m *mockAccountRepo) LatestSnapshot(ctx context.Context) (*domain.AccountSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.snaps) == 0 {
		return nil, nil
	}
	s := m.snaps[len(m.snaps)-1]
	return &s, nil
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

var errBoom = errors.New("boom")

type mockPositionRepo struct {
	positions []domain.Position
	err       error
}

func (m *mockPositionRepo) CreatePosition(ctx context.Context, pos *domain.Position) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	pos.ID = int64(len(m.positions) + 1)
	pos.Status = domain.StatusOpen
	m.positions = append(m.positions, *pos)
	return pos.ID, nil
}

func (m *mockPositionRepo) ClosePositions(ctx context.Context, symbol string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.positions {
		if m.positions[i].Symbol == symbol {
			m.positions[i].Status = domain.StatusClosed
		}
	}
	return nil
}

func (m *mockPositionRepo) FindOpenPositions(ctx context.Context) ([]domain.Position, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Position
	for _, p := range m.positions {
		if p.IsOpen() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

type mockRankingRepo struct {
	coins []domain.RankedCoin
	err   error
}

func (m *mockRankingRepo) ReplaceRanking(ctx context.Context, coins []domain.RankedCoin) error {
	if m.err != nil {
		return m.err
	}
	m.coins = coins
	return nil
}

func (m *mockRankingRepo) FindRanking(ctx context.Context) ([]domain.RankedCoin, error) {
	return m.coins, m.err
}
