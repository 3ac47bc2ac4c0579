package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
)

func risingKlines(n int) []*domain.Kline {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*domain.Kline, n)
	for i := range out {
		c := 100 + float64(i)*2
		out[i] = &domain.Kline{OpenTime: start.Add(time.Duration(i) * time.Hour), Open: c - 1, High: c + 1, Low: c - 2, Close: c}
	}
	return out
}

func newCoinService(t *testing.T, events *mockEventRepo, monitors *mockMonitorRepo, sources ...*mockSource) (*CoinDataService, *mockLogger) {
	t.Helper()
	logger := &mockLogger{}
	srcs := make([]ports.CandleSource, len(sources))
	for i, s := range sources {
		srcs[i] = s
	}
	svc, err := NewCoinDataService(logger, events, monitors, srcs...)
	require.NoError(t, err)
	return svc, logger
}

func TestNewCoinDataService_Validation(t *testing.T) {
	_, err := NewCoinDataService(nil, &mockEventRepo{}, &mockMonitorRepo{}, &mockSource{})
	assert.Error(t, err)
	_, err = NewCoinDataService(&mockLogger{}, &mockEventRepo{}, &mockMonitorRepo{})
	assert.Error(t, err)
	_, err = NewCoinDataService(&mockLogger{}, &mockEventRepo{}, &mockMonitorRepo{}, nil)
	assert.Error(t, err)
}

func TestGetCoinData_Payload(t *testing.T) {
	sl := 95.0
	score := 0.33
	events := &mockEventRepo{events: []domain.TradeEvent{
		{Symbol: "BTC/USD", Time: "2024-05-01T02:00:00Z", Side: domain.Buy, Price: 104, Qty: 1},
		{Symbol: "ETH/USD", Time: "2024-05-01T03:00:00Z", Side: domain.Sell, Price: 3000, Qty: 1},
	}}
	monitors := &mockMonitorRepo{monitors: map[string]*domain.Monitor{
		"BTC/USD": {Symbol: "BTC/USD", StopLoss: &sl, MomentumScore: &score},
	}}
	csv := &mockSource{name: "csv", klines: risingKlines(3)}
	svc, _ := newCoinService(t, events, monitors, csv)

	p, err := svc.GetCoinData(context.Background(), "BTC/USD", "")
	require.NoError(t, err)

	assert.Equal(t, "BTC/USD", p.Symbol)
	require.Len(t, p.Series, 3)
	assert.Equal(t, domain.Candle{Time: "2024-05-01T00:00:00Z", Open: 99, Close: 100, Low: 98, High: 101}, p.Series[0])
	require.Len(t, p.Events, 1)
	assert.Equal(t, domain.Buy, p.Events[0].Side)
	require.NotNil(t, p.StopLoss)
	assert.Equal(t, 95.0, *p.StopLoss)
	assert.Equal(t, 0.33, p.MomentumScore)
}

func TestGetCoinData_ComputesMomentumWithoutMonitorScore(t *testing.T) {
	svc, _ := newCoinService(t, &mockEventRepo{}, &mockMonitorRepo{}, &mockSource{name: "csv", klines: risingKlines(40)})

	p, err := svc.GetCoinData(context.Background(), "BTC/USD", "1d")
	require.NoError(t, err)
	assert.Nil(t, p.StopLoss)
	assert.Greater(t, p.MomentumScore, 0.0)
	assert.NotNil(t, p.Events)
	assert.Empty(t, p.Events)
}

func TestGetCoinData_SourceFallback(t *testing.T) {
	tests := []struct {
		name       string
		csv        *mockSource
		exchange   *mockSource
		wantErr    error
		wantSeries int
	}{
		{
			name:       "First source wins",
			csv:        &mockSource{name: "csv", klines: risingKlines(2)},
			exchange:   &mockSource{name: "binance", klines: risingKlines(5)},
			wantSeries: 2,
		},
		{
			name:       "Missing file falls back",
			csv:        &mockSource{name: "csv", err: fmt.Errorf("%w: no file", ports.ErrNotFound)},
			exchange:   &mockSource{name: "binance", klines: risingKlines(5)},
			wantSeries: 5,
		},
		{
			name:       "Failing exchange after empty file serves empty series",
			csv:        &mockSource{name: "csv", klines: []*domain.Kline{}},
			exchange:   &mockSource{name: "binance", err: errBoom},
			wantSeries: 0,
		},
		{
			name:     "Nobody knows the pair",
			csv:      &mockSource{name: "csv", err: fmt.Errorf("%w: no file", ports.ErrNotFound)},
			exchange: &mockSource{name: "binance", err: fmt.Errorf("%w: invalid symbol", ports.ErrNotFound)},
			wantErr:  ports.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newCoinService(t, &mockEventRepo{}, &mockMonitorRepo{}, tt.csv, tt.exchange)
			p, err := svc.GetCoinData(context.Background(), "BTC/USD", "4h")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p.Series)
			assert.Len(t, p.Series, tt.wantSeries)
		})
	}
}

func TestGetCoinData_RepositoryFailuresDegrade(t *testing.T) {
	svc, logger := newCoinService(t,
		&mockEventRepo{err: errBoom},
		&mockMonitorRepo{err: errBoom},
		&mockSource{name: "csv", klines: risingKlines(2)},
	)

	p, err := svc.GetCoinData(context.Background(), "BTC/USD", "1d")
	require.NoError(t, err)
	assert.Empty(t, p.Events)
	assert.Nil(t, p.StopLoss)
	assert.Equal(t, 0.0, p.MomentumScore, "short history")
	assert.Len(t, logger.warnMsgs, 2)
}

func TestGetCoinData_RequiresSymbol(t *testing.T) {
	svc, _ := newCoinService(t, &mockEventRepo{}, &mockMonitorRepo{}, &mockSource{name: "csv"})
	_, err := svc.GetCoinData(context.Background(), "  ", "1d")
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)
}

func TestGetCoinData_RejectsInvalidTimeframe(t *testing.T) {
	src := &mockSource{name: "csv", klines: risingKlines(3)}
	svc, _ := newCoinService(t, &mockEventRepo{}, &mockMonitorRepo{}, src)

	for _, tf := range []string{"../../secret", "1d/../x", "4hours", "0h", "1d.csv"} {
		_, err := svc.GetCoinData(context.Background(), "BTC/USD", tf)
		assert.ErrorIs(t, err, ports.ErrInvalidRequest, tf)
	}
	assert.Equal(t, 0, src.calls)

	_, err := svc.GetCoinData(context.Background(), "BTC/USD", "15m")
	assert.NoError(t, err)
}
