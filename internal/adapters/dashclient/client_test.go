package dashclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptoDashboard/internal/ports"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/", Timeout: time.Second, Logger: &mockLogger{}})
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{BaseURL: "http://localhost:5000"})
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "not a url", Logger: &mockLogger{}})
	assert.ErrorIs(t, err, ports.ErrConfigurationError)

	c, err := New(Config{BaseURL: "http://localhost:5000", Logger: &mockLogger{}})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
}

func TestCoinData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coin_data", r.URL.Path)
		assert.Equal(t, "BTC/USD", r.URL.Query().Get("symbol"))
		assert.Equal(t, "4h", r.URL.Query().Get("tf"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"symbol": "BTC/USD",
			"series": [{"t": "2024-05-01T00:00:00Z", "o": 1, "c": 2, "l": 0.5, "h": 3}],
			"events": [{"time": "2024-05-01T00:00:00Z", "side": "buy", "price": 1.5, "qty": 2}],
			"momentum_score": 0.12,
			"stop_loss": null
		}`))
	})

	p, err := c.CoinData(context.Background(), "BTC/USD", "4h")
	require.NoError(t, err)
	require.Len(t, p.Series, 1)
	assert.Equal(t, 3.0, p.Series[0].High)
	require.Len(t, p.Events, 1)
	assert.Equal(t, "buy", string(p.Events[0].Side))
	assert.Equal(t, 0.12, p.MomentumScore)
	assert.Nil(t, p.StopLoss)
}

func TestChartDataAndAssets(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chart_data":
			_, _ = w.Write([]byte(`{"labels": ["2024-05-01", "2024-05-02"], "values": [0, 1.5]}`))
		case "/assets_usd":
			_, _ = w.Write([]byte(`{"value_usd": 1234.5, "pct_pnl": -0.75}`))
		default:
			http.NotFound(w, r)
		}
	})

	pnl, err := c.ChartData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, pnl.Labels)
	assert.Equal(t, []float64{0, 1.5}, pnl.Values)

	snap, err := c.Assets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1234.5, snap.ValueUSD)
	assert.Equal(t, -0.75, snap.PctPnL)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "Not found is a bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"no candles"}`, http.StatusNotFound)
			},
			wantErr: ports.ErrBadStatus,
		},
		{
			name: "Not found is also classified as not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"no candles"}`, http.StatusNotFound)
			},
			wantErr: ports.ErrNotFound,
		},
		{
			name: "Server error is a bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: ports.ErrBadStatus,
		},
		{
			name: "Garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			wantErr: ports.ErrDecode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.CoinData(context.Background(), "BTC/USD", "1d")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.CoinData(context.Background(), "BTC/USD", "1d")
	assert.NotErrorIs(t, err, ports.ErrNotFound)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Logger: &mockLogger{}})
	require.NoError(t, err)

	_, err = c.Assets(context.Background())
	assert.ErrorIs(t, err, ports.ErrTimeout)
}
