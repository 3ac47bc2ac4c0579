package ports

import (
	"context"

	"cryptoDashboard/internal/domain"
)

// DashboardClient fetches view payloads from the dashboard backend.
// A non-2xx response is reported as ErrBadStatus, an undecodable body as ErrDecode.
type DashboardClient interface {
	CoinData(ctx context.Context, symbol, timeframe string) (*domain.CoinPayload, error)
	ChartData(ctx context.Context) (*domain.PnlPayload, error)
	Assets(ctx context.Context) (*domain.AssetSnapshot, error)
}
