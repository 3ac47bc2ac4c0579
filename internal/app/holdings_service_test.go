package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
)

func newHoldings(t *testing.T) (*HoldingsService, *mockPositionRepo, *mockRankingRepo) {
	t.Helper()
	positions := &mockPositionRepo{}
	ranking := &mockRankingRepo{}
	svc, err := NewHoldingsService(&mockLogger{}, positions, ranking)
	require.NoError(t, err)
	return svc, positions, ranking
}

func TestNewHoldingsService_RequiresDependencies(t *testing.T) {
	_, err := NewHoldingsService(&mockLogger{}, nil, &mockRankingRepo{})
	assert.Error(t, err)
}

func TestHoldingsService_SetHolding(t *testing.T) {
	svc, _, _ := newHoldings(t)
	ctx := context.Background()

	require.NoError(t, svc.SetHolding(ctx, "SOL/USD", 10))
	require.NoError(t, svc.SetHolding(ctx, " BTC/USD ", 0.5))
	require.NoError(t, svc.SetHolding(ctx, "SOL/USD", 12))
	require.NoError(t, svc.SetHolding(ctx, "ETH/USD", 2))
	require.NoError(t, svc.SetHolding(ctx, "ETH/USD", 0))

	open, err := svc.OpenPositions(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "BTC/USD", open[0].Symbol)
	assert.Equal(t, "SOL/USD", open[1].Symbol)
	assert.Equal(t, 12.0, open[1].Quantity, "a new quantity replaces the open one")

	assert.ErrorIs(t, svc.SetHolding(ctx, "", 1), ports.ErrInvalidRequest)
	assert.ErrorIs(t, svc.SetHolding(ctx, "ADA/USD", -1), ports.ErrInvalidRequest)
}

func TestHoldingsService_OpenPositionsError(t *testing.T) {
	svc, positions, _ := newHoldings(t)
	positions.err = errBoom

	_, err := svc.OpenPositions(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestHoldingsService_ReplaceRanking(t *testing.T) {
	svc, _, ranking := newHoldings(t)
	ctx := context.Background()

	err := svc.ReplaceRanking(ctx, map[string]domain.RankedCoin{
		"ETH/USD": {Score: 0.4, Price: 3000},
		"SOL/USD": {Score: 0.7, Price: 150},
		"ADA/USD": {Score: -0.1, Price: 0.45},
	})
	require.NoError(t, err)

	coins, err := svc.RankedCoins(ctx)
	require.NoError(t, err)
	require.Len(t, coins, 3)
	assert.Equal(t, "SOL/USD", coins[0].Symbol)
	assert.Equal(t, "ETH/USD", coins[1].Symbol)
	assert.Equal(t, "ADA/USD", coins[2].Symbol)
	assert.Equal(t, 0.45, coins[2].Price)

	err = svc.ReplaceRanking(ctx, map[string]domain.RankedCoin{"": {Score: 1}})
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)
	assert.Len(t, ranking.coins, 3)

	ranking.err = errBoom
	_, err = svc.RankedCoins(ctx)
	assert.ErrorIs(t, err, errBoom)
}
