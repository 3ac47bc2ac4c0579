package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
)

func TestPortfolioService_RecordSnapshot(t *testing.T) {
	repo := &mockAccountRepo{}
	svc, err := NewPortfolioService(&mockLogger{}, repo)
	require.NoError(t, err)
	ctx := context.Background()

	first, created, err := svc.RecordSnapshot(ctx, "2024-05-01", 1000)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 0.0, first.PctPnL)

	second, created, err := svc.RecordSnapshot(ctx, "2024-05-02", 1033.33333)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 3.3333, second.PctPnL)

	again, created, err := svc.RecordSnapshot(ctx, "2024-05-02", 5)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1033.33333, again.ValueUSD, "existing date is left alone")

	third, _, err := svc.RecordSnapshot(ctx, "2024-05-03", 930)
	require.NoError(t, err)
	assert.Equal(t, -10.0, third.PctPnL)

	assert.Len(t, repo.snaps, 3)
}

func TestPortfolioService_RecordSnapshotValidation(t *testing.T) {
	svc, err := NewPortfolioService(&mockLogger{}, &mockAccountRepo{})
	require.NoError(t, err)

	_, _, err = svc.RecordSnapshot(context.Background(), "05/01/2024", 10)
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)
	_, _, err = svc.RecordSnapshot(context.Background(), "2024-05-01", -1)
	assert.ErrorIs(t, err, ports.ErrInvalidRequest)

	_, err = NewPortfolioService(nil, &mockAccountRepo{})
	assert.Error(t, err)
}

func TestPortfolioService_ChartDataAndAssets(t *testing.T) {
	repo := &mockAccountRepo{}
	svc, err := NewPortfolioService(&mockLogger{}, repo)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Assets(ctx)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	empty, err := svc.ChartData(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.Labels)
	assert.NotNil(t, empty.Values)

	repo.snaps = []domain.AccountSnapshot{
		{Date: "2024-05-01", ValueUSD: 1000, PctPnL: 0},
		{Date: "2024-05-02", ValueUSD: 1100, PctPnL: 10},
	}

	pnl, err := svc.ChartData(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, pnl.Labels)
	assert.Equal(t, []float64{0, 10}, pnl.Values)

	dates, values, err := svc.ValueHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, pnl.Labels, dates)
	assert.Equal(t, []float64{1000, 1100}, values)

	snap, err := svc.Assets(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.AssetSnapshot{ValueUSD: 1100, PctPnL: 10}, snap)

	repo.err = errBoom
	_, err = svc.ChartData(ctx)
	assert.ErrorIs(t, err, errBoom)
}
