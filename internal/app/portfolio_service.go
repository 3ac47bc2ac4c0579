package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
)

const dateLayout = "2006-01-02"

// PortfolioService serves the account PnL history and records daily valuations.
type PortfolioService struct {
	logger ports.Logger
	repo   ports.AccountRepository
}

func NewPortfolioService(logger ports.Logger, repo ports.AccountRepository) (*PortfolioService, error) {
	if logger == nil || repo == nil {
		return nil, fmt.Errorf("missing required dependencies for PortfolioService")
	}
	return &PortfolioService{logger: logger, repo: repo}, nil
}

// ChartData returns the PnL % per recorded day, oldest first.
func (s *PortfolioService) ChartData(ctx context.Context) (*domain.PnlPayload, error) {
	snaps, err := s.repo.FindSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading account history: %w", err)
	}
	p := &domain.PnlPayload{
		Labels: make([]string, len(snaps)),
		Values: make([]float64, len(snaps)),
	}
	for i, snap := range snaps {
		p.Labels[i] = snap.Date
		p.Values[i] = snap.PctPnL
	}
	return p, nil
}

// ValueHistory returns the USD value per recorded day, oldest first.
func (s *PortfolioService) ValueHistory(ctx context.Context) (dates []string, values []float64, err error) {
	snaps, err := s.repo.FindSnapshots(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading account history: %w", err)
	}
	dates = make([]string, len(snaps))
	values = make([]float64, len(snaps))
	for i, snap := range snaps {
		dates[i] = snap.Date
		values[i] = snap.ValueUSD
	}
	return dates, values, nil
}

// Assets returns the latest valuation, or ports.ErrNotFound before the first one.
func (s *PortfolioService) Assets(ctx context.Context) (*domain.AssetSnapshot, error) {
	latest, err := s.repo.LatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: no account snapshot recorded", ports.ErrNotFound)
	}
	return &domain.AssetSnapshot{ValueUSD: latest.ValueUSD, PctPnL: latest.PctPnL}, nil
}

// RecordSnapshot stores the valuation for date once. The percentage is the
// change against the latest earlier snapshot, rounded to 4 decimals, and 0 for
// the first one. It reports false when date was already recorded.
func (s *PortfolioService) RecordSnapshot(ctx context.Context, date string, valueUSD float64) (*domain.AccountSnapshot, bool, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, false, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ports.ErrInvalidRequest, date)
	}
	if valueUSD < 0 {
		return nil, false, fmt.Errorf("%w: value cannot be negative", ports.ErrInvalidRequest)
	}

	snaps, err := s.repo.FindSnapshots(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("loading account history: %w", err)
	}

	var prev *domain.AccountSnapshot
	for i := range snaps {
		if snaps[i].Date == date {
			s.logger.Info(ctx, "Snapshot already recorded for date", map[string]interface{}{"date": date})
			existing := snaps[i]
			return &existing, false, nil
		}
		if snaps[i].Date < date {
			prev = &snaps[i]
		}
	}

	snap := &domain.AccountSnapshot{Date: date, ValueUSD: valueUSD, PctPnL: pctChange(prev, valueUSD)}
	if err := s.repo.CreateSnapshot(ctx, snap); err != nil {
		if errors.Is(err, ports.ErrAlreadyExists) {
			return snap, false, nil
		}
		return nil, false, fmt.Errorf("recording snapshot: %w", err)
	}

	s.logger.Info(ctx, "Account snapshot recorded", map[string]interface{}{
		"date":     snap.Date,
		"valueUSD": snap.ValueUSD,
		"pctPnL":   snap.PctPnL,
	})
	return snap, true, nil
}

func pctChange(prev *domain.AccountSnapshot, value float64) float64 {
	if prev == nil || prev.ValueUSD == 0 {
		return 0
	}
	before := decimal.NewFromFloat(prev.ValueUSD)
	pct := decimal.NewFromFloat(value).Sub(before).Div(before).Mul(decimal.NewFromInt(100)).Round(4)
	return pct.InexactFloat64()
}
