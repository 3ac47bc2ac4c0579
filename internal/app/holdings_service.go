package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
)

// HoldingsService serves the open positions and the strategy ranking behind
// the portfolio and strategy pages.
type HoldingsService struct {
	logger    ports.Logger
	positions ports.PositionRepository
	ranking   ports.RankingRepository
}

func NewHoldingsService(logger ports.Logger, positions ports.PositionRepository, ranking ports.RankingRepository) (*HoldingsService, error) {
	if logger == nil || positions == nil || ranking == nil {
		return nil, fmt.Errorf("missing required dependencies for HoldingsService")
	}
	return &HoldingsService{logger: logger, positions: positions, ranking: ranking}, nil
}

// OpenPositions returns the open positions sorted by symbol.
func (s *HoldingsService) OpenPositions(ctx context.Context) ([]domain.Position, error) {
	positions, err := s.positions.FindOpenPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading open positions: %w", err)
	}
	return positions, nil
}

// RankedCoins returns the strategy ranking, highest score first.
func (s *HoldingsService) RankedCoins(ctx context.Context) ([]domain.RankedCoin, error) {
	coins, err := s.ranking.FindRanking(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ranking: %w", err)
	}
	return coins, nil
}

// SetHolding replaces the open position for symbol. A quantity of 0 only
// closes it.
func (s *HoldingsService) SetHolding(ctx context.Context, symbol string, qty float64) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fmt.Errorf("%w: symbol is required", ports.ErrInvalidRequest)
	}
	if qty < 0 {
		return fmt.Errorf("%w: quantity for %s cannot be negative", ports.ErrInvalidRequest, symbol)
	}

	if err := s.positions.ClosePositions(ctx, symbol); err != nil {
		return fmt.Errorf("closing positions for %s: %w", symbol, err)
	}
	if qty == 0 {
		s.logger.Info(ctx, "Holding closed", map[string]interface{}{"symbol": symbol})
		return nil
	}
	if _, err := s.positions.CreatePosition(ctx, &domain.Position{Symbol: symbol, Quantity: qty}); err != nil {
		return fmt.Errorf("opening position for %s: %w", symbol, err)
	}
	s.logger.Info(ctx, "Holding set", map[string]interface{}{"symbol": symbol, "quantity": qty})
	return nil
}

// ReplaceRanking stores scores keyed by symbol as the new ranking.
func (s *HoldingsService) ReplaceRanking(ctx context.Context, scores map[string]domain.RankedCoin) error {
	coins := make([]domain.RankedCoin, 0, len(scores))
	for sym, rc := range scores {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			return fmt.Errorf("%w: ranked coin without symbol", ports.ErrInvalidRequest)
		}
		rc.Symbol = sym
		coins = append(coins, rc)
	}
	sort.Slice(coins, func(i, j int) bool { return coins[i].Score > coins[j].Score })

	if err := s.ranking.ReplaceRanking(ctx, coins); err != nil {
		return fmt.Errorf("storing ranking: %w", err)
	}
	s.logger.Info(ctx, "Ranking replaced", map[string]interface{}{"count": len(coins)})
	return nil
}
