package ports

import (
	"context"

	"cryptoDashboard/internal/domain"
)

// EventRepository stores the trade events drawn on coin charts.
type EventRepository interface {
	// CreateEvent saves a trade event and returns its assigned ID.
	CreateEvent(ctx context.Context, event *domain.TradeEvent) (int64, error)
	// FindEventsBySymbol returns every event for the symbol in insertion order.
	FindEventsBySymbol(ctx context.Context, symbol string) ([]domain.TradeEvent, error)
}

// MonitorRepository stores the latest position monitor output per symbol.
type MonitorRepository interface {
	// UpsertMonitor replaces the monitor row for monitor.Symbol.
	UpsertMonitor(ctx context.Context, monitor *domain.Monitor) error
	// FindMonitor returns nil, nil when the symbol has never been monitored.
	FindMonitor(ctx context.Context, symbol string) (*domain.Monitor, error)
}

// AccountRepository stores daily account valuations.
type AccountRepository interface {
	// CreateSnapshot saves a snapshot; it fails if the date already exists.
	CreateSnapshot(ctx context.Context, snap *domain.AccountSnapshot) error
	// FindSnapshots returns all snapshots ordered by date ascending.
	FindSnapshots(ctx context.Context) ([]domain.AccountSnapshot, error)
	// LatestSnapshot returns nil, nil when no snapshot exists.
	LatestSnapshot(ctx context.Context) (*domain.AccountSnapshot, error)
}

// PositionRepository stores the holdings shown on the portfolio page.
type PositionRepository interface {
	// CreatePosition saves an open position and returns its assigned ID.
	CreatePosition(ctx context.Context, pos *domain.Position) (int64, error)
	// ClosePositions marks every open position for the symbol closed.
	ClosePositions(ctx context.Context, symbol string) error
	// FindOpenPositions returns open positions ordered by symbol.
	FindOpenPositions(ctx context.Context) ([]domain.Position, error)
}

// RankingRepository stores the latest strategy ranking.
type RankingRepository interface {
	// ReplaceRanking swaps the stored ranking for coins in one transaction.
	ReplaceRanking(ctx context.Context, coins []domain.RankedCoin) error
	// FindRanking returns the ranking ordered by score descending.
	FindRanking(ctx context.Context) ([]domain.RankedCoin, error)
}
