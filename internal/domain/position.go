package domain

import "time"

// PositionStatus is the lifecycle state of a holding.
type PositionStatus string

const (
	StatusOpen   PositionStatus = "open"
	StatusClosed PositionStatus = "closed"
)

// Position represents a holding listed on the portfolio page.
type Position struct {
	ID         int64          // Unique identifier (from DB)
	Symbol     string         // Pair as shown on the dashboard (e.g., "BTC/USD")
	Quantity   float64        // Size of the holding
	EntryPrice float64        // Average entry price, 0 when unknown
	StopLoss   float64        // Stop-loss level, 0 when none is set
	EntryTime  time.Time      // When the holding was opened
	ExitTime   time.Time      // Zero value while open
	Status     PositionStatus // Current status (open, closed)
}

// IsOpen checks if the position status is open.
func (p *Position) IsOpen() bool {
	return p.Status == StatusOpen
}

// RankedCoin is one row of the strategy ranking, highest score first.
type RankedCoin struct {
	Symbol string  `json:"-"`
	Score  float64 `json:"score"`
	Price  float64 `json:"price"`
}
