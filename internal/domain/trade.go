package domain

// TradeEvent represents a buy or sell executed by the bot, drawn as a chart marker
// and listed in the coin ledger.
type TradeEvent struct {
	ID     int64   `json:"-"`
	Symbol string  `json:"-"`
	Time   string  `json:"time"` // ISO-8601, sortable as a string
	Side   Side    `json:"side"`
	Price  float64 `json:"price"`
	Qty    float64 `json:"qty"`
}

// Monitor holds the position monitor output for a symbol.
// Nil fields mean the monitor never reported that value.
type Monitor struct {
	Symbol        string
	StopLoss      *float64
	MomentumScore *float64
}
