package domain

// CoinPayload is the /coin_data response body.
type CoinPayload struct {
	Symbol        string       `json:"symbol"`
	Series        []Candle     `json:"series"`
	Events        []TradeEvent `json:"events"`
	MomentumScore float64      `json:"momentum_score"`
	StopLoss      *float64     `json:"stop_loss"`
}

// PnlPayload is the /chart_data response body. Labels[i] belongs to Values[i].
type PnlPayload struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// AssetSnapshot is the /assets_usd response body.
type AssetSnapshot struct {
	ValueUSD float64 `json:"value_usd"`
	PctPnL   float64 `json:"pct_pnl"`
}

// AccountSnapshot is one daily account valuation.
type AccountSnapshot struct {
	Date     string // YYYY-MM-DD
	ValueUSD float64
	PctPnL   float64
}
