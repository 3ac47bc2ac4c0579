package domain

import "time"

// Kline represents a single candlestick data point.
type Kline struct {
	OpenTime  time.Time // Start time of the interval
	CloseTime time.Time // End time of the interval
	Symbol    string    // Trading symbol
	Interval  string    // Kline interval (e.g., "1h", "1d")
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Trading volume
	IsFinal   bool      // Whether this kline is the final one for the interval

	// RawTime keeps the timestamp exactly as the source wrote it (CSV files),
	// so the wire form does not re-format it.
	RawTime string
}

// Candle converts the kline into its wire representation.
func (k *Kline) Candle() Candle {
	t := k.RawTime
	if t == "" {
		t = k.OpenTime.UTC().Format(time.RFC3339)
	}
	return Candle{Time: t, Open: k.Open, Close: k.Close, Low: k.Low, High: k.High}
}

// Candle is one OHLC bar as served by /coin_data.
type Candle struct {
	Time  string  `json:"t"`
	Open  float64 `json:"o"`
	Close float64 `json:"c"`
	Low   float64 `json:"l"`
	High  float64 `json:"h"`
}
