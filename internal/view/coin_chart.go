package view

import (
	"sort"
	"strings"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/echarts"
	"cryptoDashboard/internal/ports"
)

const markerSize = 9

// SplitEvents separates events with a recognised side from the rest, preserving order.
func SplitEvents(events []domain.TradeEvent) (valid, invalid []domain.TradeEvent) {
	valid = make([]domain.TradeEvent, 0, len(events))
	for _, e := range events {
		if e.Side.Valid() {
			valid = append(valid, e)
		} else {
			invalid = append(invalid, e)
		}
	}
	return valid, invalid
}

// LastEvent returns the last event of the given side in list order.
func LastEvent(events []domain.TradeEvent, side domain.Side) (domain.TradeEvent, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Side == side {
			return events[i], true
		}
	}
	return domain.TradeEvent{}, false
}

func sideColor(side domain.Side) string {
	if side == domain.Buy {
		return colorPositive
	}
	return colorNegative
}

func horizontalLine(name string, price float64, color string) echarts.MarkLineItem {
	return echarts.MarkLineItem{
		Name:      name,
		YAxis:     echarts.Float(price),
		Label:     &echarts.Label{Show: true, Position: "end", Formatter: name, Color: color},
		LineStyle: &echarts.LineStyle{Type: "dashed", Color: color, Width: 1.5},
	}
}

func verticalLine(at, color string) echarts.MarkLineItem {
	return echarts.MarkLineItem{
		XAxis:     at,
		Label:     &echarts.Label{Show: false},
		LineStyle: &echarts.LineStyle{Type: "dashed", Color: color, Width: 1},
	}
}

// ReferenceLines builds the SL/LB/LS horizontal lines followed by the
// last-buy/last-sell vertical lines.
func ReferenceLines(stopLoss *float64, events []domain.TradeEvent) []echarts.MarkLineItem {
	lastBuy, hasBuy := LastEvent(events, domain.Buy)
	lastSell, hasSell := LastEvent(events, domain.Sell)

	lines := make([]echarts.MarkLineItem, 0, 5)
	if stopLoss != nil {
		lines = append(lines, horizontalLine("SL", *stopLoss, colorStopLoss))
	}
	if hasBuy {
		lines = append(lines, horizontalLine("LB", lastBuy.Price, colorPositive))
	}
	if hasSell {
		lines = append(lines, horizontalLine("LS", lastSell.Price, colorNegative))
	}
	if hasBuy {
		lines = append(lines, verticalLine(lastBuy.Time, colorPositive))
	}
	if hasSell {
		lines = append(lines, verticalLine(lastSell.Time, colorNegative))
	}
	return lines
}

// Markers partitions events into buy and sell scatter points.
func Markers(events []domain.TradeEvent) (buys, sells []echarts.ScatterPoint) {
	buys = make([]echarts.ScatterPoint, 0)
	sells = make([]echarts.ScatterPoint, 0)
	for _, e := range events {
		pt := echarts.ScatterPoint{
			Value:      [2]interface{}{e.Time, e.Price},
			Symbol:     "triangle",
			SymbolSize: markerSize,
			ItemStyle:  &echarts.ItemStyle{Color: sideColor(e.Side)},
		}
		switch e.Side {
		case domain.Buy:
			buys = append(buys, pt)
		case domain.Sell:
			pt.SymbolRotate = 180
			sells = append(sells, pt)
		}
	}
	return buys, sells
}

// CandleTuples maps the series to (time, open, close, low, high) rows.
func CandleTuples(series []domain.Candle) [][]interface{} {
	rows := make([][]interface{}, len(series))
	for i, c := range series {
		rows[i] = []interface{}{c.Time, c.Open, c.Close, c.Low, c.High}
	}
	return rows
}

// BuildCoinOption assembles the candlestick chart for a payload whose events
// have already been validated.
func BuildCoinOption(p *domain.CoinPayload, events []domain.TradeEvent) echarts.Option {
	buys, sells := Markers(events)

	return echarts.Option{
		Animation: echarts.Bool(false),
		DataZoom: []echarts.DataZoom{
			{Type: "inside", XAxisIndex: echarts.Int(0), Throttle: 50},
			{Type: "slider", XAxisIndex: echarts.Int(0), Height: 18, HandleSize: "80%", Bottom: 8, FillerColor: "#444"},
			{Type: "inside", YAxisIndex: echarts.Int(0), Orient: "vertical", FilterMode: "none"},
		},
		Tooltip: &echarts.Tooltip{Trigger: "axis", AxisPointer: &echarts.AxisPointer{Type: "cross"}},
		XAxis: &echarts.Axis{
			Type:     "time",
			Scale:    true,
			AxisLine: &echarts.AxisLine{OnZero: echarts.Bool(false)},
		},
		YAxis: &echarts.Axis{Scale: true},
		Grid:  &echarts.Grid{Left: "8%", Right: "6%", Top: 60, Bottom: 60},
		Series: []echarts.Series{
			{
				Type: "candlestick",
				Name: "OHLC",
				Data: CandleTuples(p.Series),
				ItemStyle: &echarts.ItemStyle{
					Color:        colorCandleUp,
					Color0:       colorCandleDown,
					BorderColor:  colorCandleUp,
					BorderColor0: colorCandleDown,
				},
				MarkLine: &echarts.MarkLine{
					Silent: true,
					Symbol: "none",
					Data:   ReferenceLines(p.StopLoss, events),
				},
			},
			{Type: "scatter", Name: "Buy", Data: buys},
			{Type: "scatter", Name: "Sell", Data: sells},
		},
	}
}

// LedgerRows renders events newest first, comparing the time strings.
func LedgerRows(events []domain.TradeEvent) []ports.LedgerRow {
	sorted := make([]domain.TradeEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time > sorted[j].Time })

	rows := make([]ports.LedgerRow, len(sorted))
	for i, e := range sorted {
		rows[i] = ports.LedgerRow{
			Time:  LedgerTime(e.Time),
			Side:  strings.ToUpper(string(e.Side)),
			Price: FormatPrice(e.Price),
			Qty:   FormatQty(e.Qty),
			Class: "event-" + string(e.Side),
		}
	}
	return rows
}
