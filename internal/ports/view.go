package ports

import "cryptoDashboard/internal/echarts"

// Chart is a chart element on a page.
type Chart interface {
	// Clear removes everything drawn on the chart.
	Clear()
	// SetOption replaces the chart content with opt.
	SetOption(opt echarts.Option)
}

// Label is a text element whose content and colour views update.
type Label interface {
	SetText(text string)
	SetColor(color string)
}

// LedgerRow is one rendered trade ledger line.
type LedgerRow struct {
	Time  string `json:"time"`
	Side  string `json:"side"`  // upper-cased
	Price string `json:"price"` // 2 decimals
	Qty   string `json:"qty"`   // 6 significant digits
	Class string `json:"class"` // event-buy / event-sell
}

// Ledger is the trade ledger panel. Rendering an empty slice clears it.
type Ledger interface {
	Render(rows []LedgerRow)
}

// TimeframeSelector is the group of timeframe buttons on a coin page.
type TimeframeSelector interface {
	Timeframes() []string
	SetActive(timeframe string, active bool)
}

// Page is a set of addressable elements a view renders into.
type Page interface {
	Chart(id string) Chart
	Label(id string) Label
	Ledger(id string) Ledger
	Selector(class string, timeframes []string) TimeframeSelector
}

// PageProvider hands out pages by name, creating them on first use.
type PageProvider interface {
	Page(name string) Page
	// Remove forgets the named page.
	Remove(name string)
}
