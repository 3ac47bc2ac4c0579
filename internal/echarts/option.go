// Package echarts models the subset of the ECharts option object the dashboard
// views produce. Values marshal to the JSON shape chart.setOption expects.
package echarts

// Option is a complete chart option. Applying it replaces the previous one.
type Option struct {
	Animation *bool      `json:"animation,omitempty"`
	Title     *Title     `json:"title,omitempty"`
	Tooltip   *Tooltip   `json:"tooltip,omitempty"`
	DataZoom  []DataZoom `json:"dataZoom,omitempty"`
	XAxis     *Axis      `json:"xAxis,omitempty"`
	YAxis     *Axis      `json:"yAxis,omitempty"`
	Grid      *Grid      `json:"grid,omitempty"`
	Series    []Series   `json:"series,omitempty"`
}

type TextStyle struct {
	Color string `json:"color,omitempty"`
}

type Title struct {
	Text      string     `json:"text"`
	Left      string     `json:"left,omitempty"`
	Top       string     `json:"top,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

type AxisPointer struct {
	Type string `json:"type,omitempty"`
}

type Tooltip struct {
	Trigger     string       `json:"trigger,omitempty"`
	AxisPointer *AxisPointer `json:"axisPointer,omitempty"`
}

// DataZoom configures one pan/zoom component. Axis indexes are pointers so that
// index 0 is still emitted.
type DataZoom struct {
	Type        string `json:"type"`
	XAxisIndex  *int   `json:"xAxisIndex,omitempty"`
	YAxisIndex  *int   `json:"yAxisIndex,omitempty"`
	Orient      string `json:"orient,omitempty"`
	FilterMode  string `json:"filterMode,omitempty"`
	Throttle    int    `json:"throttle,omitempty"`
	Height      int    `json:"height,omitempty"`
	HandleSize  string `json:"handleSize,omitempty"`
	Bottom      int    `json:"bottom,omitempty"`
	FillerColor string `json:"fillerColor,omitempty"`
}

type AxisLine struct {
	OnZero *bool `json:"onZero,omitempty"`
}

type AxisLabel struct {
	Formatter string `json:"formatter,omitempty"`
}

type SplitLine struct {
	LineStyle *LineStyle `json:"lineStyle,omitempty"`
}

type Axis struct {
	Type      string     `json:"type,omitempty"`
	Scale     bool       `json:"scale,omitempty"`
	Data      []string   `json:"data,omitempty"`
	AxisLine  *AxisLine  `json:"axisLine,omitempty"`
	AxisLabel *AxisLabel `json:"axisLabel,omitempty"`
	SplitLine *SplitLine `json:"splitLine,omitempty"`
}

type Grid struct {
	Left   string `json:"left,omitempty"`
	Right  string `json:"right,omitempty"`
	Top    int    `json:"top,omitempty"`
	Bottom int    `json:"bottom,omitempty"`
}

type LineStyle struct {
	Type  string  `json:"type,omitempty"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// ItemStyle colours a series; Color0/BorderColor0 are the candlestick "down" colours.
type ItemStyle struct {
	Color        string `json:"color,omitempty"`
	Color0       string `json:"color0,omitempty"`
	BorderColor  string `json:"borderColor,omitempty"`
	BorderColor0 string `json:"borderColor0,omitempty"`
}

type Label struct {
	Show      bool   `json:"show"`
	Position  string `json:"position,omitempty"`
	Formatter string `json:"formatter,omitempty"`
	Color     string `json:"color,omitempty"`
}

// MarkLineItem is a single reference line: horizontal when YAxis is set,
// vertical when XAxis is set.
type MarkLineItem struct {
	Name      string     `json:"name,omitempty"`
	XAxis     string     `json:"xAxis,omitempty"`
	YAxis     *float64   `json:"yAxis,omitempty"`
	Label     *Label     `json:"label,omitempty"`
	LineStyle *LineStyle `json:"lineStyle,omitempty"`
}

type MarkLine struct {
	Silent bool           `json:"silent"`
	Symbol string         `json:"symbol,omitempty"`
	Data   []MarkLineItem `json:"data"`
}

// ScatterPoint is one marker of a scatter series. Value is (time, price).
type ScatterPoint struct {
	Value        [2]interface{} `json:"value"`
	Symbol       string         `json:"symbol,omitempty"`
	SymbolSize   int            `json:"symbolSize,omitempty"`
	SymbolRotate int            `json:"symbolRotate,omitempty"`
	ItemStyle    *ItemStyle     `json:"itemStyle,omitempty"`
}

type Series struct {
	Type       string      `json:"type"`
	Name       string      `json:"name,omitempty"`
	Data       interface{} `json:"data"`
	ItemStyle  *ItemStyle  `json:"itemStyle,omitempty"`
	LineStyle  *LineStyle  `json:"lineStyle,omitempty"`
	MarkLine   *MarkLine   `json:"markLine,omitempty"`
	Smooth     bool        `json:"smooth,omitempty"`
	ShowSymbol *bool       `json:"showSymbol,omitempty"`
}

// Bool returns a pointer to b, for optional boolean fields.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for optional axis indexes.
func Int(i int) *int { return &i }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Placeholder returns the option used for empty or failed states: a single
// centered grey title and nothing else.
func Placeholder(text string) Option {
	return Option{
		Title: &Title{
			Text:      text,
			Left:      "center",
			Top:       "40%",
			TextStyle: &TextStyle{Color: "#ccc"},
		},
	}
}
