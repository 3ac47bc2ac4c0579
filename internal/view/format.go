package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const placeholderGlyph = "—"

// Palette shared by the coin and home views.
const (
	colorPositive   = "#3fdb6f"
	colorNegative   = "#f44336"
	colorNeutral    = "#e0e1dd"
	colorStopLoss   = "#ffffff"
	colorCandleUp   = "#45b3ff"
	colorCandleDown = "#d35454"
	colorAssetUp    = "#37d67a"
	colorPnLLine    = "#45b3ff"
)

// momentumThreshold is the absolute score beyond which the label turns green or red.
const momentumThreshold = 0.05

var usd = message.NewPrinter(language.English)

// MomentumLabel formats a momentum score to 2 decimals and picks its colour.
func MomentumLabel(score float64) (text, color string) {
	text = placeholderGlyph
	if score != 0 {
		text = toFixed(score, 2)
	}
	switch {
	case score > momentumThreshold:
		color = colorPositive
	case score < -momentumThreshold:
		color = colorNegative
	default:
		color = colorNeutral
	}
	return text, color
}

// StopLossLabel formats a stop-loss price to 4 decimals; unset or zero shows the placeholder.
func StopLossLabel(stopLoss *float64) string {
	if stopLoss == nil || *stopLoss == 0 {
		return placeholderGlyph
	}
	return toFixed(*stopLoss, 4)
}

// AssetValueText renders "$ 12,345.67".
func AssetValueText(valueUSD float64) string {
	return "$ " + usd.Sprintf("%.2f", valueUSD)
}

// AssetDelta renders the signed percentage change and its colour.
func AssetDelta(pct float64) (text, color string) {
	sign, color := "+", colorAssetUp
	if !(pct >= 0) {
		sign, color = "–", colorNegative
	}
	return "Δ " + sign + toFixed(math.Abs(pct), 2) + " %", color
}

// FormatPrice renders a price with 2 decimals.
func FormatPrice(price float64) string {
	return toFixed(price, 2)
}

// FormatQty renders a quantity with 6 significant digits.
func FormatQty(qty float64) string {
	return toPrecision(qty, 6)
}

// exactDecimal returns the exact binary value of a finite v.
func exactDecimal(v float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 1074, 64))
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}

// toFixed formats v with places decimals. Exact ties round away from zero and
// negative values keep their sign even when they round to zero.
func toFixed(v float64, places int) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	out := exactDecimal(math.Abs(v)).StringFixed(int32(places))
	if v < 0 {
		return "-" + out
	}
	return out
}

// toPrecision formats v with p significant digits, switching to exponent notation
// ("1.23457e+6") when the exponent is below -6 or at least p. Ties round away
// from zero.
func toPrecision(v float64, p int) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	if v == 0 {
		return strconv.FormatFloat(0, 'f', p-1, 64)
	}

	d := exactDecimal(math.Abs(v))
	exp := d.NumDigits() - 1 + int(d.Exponent())
	d = d.Round(int32(p - 1 - exp))
	exp = d.NumDigits() - 1 + int(d.Exponent())

	var out string
	if exp < -6 || exp >= p {
		mantissa := d.Shift(int32(-exp)).StringFixed(int32(p - 1))
		if exp < 0 {
			out = mantissa + "e-" + strconv.Itoa(-exp)
		} else {
			out = mantissa + "e+" + strconv.Itoa(exp)
		}
	} else {
		out = d.StringFixed(int32(p - 1 - exp))
	}
	if v < 0 {
		return "-" + out
	}
	return out
}

// LedgerTime turns "2024-05-01T10:00:00Z" into "2024-05-01 10:00:00".
func LedgerTime(ts string) string {
	ts = strings.Replace(ts, "T", " ", 1)
	return strings.Replace(ts, "Z", "", 1)
}
