package domain

import (
	"fmt"
	"regexp"
)

// Side represents the side of a trade event (buy or sell).
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Valid reports whether the side is one of the two known values.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// ParseSide converts a raw side value into a Side, rejecting anything other than buy/sell.
func ParseSide(raw string) (Side, error) {
	side := Side(raw)
	if !side.Valid() {
		return "", fmt.Errorf("unknown trade side %q", raw)
	}
	return side, nil
}

// DefaultTimeframe is the timeframe a coin view loads when first opened.
const DefaultTimeframe = "1d"

// DefaultTimeframes lists the timeframe selector buttons shown on a coin page.
var DefaultTimeframes = []string{"1h", "4h", "1d", "1w"}

var timeframePattern = regexp.MustCompile(`^[1-9][0-9]{0,2}[smhdwM]$`)

// ValidTimeframe reports whether tf is an exchange interval such as "15m",
// "4h", "1d", "1w" or "1M".
func ValidTimeframe(tf string) bool {
	return timeframePattern.MatchString(tf)
}
