package view

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMomentumLabel(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		wantText  string
		wantColor string
	}{
		{"Zero shows placeholder", 0, "—", "#e0e1dd"},
		{"Strong positive", 0.42, "0.42", "#3fdb6f"},
		{"Strong negative", -0.3, "-0.30", "#f44336"},
		{"Positive at threshold stays neutral", 0.05, "0.05", "#e0e1dd"},
		{"Negative at threshold stays neutral", -0.05, "-0.05", "#e0e1dd"},
		{"Just above threshold", 0.051, "0.05", "#3fdb6f"},
		{"Tiny non-zero value", 0.001, "0.00", "#e0e1dd"},
		{"Exact tie rounds up", 0.125, "0.13", "#3fdb6f"},
		{"Negative exact tie rounds away from zero", -0.125, "-0.13", "#f44336"},
		{"Tiny negative keeps its sign", -0.001, "-0.00", "#e0e1dd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, color := MomentumLabel(tt.score)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}

func TestStopLossLabel(t *testing.T) {
	v := 61234.5
	zero := 0.0
	assert.Equal(t, "61234.5000", StopLossLabel(&v))
	assert.Equal(t, "—", StopLossLabel(&zero))
	assert.Equal(t, "—", StopLossLabel(nil))
	tie := 0.03125
	assert.Equal(t, "0.0313", StopLossLabel(&tie))
}

func TestAssetValueText(t *testing.T) {
	assert.Equal(t, "$ 1,234.50", AssetValueText(1234.5))
	assert.Equal(t, "$ 0.00", AssetValueText(0))
	assert.Equal(t, "$ 1,234,567.89", AssetValueText(1234567.891))
}

func TestAssetDelta(t *testing.T) {
	tests := []struct {
		pct       float64
		wantText  string
		wantColor string
	}{
		{1.5, "Δ +1.50 %", "#37d67a"},
		{0, "Δ +0.00 %", "#37d67a"},
		{-1.5, "Δ –1.50 %", "#f44336"},
		{-0.004, "Δ –0.00 %", "#f44336"},
		{1.125, "Δ +1.13 %", "#37d67a"},
		{-0.375, "Δ –0.38 %", "#f44336"},
	}
	for _, tt := range tests {
		text, color := AssetDelta(tt.pct)
		assert.Equal(t, tt.wantText, text)
		assert.Equal(t, tt.wantColor, color)
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		qty  float64
		want string
	}{
		{0.5, "0.500000"},
		{1, "1.00000"},
		{123.456789, "123.457"},
		{0.00012345, "0.000123450"},
		{1234567, "1.23457e+6"},
		{0.0000001, "1.00000e-7"},
		{0, "0.00000"},
		{-2.5, "-2.50000"},
		{math.NaN(), "NaN"},
		{100000.5, "100001"},
		{1234.125, "1234.13"},
		{999999.5, "1.00000e+6"},
		{-0.0000015, "-0.00000150000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatQty(tt.qty), "qty %v", tt.qty)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "65000.00", FormatPrice(65000))
	assert.Equal(t, "0.12", FormatPrice(0.1234))
	assert.Equal(t, "1.13", FormatPrice(1.125))
	assert.Equal(t, "-1.13", FormatPrice(-1.125))
	// 1.005 is stored just below the tie.
	assert.Equal(t, "1.00", FormatPrice(1.005))
	assert.Equal(t, "2.50", FormatPrice(2.4999999999999996))
}

func TestLedgerTime(t *testing.T) {
	assert.Equal(t, "2024-05-01 10:00:00", LedgerTime("2024-05-01T10:00:00Z"))
	assert.Equal(t, "2024-05-01 10:00:00.123+00:00", LedgerTime("2024-05-01T10:00:00.123+00:00"))
	assert.Equal(t, "", LedgerTime(""))
}
