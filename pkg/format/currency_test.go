package format

import "testing"

func TestCurrencyWithSymbol(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		amount   float64
		expected string
	}{
		{"Dollar", "$", 599.55, "$599.55"},
		{"Thousands", "$", 215838, "$215,838.00"},
		{"Millions", "€", 1234567.891, "€1,234,567.89"},
		{"Negative", "£", -1234.5, "-£1,234.50"},
		{"Negative rounds to zero", "$", -0.001, "$0.00"},
		{"Empty symbol falls back", "", 12, "$12.00"},
		{"Multi-letter symbol", "CHF ", 100, "CHF 100.00"},
		{"Rounds half away from zero", "$", 1.005, "$1.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrencyWithSymbol(tt.symbol, tt.amount); got != tt.expected {
				t.Errorf("CurrencyWithSymbol(%q, %v) = %s, expected %s", tt.symbol, tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "0.00"},
		{999.999, "1,000.00"},
		{-100000, "-100,000.00"},
		{-0.004, "0.00"},
		{1234567.891, "1,234,567.89"},
	}

	for _, tt := range tests {
		if got := NumericCurrency(tt.amount); got != tt.expected {
			t.Errorf("NumericCurrency(%v) = %s, expected %s", tt.amount, got, tt.expected)
		}
	}
}
