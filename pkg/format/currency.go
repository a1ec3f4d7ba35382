// Package format renders currency amounts for display.
package format

import (
	"math"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyWithSymbol returns an amount with the given display symbol and
// thousands separators (e.g., "€1,234.56", "-$12.00"). An empty symbol falls
// back to the default.
func CurrencyWithSymbol(symbol string, amount float64) string {
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}
	sign, digits := grouped(amount)
	return sign + symbol + digits
}

// NumericCurrency is CurrencyWithSymbol without a symbol (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign, digits := grouped(amount)
	return sign + digits
}

// grouped splits amount into its sign and its English-grouped magnitude in
// cents. Amounts that round to zero carry no sign.
func grouped(amount float64) (string, string) {
	cents := mathutil.Round(math.Abs(amount))
	sign := ""
	if amount < 0 && cents != 0 {
		sign = "-"
	}
	return sign, message.NewPrinter(language.English).Sprintf("%.2f", cents)
}
