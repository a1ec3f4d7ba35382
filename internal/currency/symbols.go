package currency

import (
	"strings"

	"golang.org/x/text/currency"
)

// displaySymbols maps ISO 4217 codes to the symbol shown next to amounts.
var displaySymbols = map[string]string{
	"AUD": "A$",
	"BRL": "R$",
	"CAD": "C$",
	"CHF": "CHF ",
	"CNY": "¥",
	"EUR": "€",
	"GBP": "£",
	"HKD": "HK$",
	"ILS": "₪",
	"INR": "₹",
	"JPY": "¥",
	"KRW": "₩",
	"MXN": "MX$",
	"NGN": "₦",
	"NZD": "NZ$",
	"PHP": "₱",
	"PLN": "zł",
	"RUB": "₽",
	"SEK": "kr ",
	"THB": "฿",
	"TRY": "₺",
	"UAH": "₴",
	"USD": "$",
	"VND": "₫",
	"ZAR": "R ",
}

// SymbolForCode returns the display symbol for an ISO 4217 currency code.
// Valid codes without a known symbol display as the code itself; invalid
// codes report false.
func SymbolForCode(code string) (string, bool) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", false
	}
	iso := unit.String()
	if symbol, ok := displaySymbols[iso]; ok {
		return symbol, true
	}
	return iso + " ", true
}
