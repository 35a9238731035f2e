// Package currency provides the display-only currency overlay: symbol
// lookup, best-effort rate retrieval with a static fallback, and conversion
// applied after computation. The engine's unit of account is always EUR;
// nothing here feeds back into schedule math.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"CHF": "CHF ",
	"SEK": "kr ",
	"NOK": "kr ",
	"DKK": "kr ",
	"PLN": "zł ",
	"CZK": "Kč ",
	"JPY": "¥",
	"CAD": "$",
	"AUD": "$",
}

// Symbol returns the display symbol for a currency code, falling back to the
// code itself for unknown currencies.
func Symbol(code string) string {
	if symbol, ok := symbols[code]; ok {
		return symbol
	}
	return code + " "
}

// Known reports whether a currency code has a symbol and a fallback rate.
func Known(code string) bool {
	_, ok := symbols[code]
	return ok
}

// Convert applies a display rate to an EUR amount, rounded to cents.
// Decimal arithmetic keeps the displayed figures free of float residue.
func Convert(amount, rate float64) float64 {
	converted, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		Float64()
	return converted
}

var printer = message.NewPrinter(language.English)

// Format renders an amount with its currency symbol and thousands separators.
func Format(amount float64, code string) string {
	return printer.Sprintf("%s%.2f", Symbol(code), amount)
}
