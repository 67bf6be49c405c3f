// Package price renders product prices for terminal output.
package price

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders a price with a currency sign, grouped thousands and
// exactly two decimals.
func Format(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// FormatLine renders a quantity-times-price line total.
func FormatLine(quantity int, unit float64) string {
	return printer.Sprintf("%d x $%.2f", quantity, unit)
}
