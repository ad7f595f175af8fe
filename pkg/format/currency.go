// Package format renders amounts the way goal messages display them.
package format

import (
	"math"

	"github.com/iwvelando/save-smarter/pkg/constants"
	"github.com/iwvelando/save-smarter/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with the rand symbol and thousands
// separators (e.g., "-R1,234.56"). Amounts that overflowed render as "Rinf",
// "-Rinf" or "Rnan".
func Currency(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return constants.CurrencySymbol + "nan"
	case math.IsInf(amount, 1):
		return constants.CurrencySymbol + "inf"
	case math.IsInf(amount, -1):
		return "-" + constants.CurrencySymbol + "inf"
	}

	rounded := mathutil.Round(amount)
	formatted := NumericCurrency(math.Abs(rounded))
	if rounded < 0 {
		return "-" + constants.CurrencySymbol + formatted
	}
	return constants.CurrencySymbol + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}
