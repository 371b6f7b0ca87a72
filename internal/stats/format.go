package stats

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders cents as signed dollars: 1234 -> "+$12.34",
// -500 -> "-$5.00", 0 -> "+$0.00".
func FormatCurrency(cents int64) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "+$" + d.StringFixed(2)
}

var half = decimal.NewFromFloat(0.5)

// FormatCurrencyFloat rounds fractional cents (averages, deviations) to the
// nearest cent and formats them like FormatCurrency. Halves round up, so
// -12.5 cents is -$0.12.
func FormatCurrencyFloat(cents float64) string {
	return FormatCurrency(decimal.NewFromFloat(cents).Add(half).Floor().IntPart())
}

// FormatPercent renders a 0-100 percentage with one decimal.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func gamesLabel(n int) string {
	if n == 1 {
		return "1 game"
	}
	return fmt.Sprintf("%d games", n)
}
