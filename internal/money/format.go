package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders amount with the currency symbol and en-US digit grouping,
// e.g. "€1,234.50" or "L96,400". Negative amounts are prefixed with "-".
func Format(amount decimal.Decimal, c Currency) string {
	decimals := c.Decimals()
	rounded := amount.Round(int32(decimals))

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	f, _ := rounded.Float64()

	return sign + c.Symbol() + printer.Sprint(number.Decimal(f, number.Scale(decimals)))
}

// FormatCompact renders amount with a k/M suffix for chart axes and KPI tiles.
func FormatCompact(amount decimal.Decimal, c Currency) string {
	abs := amount.Abs()

	var body string

	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		body = abs.Div(decimal.NewFromInt(1_000_000)).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000)):
		body = abs.Div(decimal.NewFromInt(1_000)).StringFixed(0) + "k"
	default:
		body = abs.StringFixed(0)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	return fmt.Sprintf("%s%s%s", sign, c.Symbol(), body)
}
