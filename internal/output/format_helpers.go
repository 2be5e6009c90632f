package output

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount formats a money amount with thousands separators and 2 decimals.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	whole, frac, _ := strings.Cut(strings.TrimPrefix(fixed, "-"), ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fixed
	}
	s := amountPrinter.Sprintf("%d", n) + "." + frac
	if negative {
		s = "-" + s
	}
	return s
}

// FormatPercentage formats a fractional rate as a percentage with 2 decimals (0.0135 -> "1.35%").
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
