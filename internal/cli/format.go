// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with a currency symbol, thousands
// separators and two decimal places.
// e.g., ("₹", 1234.5) -> "₹1,234.50", ("$", -3.25) -> "-$3.25"
func FormatMoney(currency string, d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + currency + fixed
	}
	return sign + currency + humanize.BigComma(n) + "." + frac
}

// FormatCount formats an integer count with comma separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
