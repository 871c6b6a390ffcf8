// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

const infinity = "∞"

// FormatMoney formats a currency amount with 2 decimals and thousands separators.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatMoney(v float64) string {
	if math.IsInf(v, 1) {
		return infinity
	}
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatQuantity formats a fractional count such as customers.
// e.g., 1234.5 -> "1,234.50"
func FormatQuantity(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 fraction as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatRatio formats a multiple such as LTV:CAC. +Inf renders as "∞".
func FormatRatio(r float64) string {
	if math.IsInf(r, 1) {
		return infinity
	}
	return fmt.Sprintf("%.2fx", r)
}

// FormatDelta formats actual minus expected with an explicit sign.
func FormatDelta(actual, expected float64) string {
	delta := actual - expected
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return FormatMoney(delta)
}

// FormatMonth labels a 1-based projection month.
func FormatMonth(m int) string {
	return fmt.Sprintf("M%d", m)
}
