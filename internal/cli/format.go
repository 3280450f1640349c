// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/financeflow/internal/model"
)

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// FormatCOP formats a peso amount with dot thousands separators, e.g.
// 1100000 -> "$1.100.000" and 100000.5 -> "$100.000,50".
func FormatCOP(d decimal.Decimal) string {
	return withSign(d, "$", "#.###,", "#.###,##")
}

// FormatUSD formats a dollar amount, e.g. 1234.5 -> "US$1,234.50".
func FormatUSD(d decimal.Decimal) string {
	return withSign(d, "US$", "#,###.", "#,###.##")
}

func withSign(d decimal.Decimal, symbol, intFormat, fracFormat string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	d = d.Round(2)
	format := intFormat
	if !d.IsInteger() {
		format = fracFormat
	}
	return sign + symbol + humanize.FormatFloat(format, d.InexactFloat64())
}

// FormatRate formats an exchange rate in pesos per dollar.
func FormatRate(d decimal.Decimal) string {
	return FormatCOP(d)
}

// FormatPercent formats a 0-100 percentage.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the change from previous to current in pesos.
func FormatDelta(current, previous decimal.Decimal) string {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return FormatCOP(delta)
	}
	return "+" + FormatCOP(delta)
}

// MonthName returns the Spanish name of a zero-based month.
func MonthName(month int) string {
	if month < 0 || month > 11 {
		return "???"
	}
	return monthNames[month]
}

// ShortMonth returns the three-letter Spanish abbreviation of a zero-based month.
func ShortMonth(month int) string {
	name := MonthName(month)
	if len(name) < 3 {
		return name
	}
	return name[:3]
}

// FormatPeriod renders a period as "Junio 2024".
func FormatPeriod(p model.Period) string {
	return fmt.Sprintf("%s %d", MonthName(p.Month), p.Year)
}

// ShortID truncates a record id for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Dash renders an empty value.
func Dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
