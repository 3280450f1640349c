package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted as JSON numbers so documents stay readable by
	// the browser version of the app.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount converts user-entered numeric text into an amount.
// Surrounding spaces and a leading "$" are ignored and a single decimal
// comma is accepted. Exponent notation and text that still does not parse
// yield zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
