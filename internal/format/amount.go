// Package format renders monetary amounts and dates into the display
// strings the presentation layer shows. Every function is pure: it takes
// a preferences snapshot and returns a string, holding no state.
package format

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rribeiro1/spendless/internal/core"
)

// Amount renders an amount under the user's separator, currency and
// expense-sign conventions.
//
// The magnitude is always rendered with exactly two fraction digits and
// standard 3-digit grouping. Negative amounts are decorated per the
// expense format: a leading minus before the currency symbol, or the
// whole string wrapped in parentheses. Identical decimal and thousands
// separators are rendered literally; the combination is ambiguous to
// read but intentionally not rejected.
func Amount(amount decimal.Decimal, prefs core.FormattingPreferences) string {
	s := magnitude(amount, prefs)
	if amount.Sign() >= 0 {
		return s
	}
	if prefs.ExpenseFormat == core.ExpenseParentheses {
		return "(" + s + ")"
	}
	return "-" + s
}

// AmountOnly renders the magnitude plus currency symbol with no sign
// decoration, for callers that add their own indicator (color coding).
func AmountOnly(amount decimal.Decimal, prefs core.FormattingPreferences) string {
	return magnitude(amount, prefs)
}

func magnitude(amount decimal.Decimal, prefs core.FormattingPreferences) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(prefs.Currency.Symbol())
	b.WriteString(group(intPart, prefs.ThousandsSeparator.Rune()))
	b.WriteRune(prefs.DecimalSeparator.Rune())
	b.WriteString(fracPart)
	return b.String()
}

// group inserts sep every three digits counting from the right.
func group(digits string, sep rune) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteRune(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
