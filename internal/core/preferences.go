package core

import (
	"strings"
	"time"
)

type (
	DecimalSeparator   string
	ThousandsSeparator string
	Currency           string
	ExpenseFormat      string
)

const (
	DecimalDot   DecimalSeparator = "dot"
	DecimalComma DecimalSeparator = "comma"
)

const (
	ThousandsDot   ThousandsSeparator = "dot"
	ThousandsComma ThousandsSeparator = "comma"
	ThousandsSpace ThousandsSeparator = "space"
)

const (
	CurrencyDollar        Currency = "usd"
	CurrencyEuro          Currency = "eur"
	CurrencyPound         Currency = "gbp"
	CurrencyYen           Currency = "jpy"
	CurrencySwissFranc    Currency = "chf"
	CurrencyCanadian      Currency = "cad"
	CurrencyAustralian    Currency = "aud"
	CurrencyRupee         Currency = "inr"
	CurrencyReal          Currency = "brl"
	CurrencySouthAfrican  Currency = "zar"
)

const (
	ExpenseNegative    ExpenseFormat = "negative"    // -$10
	ExpenseParentheses ExpenseFormat = "parentheses" // ($10)
)

// FormattingPreferences is an immutable snapshot of the user's display
// conventions. Pure functions take a fresh snapshot on every call; the
// core holds no mutable preference state.
type FormattingPreferences struct {
	DecimalSeparator   DecimalSeparator
	ThousandsSeparator ThousandsSeparator
	Currency           Currency
	ExpenseFormat      ExpenseFormat
}

// SessionPreferences carries the security-related settings stored next
// to formatting preferences.
type SessionPreferences struct {
	SessionExpiry   time.Duration
	LockoutDuration time.Duration
}

// DefaultFormattingPreferences are the documented fallbacks applied when
// a stored preference name cannot be recognized.
func DefaultFormattingPreferences() FormattingPreferences {
	return FormattingPreferences{
		DecimalSeparator:   DecimalDot,
		ThousandsSeparator: ThousandsComma,
		Currency:           CurrencyDollar,
		ExpenseFormat:      ExpenseNegative,
	}
}

// Rune returns the character used for the fraction separator.
func (d DecimalSeparator) Rune() rune {
	if d == DecimalComma {
		return ','
	}
	return '.'
}

// Rune returns the character used for 3-digit grouping.
func (t ThousandsSeparator) Rune() rune {
	switch t {
	case ThousandsDot:
		return '.'
	case ThousandsSpace:
		return ' '
	default:
		return ','
	}
}

// Symbol returns the display symbol prepended to formatted amounts.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyEuro:
		return "€"
	case CurrencyPound:
		return "£"
	case CurrencyYen:
		return "¥"
	case CurrencySwissFranc:
		return "CHF"
	case CurrencyCanadian:
		return "C$"
	case CurrencyAustralian:
		return "A$"
	case CurrencyRupee:
		return "₹"
	case CurrencyReal:
		return "R$"
	case CurrencySouthAfrican:
		return "R"
	default:
		return "$"
	}
}

// The Parse functions below recover from corrupted stored names by
// returning the documented default instead of failing. Preferences are
// best-effort display state, never worth aborting a render for.

func ParseDecimalSeparator(s string) DecimalSeparator {
	switch DecimalSeparator(strings.ToLower(s)) {
	case DecimalDot, DecimalComma:
		return DecimalSeparator(strings.ToLower(s))
	default:
		return DecimalDot
	}
}

func ParseThousandsSeparator(s string) ThousandsSeparator {
	switch ThousandsSeparator(strings.ToLower(s)) {
	case ThousandsDot, ThousandsComma, ThousandsSpace:
		return ThousandsSeparator(strings.ToLower(s))
	default:
		return ThousandsComma
	}
}

func ParseCurrency(s string) Currency {
	switch Currency(strings.ToLower(s)) {
	case CurrencyDollar, CurrencyEuro, CurrencyPound, CurrencyYen,
		CurrencySwissFranc, CurrencyCanadian, CurrencyAustralian,
		CurrencyRupee, CurrencyReal, CurrencySouthAfrican:
		return Currency(strings.ToLower(s))
	default:
		return CurrencyDollar
	}
}

func ParseExpenseFormat(s string) ExpenseFormat {
	switch ExpenseFormat(strings.ToLower(s)) {
	case ExpenseNegative, ExpenseParentheses:
		return ExpenseFormat(strings.ToLower(s))
	default:
		return ExpenseNegative
	}
}
