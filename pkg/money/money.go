// Package money provides precise monetary parsing and locale-aware formatting
// for statement amounts. Arithmetic runs on shopspring/decimal; rendering uses
// go-money formatters so grouping and decimal separators follow the target
// locale instead of hand-rolled string surgery.
package money

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/fatura-engine/pkg/textutil"
)

// Locale selects the output rendering convention. Internal values are always
// plain decimals; locale applies only at the presentation edge.
type Locale string

const (
	LocaleEnUS Locale = "en-us" // 1234.56, dates MM/DD/YY
	LocalePtBR Locale = "pt-br" // 1.234,56, dates DD/MM/YY
)

// ParseLocale validates a locale string from config or CLI input.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleEnUS:
		return LocaleEnUS, nil
	case LocalePtBR:
		return LocalePtBR, nil
	}
	return "", fmt.Errorf("unknown locale %q (expected en-us or pt-br)", s)
}

// formatters render minor units per locale. Grapheme is empty: amounts in the
// ledger carry no currency symbol.
var formatters = map[Locale]*money.Formatter{
	LocalePtBR: money.NewFormatter(2, ",", ".", "", "1"),
	LocaleEnUS: money.NewFormatter(2, ".", "", "", "1"),
}

// Parse converts a statement amount string into a decimal. It accepts both
// Brazilian ("1.234,56") and plain ("1234.56") notations: when both separators
// are present, whichever occurs later is the decimal separator; a lone comma
// is always decimal. Whitespace anywhere in the string is ignored, including
// between a leading minus and the digits ("- 150,00").
func Parse(s string) (decimal.Decimal, error) {
	cleaned := textutil.StripSpace(s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	dot := strings.LastIndex(cleaned, ".")
	comma := strings.LastIndex(cleaned, ",")
	switch {
	case comma >= 0 && comma > dot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case comma >= 0: // dot came later and is the decimal separator
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Format renders an amount for the given locale with two fraction digits.
// pt-br uses comma decimals with dot grouping; en-us uses dot decimals with
// no grouping, matching the canonical ledger format.
func Format(d decimal.Decimal, locale Locale) string {
	f, ok := formatters[locale]
	if !ok {
		f = formatters[LocaleEnUS]
	}
	return f.Format(Cents(d))
}

// Cents returns the amount in minor units, rounded to two decimal places.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}
