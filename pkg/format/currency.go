// Package format renders monetary amounts for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "CN¥",
	"INR": "₹",
	"IDR": "Rp",
	"TRY": "₺",
	"VND": "₫",
}

// Formatter renders amounts for a locale and currency.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a formatter for a BCP 47 locale (e.g. "en-US") and an
// ISO 4217 currency code (e.g. "USD"). Empty values fall back to defaults.
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	if strings.TrimSpace(locale) == "" {
		locale = constants.DefaultLocale
	}
	if strings.TrimSpace(currencyCode) == "" {
		currencyCode = constants.DefaultCurrency
	}

	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(currencyCode)))
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}

	symbol, ok := symbols[unit.String()]
	if !ok {
		symbol = unit.String() + " "
	}

	return &Formatter{
		tag:     tag,
		unit:    unit,
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}, nil
}

// Default returns the en-US / USD formatter. It panics if those built-in
// defaults fail to parse.
func Default() *Formatter {
	f, err := NewFormatter(constants.DefaultLocale, constants.DefaultCurrency)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// CurrencyCode returns the ISO 4217 code.
func (f *Formatter) CurrencyCode() string {
	return f.unit.String()
}

// Amount renders the value with the currency symbol, locale grouping and two
// decimals, e.g. "-$1,234.56".
func (f *Formatter) Amount(amount float64) string {
	formatted := f.printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 && formatted != f.printer.Sprintf("%.2f", 0.0) {
		return "-" + f.symbol + formatted
	}
	return f.symbol + formatted
}

// Number renders the value with locale grouping and two decimals but no
// currency symbol.
func (f *Formatter) Number(amount float64) string {
	return f.printer.Sprintf("%.2f", amount)
}
