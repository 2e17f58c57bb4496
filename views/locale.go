package views

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultFractionDigits keeps enough precision for latitude/longitude.
const DefaultFractionDigits = 9

// NumberFormat renders decimals with the locale's decimal separator and no
// grouping, so exported values never contain the CSV delimiter.
type NumberFormat struct {
	printer *message.Printer
	digits  int
}

// NewNumberFormat builds a formatter for a BCP 47 locale ("en", "de-CH").
// Unparseable locales fall back to English.
func NewNumberFormat(locale string, fractionDigits int) NumberFormat {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if fractionDigits <= 0 {
		fractionDigits = DefaultFractionDigits
	}
	return NumberFormat{printer: message.NewPrinter(tag), digits: fractionDigits}
}

// Decimal implements models.Formatter.
func (n NumberFormat) Decimal(v float64) string {
	p := n.printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	digits := n.digits
	if digits <= 0 {
		digits = DefaultFractionDigits
	}
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(digits), number.NoSeparator()))
}
