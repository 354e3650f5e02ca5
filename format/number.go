package format

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NormalizeNumber rewrites a localized numeric token into the form strconv
// accepts: grouping separators and space variants are removed, the locale
// decimal point becomes '.'. The input token is returned unchanged when no
// rewrite is needed.
func (l *Locale) NormalizeNumber(token string) string {
	changed := false
	for _, r := range token {
		if r == l.GroupSep || r == l.DecimalSep && l.DecimalSep != '.' || isGroupingSpace(r) {
			changed = true
			break
		}
	}
	if !changed {
		return token
	}
	var builder strings.Builder
	builder.Grow(len(token))
	for _, r := range token {
		switch {
		case r == l.DecimalSep:
			builder.WriteByte('.')
		case r == l.GroupSep, isGroupingSpace(r):
		default:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// grouping separators vary across CLDR releases, some locales use a regular,
// non-breaking or narrow non-breaking space
func isGroupingSpace(r rune) bool {
	return r == ' ' || r == ' ' || r == ' '
}

// ParseFloat parses a localized floating point token, grouping separators
// and a locale decimal point are allowed.
func (l *Locale) ParseFloat(token string, bitSize int) (float64, error) {
	return strconv.ParseFloat(l.NormalizeNumber(token), bitSize)
}

// ParseInt parses a signed integer token, digits and sign only.
func (l *Locale) ParseInt(token string, bitSize int) (int64, error) {
	return strconv.ParseInt(token, 10, bitSize)
}

// ParseUint parses an unsigned integer token, digits only.
func (l *Locale) ParseUint(token string, bitSize int) (uint64, error) {
	return strconv.ParseUint(token, 10, bitSize)
}

// ParseDecimal parses a localized high precision decimal token.
func (l *Locale) ParseDecimal(token string) (decimal.Decimal, error) {
	return decimal.NewFromString(l.NormalizeNumber(token))
}

// FormatFloat renders value with the locale grouping and decimal symbols.
func (l *Locale) FormatFloat(value float64) string {
	p := message.NewPrinter(l.Tag)
	return p.Sprintf("%v", number.Decimal(value))
}

// FormatDecimal renders a decimal with the locale decimal point, without
// grouping, so that ParseDecimal round-trips it exactly.
func (l *Locale) FormatDecimal(value decimal.Decimal) string {
	text := value.String()
	if l.DecimalSep == '.' {
		return text
	}
	return strings.Replace(text, ".", string(l.DecimalSep), 1)
}
