package format

import (
	"golang.org/x/text/language"
)

// Locale carries the symbols a plan needs to parse and format localized
// values: decimal point, grouping separator and the default date layout.
// A Locale is immutable once published; plans capture it at compile time.
type Locale struct {
	Tag        language.Tag
	DecimalSep rune
	GroupSep   rune
	DateLayout string
}

var (
	// Invariant uses a dot decimal point, coma grouping and ISO dates,
	// independent of any runtime locale configuration.
	Invariant = &Locale{Tag: language.Und, DecimalSep: '.', GroupSep: ',', DateLayout: "2006-01-02"}

	EnUS = &Locale{Tag: language.AmericanEnglish, DecimalSep: '.', GroupSep: ',', DateLayout: "1/2/2006"}
	DeDE = &Locale{Tag: language.German, DecimalSep: ',', GroupSep: '.', DateLayout: "02.01.2006"}
	FrFR = &Locale{Tag: language.French, DecimalSep: ',', GroupSep: ' ', DateLayout: "02/01/2006"}
	PlPL = &Locale{Tag: language.Polish, DecimalSep: ',', GroupSep: ' ', DateLayout: "02.01.2006"}
	SvSE = &Locale{Tag: language.Swedish, DecimalSep: ',', GroupSep: ' ', DateLayout: "2006-01-02"}
)
