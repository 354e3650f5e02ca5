// Package flatly compiles declarative field mappings over delimited or
// fixed-width text records into reusable extraction plans: one line in, one
// populated record out, with converter and path resolution paid once per
// configuration instead of once per row.
package flatly

import (
	"reflect"

	"github.com/viant/flatly/conv"
	"github.com/viant/flatly/format"
)

// FieldMapping binds a target member path to a source position and an
// optional converter. An empty path reserves the position without producing
// a field.
type FieldMapping struct {
	//Path is the dotted target member path rooted at the record type
	Path string
	//Start is the field index in delimited mode, the byte offset in fixed-width mode
	Start int
	//Length is the extraction window size, fixed-width mode only
	Length int
	//Converter, when set, takes precedence over any registry lookup; it
	//receives the raw token and is responsible for any locale handling
	Converter conv.Converter
	//TimeLayout overrides the locale date layout for this field
	TimeLayout string
}

type options struct {
	delimiter  byte
	quote      byte
	fixedWidth bool
	locale     *format.Locale
	registry   *conv.Registry
	defaults   map[reflect.Type]conv.Converter
}

// Option customizes plan construction.
type Option func(o *options)

func newOptions(opts []Option) *options {
	result := &options{
		delimiter: ',',
		quote:     '"',
		locale:    format.Invariant,
		registry:  conv.Default(),
		defaults:  map[reflect.Type]conv.Converter{},
	}
	for _, opt := range opts {
		opt(result)
	}
	return result
}

// WithDelimiter sets the field delimiter, comma by default.
func WithDelimiter(delimiter byte) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithQuote sets the quote character, double quote by default.
func WithQuote(quote byte) Option {
	return func(o *options) {
		o.quote = quote
	}
}

// WithFixedWidth switches the plan to fixed-width extraction; mapping Start
// becomes a byte offset and Length is required.
func WithFixedWidth() Option {
	return func(o *options) {
		o.fixedWidth = true
	}
}

// WithLocale bakes the supplied locale into the compiled plan; it is not
// re-read per call.
func WithLocale(locale *format.Locale) Option {
	return func(o *options) {
		o.locale = locale
	}
}

// WithRegistry uses the supplied conversion registry instead of the process
// default.
func WithRegistry(registry *conv.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithTypeConverter registers a default converter for every field of the
// supplied type that lacks a field-level converter. A field-level converter
// always wins.
func WithTypeConverter(target reflect.Type, converter conv.Converter) Option {
	return func(o *options) {
		o.defaults[target] = converter
	}
}
