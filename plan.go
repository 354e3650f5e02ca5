package flatly

import (
	"reflect"
	"unsafe"

	"github.com/viant/flatly/conv"
	"github.com/viant/xunsafe"
)

type (
	// Plan is the compiled extraction routine for one mapping configuration:
	// an ordered sequence of (location, conversion) steps over the tokenizer
	// output. A plan is immutable after construction and holds no per-call
	// state, so it is safe to invoke concurrently on different lines.
	Plan struct {
		rType     reflect.Type
		steps     []*step
		fixed     bool
		columns   []column
		delimiter byte
		quote     byte
		limit     int
	}

	step struct {
		index    int
		path     string
		selector *Selector
		nullable bool
		convert  conv.Converter
		setter   Setter
	}
)

// Type returns the record struct type the plan populates.
func (p *Plan) Type() reflect.Type {
	return p.rType
}

// Parse tokenizes line and runs the compiled conversion/assignment steps,
// returning a pointer to a freshly allocated record. The first invalid
// field fails the call; errors are never swallowed here.
func (p *Plan) Parse(line string) (interface{}, error) {
	record := reflect.New(p.rType).Interface()
	if err := p.ParseInto(line, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ParseInto populates an existing record pointer instead of allocating one.
func (p *Plan) ParseInto(line string, record interface{}) error {
	return p.parseInto(line, xunsafe.AsPointer(record))
}

func (p *Plan) parseInto(line string, ptr unsafe.Pointer) error {
	var spans []Span
	if p.fixed {
		spans = splitFixed(line, p.columns, make([]Span, 0, len(p.columns)))
	} else {
		var err error
		spans, err = splitDelimited(line, p.delimiter, p.quote, p.limit, make([]Span, 0, p.limit))
		if err != nil {
			return err
		}
	}
	for _, aStep := range p.steps {
		if err := aStep.apply(ptr, line, spans); err != nil {
			return err
		}
	}
	return nil
}

// TryParse is the non-throwing variant of Parse: it never fails, returning
// (nil, false) on any tokenization, conversion or assignment problem,
// including panics raised by caller supplied converters.
func (p *Plan) TryParse(line string) (record interface{}, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			record, ok = nil, false
		}
	}()
	parsed, err := p.Parse(line)
	if err != nil {
		return nil, false
	}
	return parsed, true
}

func (s *step) apply(ptr unsafe.Pointer, line string, spans []Span) error {
	if s.index >= len(spans) {
		return recordError("missing field %v for %v", s.index, s.path)
	}
	span := spans[s.index]
	if s.nullable && span.IsBlank(line) {
		return nil //blank token is the absent value, the leaf stays nil
	}
	value, err := s.convert(span.Token(line))
	if err != nil {
		return &FieldError{Path: s.path, Err: err}
	}
	holder, field := s.selector.Upstream(ptr)
	if err := s.setter(value, field, holder); err != nil {
		return &FieldError{Path: s.path, Err: err}
	}
	return nil
}

// Parser binds a compiled plan to its concrete record type.
type Parser[T any] struct {
	plan *Plan
}

// NewParser compiles the supplied field mappings for record type T. T has
// to be the struct type itself; the parser addresses the record value
// directly, so a pointer type parameter is a configuration error.
func NewParser[T any](fields []*FieldMapping, opts ...Option) (*Parser[T], error) {
	rType := reflect.TypeOf((*T)(nil)).Elem()
	if rType.Kind() == reflect.Ptr {
		return nil, configError("", "record type has to be a struct, use %s instead of %s", rType.Elem(), rType)
	}
	plan, err := New(rType, fields, opts...)
	if err != nil {
		return nil, err
	}
	return &Parser[T]{plan: plan}, nil
}

// Plan returns the underlying compiled plan.
func (p *Parser[T]) Plan() *Plan {
	return p.plan
}

// Parse converts one record line into a populated T; on failure it returns
// the zero value and the first field error.
func (p *Parser[T]) Parse(line string) (T, error) {
	var record T
	if err := p.plan.parseInto(line, unsafe.Pointer(&record)); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// TryParse never fails: it returns the zero value and false on any failure.
func (p *Parser[T]) TryParse(line string) (record T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			record, ok = zero, false
		}
	}()
	parsed, err := p.Parse(line)
	if err != nil {
		var zero T
		return zero, false
	}
	return parsed, true
}
