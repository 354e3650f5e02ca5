package conv

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/flatly/format"
)

// Kind identifies the source representation a converter consumes.
type Kind int

const (
	// Text is the representation produced by the line tokenizer; every
	// built-in entry is registered under it.
	Text Kind = iota
)

type (
	// Converter parses a raw token into a value assignable to the target
	// type it was built for.
	Converter func(token string) (interface{}, error)

	// Factory builds a Converter for a concrete target type. The factory is
	// invoked once per field at plan compilation, never per record.
	Factory func(target reflect.Type, opts *Options) (Converter, error)

	// Options carries plan construction parameters a factory may close over.
	Options struct {
		Locale     *format.Locale
		TimeLayout string
	}

	key struct {
		source Kind
		target reflect.Type
	}

	// Registry maps (source representation, target type) to a converter
	// factory. Lookup strips one pointer level and folds every named
	// integer type without an exact entry into the generic enum entry.
	Registry struct {
		mux     sync.RWMutex
		entries map[key]Factory
		enums   map[reflect.Type]*enumSet
	}
)

// enumKey is the canonical target all enum types normalize to
type enumKey struct{}

var enumTarget = reflect.TypeOf(enumKey{})

func (o *Options) locale() *format.Locale {
	if o == nil || o.Locale == nil {
		return format.Invariant
	}
	return o.Locale
}

func (o *Options) timeLayout() string {
	if o == nil {
		return ""
	}
	return o.TimeLayout
}

// Register adds a factory for the supplied source representation and target
// type. Registration is an explicit one-time extension call; it has to
// happen before any plan depending on the entry is compiled.
func (r *Registry) Register(source Kind, target reflect.Type, factory Factory) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.entries[key{source: source, target: target}] = factory
}

func (r *Registry) factory(k key) (Factory, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	factory, ok := r.entries[k]
	return factory, ok
}

func (r *Registry) enumSet(target reflect.Type) *enumSet {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.enums[target]
}

// Lookup returns the factory for the supplied source representation and
// target type. The target is normalized: a pointer target resolves to its
// element entry, and a named integer type with no exact entry resolves to
// the generic enum entry.
func (r *Registry) Lookup(source Kind, target reflect.Type) (Factory, bool) {
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if factory, ok := r.factory(key{source: source, target: target}); ok {
		return factory, true
	}
	if isEnumType(target) {
		factory, ok := r.factory(key{source: source, target: enumTarget})
		if !ok {
			return nil, false
		}
		concrete := target
		return func(t reflect.Type, opts *Options) (Converter, error) {
			return factory(concrete, opts)
		}, true
	}
	return nil, false
}

// New builds a converter for the supplied target type, falling back to the
// generic representation change when no entry matches.
func (r *Registry) New(source Kind, target reflect.Type, opts *Options) (Converter, error) {
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if factory, ok := r.Lookup(source, target); ok {
		return factory(target, opts)
	}
	return Fallback(target, opts)
}

// isEnumType reports whether target is a user defined integer type, the
// shape Go enums take.
func isEnumType(target reflect.Type) bool {
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return target.PkgPath() != ""
	}
	return false
}

// NewRegistry creates an empty registry, without the built-in entries.
func NewRegistry() *Registry {
	return &Registry{entries: map[key]Factory{}, enums: map[reflect.Type]*enumSet{}}
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	ret := NewRegistry()
	registerBuiltins(ret)
	return ret
}

// Default returns the process-wide registry, seeded with the built-in
// entries at package initialization and read-only afterwards apart from
// explicit extension calls.
func Default() *Registry {
	return defaultRegistry
}

// Error reports a token that could not be converted to its target type.
type Error struct {
	Token  string
	Target reflect.Type
	cause  error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("unable to convert %q to %s", e.Token, e.Target)
	}
	return fmt.Sprintf("unable to convert %q to %s: %v", e.Token, e.Target, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a conversion error for the supplied token and target type.
func NewError(token string, target reflect.Type, cause error) *Error {
	return &Error{Token: token, Target: target, cause: cause}
}
