package flatly

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// Setter assigns a converted value into a leaf field of the holder struct,
// applying a representation-preserving coercion when the value type differs
// from the field type.
type Setter func(value interface{}, field *xunsafe.Field, holder unsafe.Pointer) error

// assignValue writes value into field, coercing numeric representations as
// needed. The exact-type case is the hot path; custom converters that return
// a different representation go through the kind table.
func assignValue(value interface{}, field *xunsafe.Field, holder unsafe.Pointer) error {
	srcType := reflect.TypeOf(value)
	if srcType == field.Type {
		field.SetValue(holder, value)
		return nil
	}
	return coerceValue(value, srcType, field.Type, func(coerced interface{}) {
		field.SetValue(holder, coerced)
	})
}

// assignPtrValue writes value behind the field's pointer type, coercing to
// the element representation first.
func assignPtrValue(value interface{}, field *xunsafe.Field, holder unsafe.Pointer) error {
	elemType := field.Type.Elem()
	srcType := reflect.TypeOf(value)
	if srcType == elemType {
		ptrValue := reflect.New(elemType)
		ptrValue.Elem().Set(reflect.ValueOf(value))
		field.SetValue(holder, ptrValue.Interface())
		return nil
	}
	return coerceValue(value, srcType, elemType, func(coerced interface{}) {
		ptrValue := reflect.New(elemType)
		ptrValue.Elem().Set(reflect.ValueOf(coerced))
		field.SetValue(holder, ptrValue.Interface())
	})
}

func coerceValue(value interface{}, srcType, destType reflect.Type, apply func(interface{})) error {
	if srcType == nil {
		return fmt.Errorf("converter produced no value for %s", destType)
	}
	if srcType.ConvertibleTo(destType) && representationPreserving(srcType.Kind(), destType.Kind()) {
		apply(reflect.ValueOf(value).Convert(destType).Interface())
		return nil
	}
	if srcType.AssignableTo(destType) {
		apply(value)
		return nil
	}
	return fmt.Errorf("converter produced %s, field requires %s", srcType, destType)
}

// representationPreserving admits numeric promotions and named-type
// renamings while rejecting lossy cross-representation conversions such as
// string<->int that reflect would reinterpret.
func representationPreserving(src, dest reflect.Kind) bool {
	if src == dest {
		return true
	}
	return isNumericKind(src) && isNumericKind(dest)
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
