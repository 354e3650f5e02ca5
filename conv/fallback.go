package conv

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Fallback builds a generic representation change converter for types with
// no registry entry: encoding.TextUnmarshaler when the target implements it,
// otherwise a locale-aware parse by reflect kind. The returned converter may
// fail per token; Fallback itself fails only for types it cannot attempt.
func Fallback(target reflect.Type, opts *Options) (Converter, error) {
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if reflect.PtrTo(target).Implements(textUnmarshalerType) {
		return func(token string) (interface{}, error) {
			rValue := reflect.New(target)
			if err := rValue.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(token)); err != nil {
				return nil, NewError(token, target, err)
			}
			return rValue.Elem().Interface(), nil
		}, nil
	}
	locale := opts.locale()
	switch target.Kind() {
	case reflect.String:
		return func(token string) (interface{}, error) {
			rValue := reflect.New(target).Elem()
			rValue.SetString(strings.Clone(token))
			return rValue.Interface(), nil
		}, nil
	case reflect.Bool:
		return func(token string) (interface{}, error) {
			parsed, err := strconv.ParseBool(token)
			if err != nil {
				return nil, NewError(token, target, err)
			}
			rValue := reflect.New(target).Elem()
			rValue.SetBool(parsed)
			return rValue.Interface(), nil
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bitSize := target.Bits()
		return func(token string) (interface{}, error) {
			parsed, err := locale.ParseInt(token, bitSize)
			if err != nil {
				return nil, NewError(token, target, err)
			}
			rValue := reflect.New(target).Elem()
			rValue.SetInt(parsed)
			return rValue.Interface(), nil
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bitSize := target.Bits()
		return func(token string) (interface{}, error) {
			parsed, err := locale.ParseUint(token, bitSize)
			if err != nil {
				return nil, NewError(token, target, err)
			}
			rValue := reflect.New(target).Elem()
			rValue.SetUint(parsed)
			return rValue.Interface(), nil
		}, nil
	case reflect.Float32, reflect.Float64:
		bitSize := target.Bits()
		return func(token string) (interface{}, error) {
			parsed, err := locale.ParseFloat(token, bitSize)
			if err != nil {
				return nil, NewError(token, target, err)
			}
			rValue := reflect.New(target).Elem()
			rValue.SetFloat(parsed)
			return rValue.Interface(), nil
		}, nil
	}
	return nil, fmt.Errorf("no converter for type %s", target)
}
