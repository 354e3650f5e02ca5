package conv

import (
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Char is a single character field; it converts a one-rune token.
type Char rune

var (
	stringType  = reflect.TypeOf("")
	boolType    = reflect.TypeOf(true)
	intType     = reflect.TypeOf(0)
	int8Type    = reflect.TypeOf(int8(0))
	int16Type   = reflect.TypeOf(int16(0))
	int32Type   = reflect.TypeOf(int32(0))
	int64Type   = reflect.TypeOf(int64(0))
	uintType    = reflect.TypeOf(uint(0))
	uint8Type   = reflect.TypeOf(uint8(0))
	uint16Type  = reflect.TypeOf(uint16(0))
	uint32Type  = reflect.TypeOf(uint32(0))
	uint64Type  = reflect.TypeOf(uint64(0))
	float32Type = reflect.TypeOf(float32(0))
	float64Type = reflect.TypeOf(float64(0))
	charType    = reflect.TypeOf(Char(0))
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
)

func registerBuiltins(r *Registry) {
	r.Register(Text, stringType, stringFactory)
	r.Register(Text, boolType, boolFactory)
	r.Register(Text, intType, intFactory(intType, strconv.IntSize, func(n int64) interface{} { return int(n) }))
	r.Register(Text, int8Type, intFactory(int8Type, 8, func(n int64) interface{} { return int8(n) }))
	r.Register(Text, int16Type, intFactory(int16Type, 16, func(n int64) interface{} { return int16(n) }))
	r.Register(Text, int32Type, intFactory(int32Type, 32, func(n int64) interface{} { return int32(n) }))
	r.Register(Text, int64Type, intFactory(int64Type, 64, func(n int64) interface{} { return n }))
	r.Register(Text, uintType, uintFactory(uintType, strconv.IntSize, func(n uint64) interface{} { return uint(n) }))
	r.Register(Text, uint8Type, uintFactory(uint8Type, 8, func(n uint64) interface{} { return uint8(n) }))
	r.Register(Text, uint16Type, uintFactory(uint16Type, 16, func(n uint64) interface{} { return uint16(n) }))
	r.Register(Text, uint32Type, uintFactory(uint32Type, 32, func(n uint64) interface{} { return uint32(n) }))
	r.Register(Text, uint64Type, uintFactory(uint64Type, 64, func(n uint64) interface{} { return n }))
	r.Register(Text, float32Type, float32Factory)
	r.Register(Text, float64Type, float64Factory)
	r.Register(Text, charType, charFactory)
	r.Register(Text, timeType, timeFactory)
	r.Register(Text, decimalType, decimalFactory)
	r.Register(Text, uuidType, uuidFactory)
	r.Register(Text, enumTarget, r.enumFactory)
}

func stringFactory(target reflect.Type, opts *Options) (Converter, error) {
	return func(token string) (interface{}, error) {
		return strings.Clone(token), nil
	}, nil
}

func boolFactory(target reflect.Type, opts *Options) (Converter, error) {
	return func(token string) (interface{}, error) {
		value, err := strconv.ParseBool(token)
		if err != nil {
			return nil, NewError(token, boolType, err)
		}
		return value, nil
	}, nil
}

func intFactory(target reflect.Type, bitSize int, box func(int64) interface{}) Factory {
	return func(_ reflect.Type, opts *Options) (Converter, error) {
		locale := opts.locale()
		return func(token string) (interface{}, error) {
			value, err := locale.ParseInt(token, bitSize)
			if err != nil {
				return nil, NewError(token, target, err)
			}
			return box(value), nil
		}, nil
	}
}

func uintFactory(target reflect.Type, bitSize int, box func(uint64) interface{}) Factory {
	return func(_ reflect.Type, opts *Options) (Converter, error) {
		locale := opts.locale()
		return func(token string) (interface{}, error) {
			value, err := locale.ParseUint(token, bitSize)
			if err != nil {
				return nil, NewError(token, target, err)
			}
			return box(value), nil
		}, nil
	}
}

func float32Factory(target reflect.Type, opts *Options) (Converter, error) {
	locale := opts.locale()
	return func(token string) (interface{}, error) {
		value, err := locale.ParseFloat(token, 32)
		if err != nil {
			return nil, NewError(token, float32Type, err)
		}
		return float32(value), nil
	}, nil
}

func float64Factory(target reflect.Type, opts *Options) (Converter, error) {
	locale := opts.locale()
	return func(token string) (interface{}, error) {
		value, err := locale.ParseFloat(token, 64)
		if err != nil {
			return nil, NewError(token, float64Type, err)
		}
		return value, nil
	}, nil
}

func charFactory(target reflect.Type, opts *Options) (Converter, error) {
	return func(token string) (interface{}, error) {
		value, size := utf8.DecodeRuneInString(token)
		if size == 0 || size != len(token) || value == utf8.RuneError && size == 1 {
			return nil, NewError(token, charType, nil)
		}
		return Char(value), nil
	}, nil
}

func timeFactory(target reflect.Type, opts *Options) (Converter, error) {
	locale := opts.locale()
	layout := opts.timeLayout()
	return func(token string) (interface{}, error) {
		value, err := locale.ParseTime(layout, token)
		if err != nil {
			return nil, NewError(token, timeType, err)
		}
		return value, nil
	}, nil
}

func decimalFactory(target reflect.Type, opts *Options) (Converter, error) {
	locale := opts.locale()
	return func(token string) (interface{}, error) {
		value, err := locale.ParseDecimal(token)
		if err != nil {
			return nil, NewError(token, decimalType, err)
		}
		return value, nil
	}, nil
}

func uuidFactory(target reflect.Type, opts *Options) (Converter, error) {
	return func(token string) (interface{}, error) {
		value, err := uuid.Parse(token)
		if err != nil {
			return nil, NewError(token, uuidType, err)
		}
		return value, nil
	}, nil
}
