package conv

import (
	"reflect"
	"strconv"
	"strings"
)

// Integer constrains enum registration to the integer kinds Go enums use.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// enumSet holds the declared members of one enum type; names are matched
// case-insensitively.
type enumSet struct {
	byName map[string]uint64
}

// RegisterEnum associates the declared member names of enum type E with the
// registry. An enum type with no registered members still converts through
// its numeric representation.
func RegisterEnum[E Integer](r *Registry, members map[string]E) {
	rType := reflect.TypeOf((*E)(nil)).Elem()
	set := &enumSet{byName: make(map[string]uint64, len(members))}
	for name, member := range members {
		rValue := reflect.ValueOf(member)
		var raw uint64
		if isSigned(rValue.Kind()) {
			raw = uint64(rValue.Int())
		} else {
			raw = rValue.Uint()
		}
		set.byName[strings.ToLower(name)] = raw
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	r.enums[rType] = set
}

// enumFactory builds the converter shared by all enum types: a
// case-insensitive member name match, then the underlying integer
// representation, accepting values no member declares.
func (r *Registry) enumFactory(target reflect.Type, opts *Options) (Converter, error) {
	set := r.enumSet(target)
	signed := isSigned(target.Kind())
	bitSize := target.Bits()
	return func(token string) (interface{}, error) {
		if set != nil {
			if raw, ok := set.byName[strings.ToLower(token)]; ok {
				return enumValue(target, raw, signed), nil
			}
		}
		if signed {
			value, err := strconv.ParseInt(token, 10, bitSize)
			if err != nil {
				return nil, NewError(token, target, nil)
			}
			return enumValue(target, uint64(value), signed), nil
		}
		value, err := strconv.ParseUint(token, 10, bitSize)
		if err != nil {
			return nil, NewError(token, target, nil)
		}
		return enumValue(target, value, signed), nil
	}, nil
}

func enumValue(target reflect.Type, raw uint64, signed bool) interface{} {
	rValue := reflect.New(target).Elem()
	if signed {
		rValue.SetInt(int64(raw))
	} else {
		rValue.SetUint(raw)
	}
	return rValue.Interface()
}

func isSigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
