package conv

import (
	"net"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/viant/flatly/format"
)

func TestRegistry_Builtins(t *testing.T) {
	var testCases = []struct {
		description string
		target      reflect.Type
		options     *Options
		token       string
		expect      interface{}
		hasError    bool
	}{
		{
			description: "string identity",
			target:      stringType,
			token:       "foo bar baz",
			expect:      "foo bar baz",
		},
		{
			description: "bool",
			target:      boolType,
			token:       "true",
			expect:      true,
		},
		{
			description: "int",
			target:      intType,
			token:       "-42",
			expect:      -42,
		},
		{
			description: "int rejects grouping",
			target:      intType,
			token:       "1,234",
			hasError:    true,
		},
		{
			description: "int16 overflow",
			target:      int16Type,
			token:       "70000",
			hasError:    true,
		},
		{
			description: "uint8",
			target:      uint8Type,
			token:       "255",
			expect:      uint8(255),
		},
		{
			description: "float64 leading zeros",
			target:      float64Type,
			token:       "0123.45",
			expect:      123.45,
		},
		{
			description: "float64 german locale",
			target:      float64Type,
			options:     &Options{Locale: format.DeDE},
			token:       "1.234,5",
			expect:      1234.5,
		},
		{
			description: "float32",
			target:      float32Type,
			token:       "2.5",
			expect:      float32(2.5),
		},
		{
			description: "decimal",
			target:      decimalType,
			token:       "123.45",
			expect:      decimal.RequireFromString("123.45"),
		},
		{
			description: "char",
			target:      charType,
			token:       "x",
			expect:      Char('x'),
		},
		{
			description: "char rejects multi rune",
			target:      charType,
			token:       "xy",
			hasError:    true,
		},
		{
			description: "uuid",
			target:      uuidType,
			token:       "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			expect:      uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		},
		{
			description: "time with explicit layout",
			target:      timeType,
			options:     &Options{TimeLayout: "2006-01-02"},
			token:       "2020-05-23",
			expect:      time.Date(2020, 5, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "time invariant dotted",
			target:      timeType,
			token:       "2020.05.23",
			expect:      time.Date(2020, 5, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "nullable target resolves element entry",
			target:      reflect.TypeOf((*int)(nil)),
			token:       "7",
			expect:      7,
		},
	}

	registry := Default()
	for _, testCase := range testCases {
		converter, err := registry.New(Text, testCase.target, testCase.options)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		actual, err := converter(testCase.token)
		if testCase.hasError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		switch expect := testCase.expect.(type) {
		case decimal.Decimal:
			assert.True(t, expect.Equal(actual.(decimal.Decimal)), testCase.description)
		case time.Time:
			assert.True(t, expect.Equal(actual.(time.Time)), testCase.description)
		default:
			assert.EqualValues(t, testCase.expect, actual, testCase.description)
		}
	}
}

func TestRegistry_Extension(t *testing.T) {
	registry := NewRegistry()
	registerBuiltins(registry)
	type yesNo bool
	yesNoType := reflect.TypeOf(yesNo(false))
	registry.Register(Text, yesNoType, func(target reflect.Type, opts *Options) (Converter, error) {
		return func(token string) (interface{}, error) {
			return yesNo(strings.EqualFold(token, "y")), nil
		}, nil
	})

	converter, err := registry.New(Text, yesNoType, nil)
	assert.Nil(t, err)
	actual, err := converter("Y")
	assert.Nil(t, err)
	assert.EqualValues(t, yesNo(true), actual)
}

func TestRegistry_ConcurrentLookup(t *testing.T) {
	registry := NewRegistry()
	registerBuiltins(registry)
	RegisterEnum(registry, map[string]color{"Black": black})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			converter, err := registry.New(Text, intType, nil)
			assert.Nil(t, err)
			actual, err := converter("7")
			assert.Nil(t, err)
			assert.EqualValues(t, 7, actual)

			enumConverter, err := registry.New(Text, reflect.TypeOf(color(0)), nil)
			assert.Nil(t, err)
			member, err := enumConverter("black")
			assert.Nil(t, err)
			assert.EqualValues(t, black, member)
		}()
	}
	wg.Wait()
}

func TestRegistry_ExactEntryBeatsEnumFold(t *testing.T) {
	registry := NewRegistry()
	registerBuiltins(registry)
	type level int
	levelType := reflect.TypeOf(level(0))
	registry.Register(Text, levelType, func(target reflect.Type, opts *Options) (Converter, error) {
		return func(token string) (interface{}, error) {
			return level(len(token)), nil
		}, nil
	})
	converter, err := registry.New(Text, levelType, nil)
	assert.Nil(t, err)
	actual, err := converter("high")
	assert.Nil(t, err)
	assert.EqualValues(t, level(4), actual)
}

func TestFallback(t *testing.T) {
	type label string
	type ratio float64

	var testCases = []struct {
		description string
		target      reflect.Type
		token       string
		expect      interface{}
		hasError    bool
	}{
		{
			description: "text unmarshaler",
			target:      reflect.TypeOf(net.IP{}),
			token:       "127.0.0.1",
			expect:      net.ParseIP("127.0.0.1"),
		},
		{
			description: "named string",
			target:      reflect.TypeOf(label("")),
			token:       "abc",
			expect:      label("abc"),
		},
		{
			description: "named float",
			target:      reflect.TypeOf(ratio(0)),
			token:       "0.5",
			expect:      ratio(0.5),
		},
	}
	for _, testCase := range testCases {
		converter, err := Fallback(testCase.target, nil)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		actual, err := converter(testCase.token)
		if testCase.hasError {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestFallback_Unsupported(t *testing.T) {
	type nested struct{ A int }
	_, err := Fallback(reflect.TypeOf(nested{}), nil)
	assert.NotNil(t, err)
}
