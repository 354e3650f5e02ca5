package flatly

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// TagName defines the struct tag a tagged parser derives its mappings from:
// `flat:"0"`, `flat:"index=2,length=5"`, `flat:"index=1,layout={2006-01-02}"`,
// `flat:"-"` to ignore a member.
const TagName = "flat"

const (
	comaTerminatorToken = iota
	eqTerminatorToken
	scopeBlockToken
)

var (
	comaTerminatorMatcher = parsly.NewToken(comaTerminatorToken, "coma", matcher.NewTerminator(',', true))
	eqTerminatorMatcher   = parsly.NewToken(eqTerminatorToken, "eq", matcher.NewTerminator('=', true))
	scopeBlockMatcher     = parsly.NewToken(scopeBlockToken, "{ .... }", matcher.NewBlock('{', '}', '\\'))
)

type fieldTag struct {
	index    int
	hasIndex bool
	length   int
	layout   string
	ignore   bool
}

func (t *fieldTag) update(key, value string) error {
	if key == "" { //a bare value is the position index
		key = "index"
	}
	switch strings.ToLower(key) {
	case "index", "start":
		index, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		t.index = index
		t.hasIndex = true
	case "length":
		length, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		t.length = length
	case "layout", "timelayout":
		t.layout = value
	default:
		return fmt.Errorf("unsupported tag key: %v", key)
	}
	return nil
}

func parseFieldTag(encoded string) (*fieldTag, error) {
	ret := &fieldTag{}
	if encoded == "-" {
		ret.ignore = true
		return ret, nil
	}
	cursor := parsly.NewCursor("", []byte(encoded), 0)
	for cursor.Pos < len(cursor.Input) {
		key, value := matchPair(cursor)
		if key == "" && value == "" {
			break
		}
		if err := ret.update(key, value); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func matchPair(cursor *parsly.Cursor) (string, string) {
	key := ""
	value := ""
	var tokens = []*parsly.Token{scopeBlockMatcher}
	eqIndex := bytes.Index(cursor.Input[cursor.Pos:], []byte("="))
	comaIndex := bytes.Index(cursor.Input[cursor.Pos:], []byte(","))
	if eqIndex == -1 {
		tokens = append(tokens, comaTerminatorMatcher)
	} else if comaIndex == -1 || eqIndex < comaIndex {
		tokens = append(tokens, eqTerminatorMatcher)
	} else {
		tokens = append(tokens, comaTerminatorMatcher)
	}
	match := cursor.MatchAny(tokens...)
	switch match.Code {
	case comaTerminatorToken:
		value = match.Text(cursor)
		value = value[:len(value)-1] //exclude ,
	case eqTerminatorToken:
		key = match.Text(cursor)
		key = key[:len(key)-1]
		match = cursor.MatchAny(scopeBlockMatcher, comaTerminatorMatcher)
		switch match.Code {
		case scopeBlockToken:
			value = match.Text(cursor)
			value = value[1 : len(value)-1] //exclude { }
			match = cursor.MatchAny(comaTerminatorMatcher)
		case comaTerminatorToken:
			value = match.Text(cursor)
			value = value[:len(value)-1]
		default:
			if cursor.Pos < len(cursor.Input) {
				value = string(cursor.Input[cursor.Pos:])
				cursor.Pos = len(cursor.Input)
			}
		}
	default:
		if cursor.Pos < len(cursor.Input) {
			value = string(cursor.Input[cursor.Pos:])
			cursor.Pos = len(cursor.Input)
		}
	}
	return key, value
}

// TaggedMappings derives the field mappings declared with `flat` struct tags
// on the supplied record type; untagged nested struct members contribute
// dotted paths for their tagged leaves.
func TaggedMappings(rType reflect.Type) ([]*FieldMapping, error) {
	recordType := ensureStruct(rType)
	if recordType == nil {
		return nil, configError("", "record type %s is not a struct", rType)
	}
	var result []*FieldMapping
	visited := map[reflect.Type]bool{}
	if err := collectTagged(recordType, "", visited, &result); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, configError("", "type %s declares no %v tags", recordType, TagName)
	}
	return result, nil
}

// collectTagged walks the struct members under prefix; visited holds the
// types on the current descent chain only, so a type reused by sibling
// members is collected for each of them while a recursive type still
// terminates.
func collectTagged(holder reflect.Type, prefix string, visited map[reflect.Type]bool, result *[]*FieldMapping) error {
	if visited[holder] {
		return nil
	}
	visited[holder] = true
	defer delete(visited, holder)
	for i := 0; i < holder.NumField(); i++ {
		field := holder.Field(i)
		if field.PkgPath != "" {
			continue
		}
		path := prefix + field.Name
		encoded, ok := field.Tag.Lookup(TagName)
		if !ok {
			if nested := ensureStruct(field.Type); nested != nil && !isValueStruct(nested) {
				if err := collectTagged(nested, path+".", visited, result); err != nil {
					return err
				}
			}
			continue
		}
		tag, err := parseFieldTag(encoded)
		if err != nil {
			return configError(path, "%v", err)
		}
		if tag.ignore {
			continue
		}
		if !tag.hasIndex {
			return configError(path, "%v tag misses position index", TagName)
		}
		*result = append(*result, &FieldMapping{
			Path:       path,
			Start:      tag.index,
			Length:     tag.length,
			TimeLayout: tag.layout,
		})
	}
	return nil
}

var (
	taggedTimeType      = reflect.TypeOf(time.Time{})
	taggedDecimalType   = reflect.TypeOf(decimal.Decimal{})
	taggedUUIDType      = reflect.TypeOf(uuid.UUID{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// isValueStruct reports struct types that convert as a whole and are never
// descended into.
func isValueStruct(t reflect.Type) bool {
	switch t {
	case taggedTimeType, taggedDecimalType, taggedUUIDType:
		return true
	}
	return reflect.PtrTo(t).Implements(textUnmarshalerType)
}

// NewTagged compiles a parser for record type T from its `flat` struct tags.
func NewTagged[T any](opts ...Option) (*Parser[T], error) {
	var prototype T
	fields, err := TaggedMappings(reflect.TypeOf(prototype))
	if err != nil {
		return nil, err
	}
	return NewParser[T](fields, opts...)
}
