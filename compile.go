package flatly

import (
	"reflect"
	"sort"

	"github.com/viant/flatly/conv"
	"github.com/viant/flatly/format"
	tagformat "github.com/viant/tagly/format"
)

// New compiles an ordered set of field mappings against the supplied record
// type into a reusable plan. Converter precedence per field: the mapping's
// own converter, then a type-default converter, then the registry built-in,
// then the generic representation change fallback. Configuration problems
// fail here; token problems fail per parsed record.
func New(rType reflect.Type, fields []*FieldMapping, opts ...Option) (*Plan, error) {
	recordType := ensureStruct(rType)
	if recordType == nil {
		return nil, configError("", "record type %s is not a struct", rType)
	}
	config := newOptions(opts)
	mappings, err := sortedMappings(fields, config)
	if err != nil {
		return nil, err
	}
	plan := &Plan{
		rType:     recordType,
		fixed:     config.fixedWidth,
		delimiter: config.delimiter,
		quote:     config.quote,
	}
	for _, mapping := range mappings {
		index := mapping.Start
		if plan.fixed {
			index = len(plan.columns)
			plan.columns = append(plan.columns, column{start: mapping.Start, length: mapping.Length})
		} else if index >= plan.limit {
			plan.limit = index + 1
		}
		aStep, err := compileStep(recordType, mapping, index, config)
		if err != nil {
			return nil, err
		}
		plan.steps = append(plan.steps, aStep)
	}
	return plan, nil
}

func sortedMappings(fields []*FieldMapping, config *options) ([]*FieldMapping, error) {
	var result []*FieldMapping
	seen := map[string]bool{}
	for _, mapping := range fields {
		if mapping.Path == "" { //reserved position, no output field
			continue
		}
		if mapping.Start < 0 {
			return nil, configError(mapping.Path, "negative position %v", mapping.Start)
		}
		if config.fixedWidth && mapping.Length <= 0 {
			return nil, configError(mapping.Path, "fixed-width length has to be positive, had %v", mapping.Length)
		}
		key := mapping.Path
		if seen[key] {
			return nil, configError(mapping.Path, "duplicate mapping")
		}
		seen[key] = true
		result = append(result, mapping)
	}
	if len(result) == 0 {
		return nil, configError("", "no fields mapped")
	}
	//ties on Start are allowed across distinct paths; (Start, Path) keeps
	//the assignment order deterministic
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Start != result[j].Start {
			return result[i].Start < result[j].Start
		}
		return result[i].Path < result[j].Path
	})
	return result, nil
}

func compileStep(recordType reflect.Type, mapping *FieldMapping, index int, config *options) (*step, error) {
	selector, err := NewSelector(recordType, mapping.Path)
	if err != nil {
		return nil, err
	}
	leafType := selector.Type()
	declared := leafType
	nullable := leafType.Kind() == reflect.Ptr
	if nullable {
		declared = leafType.Elem()
	}
	converter, err := resolveConverter(mapping, declared, selector, config)
	if err != nil {
		return nil, err
	}
	setter := assignValue
	if nullable {
		setter = assignPtrValue
	}
	return &step{
		index:    index,
		path:     mapping.Path,
		selector: selector,
		nullable: nullable,
		convert:  converter,
		setter:   setter,
	}, nil
}

func resolveConverter(mapping *FieldMapping, declared reflect.Type, selector *Selector, config *options) (conv.Converter, error) {
	if mapping.Converter != nil {
		return mapping.Converter, nil
	}
	if converter, ok := config.defaults[declared]; ok {
		return converter, nil
	}
	convOptions := &conv.Options{
		Locale:     config.locale,
		TimeLayout: timeLayout(mapping, selector),
	}
	converter, err := config.registry.New(conv.Text, declared, convOptions)
	if err != nil {
		return nil, configError(mapping.Path, "%v", err)
	}
	return converter, nil
}

// timeLayout resolves the per-field date layout: the mapping setting first,
// then the leaf member format tag.
func timeLayout(mapping *FieldMapping, selector *Selector) string {
	if mapping.TimeLayout != "" {
		return mapping.TimeLayout
	}
	tag, _ := tagformat.Parse(selector.Tag())
	if tag == nil {
		return selector.Tag().Get("timeLayout")
	}
	if tag.TimeLayout != "" {
		return tag.TimeLayout
	}
	if tag.DateFormat != "" {
		return format.DateFormatToTimeLayout(tag.DateFormat)
	}
	return selector.Tag().Get("timeLayout")
}
