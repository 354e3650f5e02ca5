package flatly

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/viant/xunsafe"
)

// Selector represents a resolved target member path: a chain of xunsafe
// fields rooted at the record type, with a settable leaf. Resolution happens
// once at plan construction; walking a record is offset arithmetic only.
type Selector struct {
	paths paths
	path  string
}

// Path returns the dotted member path this selector was resolved from.
func (s *Selector) Path() string {
	return s.path
}

// Type returns the leaf member type.
func (s *Selector) Type() reflect.Type {
	return s.leaf().field.Type
}

// Tag returns the leaf member struct tag.
func (s *Selector) Tag() reflect.StructTag {
	return s.leaf().field.Tag
}

func (s *Selector) leaf() *pathStep {
	return s.paths[len(s.paths)-1]
}

// Upstream resolves the holder pointer for the leaf member, materializing
// nil intermediate parents.
func (s *Selector) Upstream(ptr unsafe.Pointer) (unsafe.Pointer, *xunsafe.Field) {
	return s.paths.upstream(ptr)
}

// NewSelector resolves a dotted member path against the supplied record
// type. Each intermediate segment has to address a struct or a pointer to
// struct member; a missing or unexported segment is a configuration error.
// A promoted member of an embedded struct expands into its embedded hops.
func NewSelector(owner reflect.Type, path string) (*Selector, error) {
	holder := ensureStruct(owner)
	if holder == nil {
		return nil, configError(path, "record type %s is not a struct", owner)
	}
	result := &Selector{path: path, paths: paths{}}
	for _, segment := range strings.Split(path, ".") {
		if holder == nil {
			return nil, configError(path, "segment before %v does not address a struct", segment)
		}
		structField, ok := holder.FieldByName(segment)
		if !ok {
			return nil, configError(path, "unknown member %v on %s", segment, holder)
		}
		if structField.PkgPath != "" {
			return nil, configError(path, "member %v on %s is not writable", segment, holder)
		}
		for _, index := range structField.Index {
			hop := holder.Field(index)
			step := &pathStep{field: xunsafe.NewField(hop), isPtr: hop.Type.Kind() == reflect.Ptr}
			if step.isPtr {
				step.elemType = hop.Type.Elem()
			}
			result.paths = append(result.paths, step)
			holder = ensureStruct(hop.Type)
		}
	}
	return result, nil
}

func ensureStruct(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Struct:
		return t
	case reflect.Ptr:
		return ensureStruct(t.Elem())
	}
	return nil
}
