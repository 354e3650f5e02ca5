package flatly

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

type (
	pathStep struct {
		field    *xunsafe.Field
		isPtr    bool
		elemType reflect.Type
	}

	paths []*pathStep
)

// upstream walks the intermediate segments down to the leaf holder pointer.
// A nil pointer parent is allocated on first touch and reused afterwards, so
// each distinct intermediate object is constructed at most once per record
// even when several leaves share the prefix.
func (p paths) upstream(ptr unsafe.Pointer) (unsafe.Pointer, *xunsafe.Field) {
	count := len(p)
	if count == 1 {
		return ptr, p[0].field
	}
	for i := 0; i < count-1; i++ {
		ptr = p[i].pointer(ptr)
	}
	return ptr, p[count-1].field
}

func (s *pathStep) pointer(parent unsafe.Pointer) unsafe.Pointer {
	ptr := s.field.Pointer(parent)
	if !s.isPtr {
		return ptr
	}
	if *(*unsafe.Pointer)(ptr) == nil {
		s.field.SetValue(parent, reflect.New(s.elemType).Interface())
	}
	return xunsafe.DerefPointer(ptr)
}
