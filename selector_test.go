package flatly

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/viant/xunsafe"
)

func TestNewSelector(t *testing.T) {
	type Address struct {
		City string
		Zip  *string
	}
	type Employer struct {
		Name    string
		Address *Address
	}
	type Base struct {
		Id int
	}
	type Person struct {
		Base
		Name     string
		Age      *int
		Employer *Employer
	}

	var testCases = []struct {
		description string
		path        string
		expectType  reflect.Type
		expectError bool
	}{
		{
			description: "top level member",
			path:        "Name",
			expectType:  reflect.TypeOf(""),
		},
		{
			description: "top level pointer member",
			path:        "Age",
			expectType:  reflect.TypeOf((*int)(nil)),
		},
		{
			description: "nested member behind pointer",
			path:        "Employer.Name",
			expectType:  reflect.TypeOf(""),
		},
		{
			description: "doubly nested member",
			path:        "Employer.Address.City",
			expectType:  reflect.TypeOf(""),
		},
		{
			description: "doubly nested pointer leaf",
			path:        "Employer.Address.Zip",
			expectType:  reflect.TypeOf((*string)(nil)),
		},
		{
			description: "promoted embedded member",
			path:        "Id",
			expectType:  reflect.TypeOf(0),
		},
		{
			description: "unknown member",
			path:        "Missing",
			expectError: true,
		},
		{
			description: "unknown nested member",
			path:        "Employer.Missing",
			expectError: true,
		},
		{
			description: "segment through a leaf",
			path:        "Name.X",
			expectError: true,
		},
	}

	rType := reflect.TypeOf(Person{})
	for _, testCase := range testCases {
		selector, err := NewSelector(rType, testCase.path)
		if testCase.expectError {
			assert.NotNilf(t, err, testCase.description)
			continue
		}
		if !assert.Nilf(t, err, testCase.description) {
			continue
		}
		assert.Equalf(t, testCase.path, selector.Path(), testCase.description)
		assert.Equalf(t, testCase.expectType, selector.Type(), testCase.description)
	}
}

func TestSelector_Upstream(t *testing.T) {
	type Inner struct {
		Value int
	}
	type Middle struct {
		Inner *Inner
		Label string
	}
	type Outer struct {
		Middle *Middle
	}

	rType := reflect.TypeOf(Outer{})
	valueSelector, err := NewSelector(rType, "Middle.Inner.Value")
	assert.Nil(t, err)
	labelSelector, err := NewSelector(rType, "Middle.Label")
	assert.Nil(t, err)

	record := &Outer{}
	ptr := xunsafe.AsPointer(record)

	holder, field := valueSelector.Upstream(ptr)
	field.SetValue(holder, 42)
	assert.NotNil(t, record.Middle)
	assert.NotNil(t, record.Middle.Inner)
	assert.Equal(t, 42, record.Middle.Inner.Value)

	//the shared parent is reused, not rebuilt
	middle := record.Middle
	holder, field = labelSelector.Upstream(ptr)
	field.SetValue(holder, "kept")
	assert.True(t, middle == record.Middle)
	assert.Equal(t, "kept", record.Middle.Label)
	assert.Equal(t, 42, record.Middle.Inner.Value)
}

func TestSelector_UpstreamValueParent(t *testing.T) {
	type Inner struct {
		Count int
	}
	type Outer struct {
		Inner Inner
	}
	selector, err := NewSelector(reflect.TypeOf(Outer{}), "Inner.Count")
	assert.Nil(t, err)
	record := &Outer{}
	holder, field := selector.Upstream(unsafe.Pointer(record))
	field.SetValue(holder, 7)
	assert.Equal(t, 7, record.Inner.Count)
}
