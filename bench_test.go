package flatly

import (
	"reflect"
	"testing"
	"time"
)

// Benchmark a flat delimited record with primitive fields.
func BenchmarkParser_Parse_Flat(b *testing.B) {
	type Row struct {
		Id    int
		Name  string
		Score float64
	}
	fields := []*FieldMapping{
		{Path: "Id", Start: 0},
		{Path: "Name", Start: 1},
		{Path: "Score", Start: 2},
	}
	p, err := NewParser[Row](fields)
	if err != nil {
		b.Fatal(err)
	}
	line := "101,John,12.5"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Parse(line)
	}
}

// Benchmark a record with a nested pointer path and a time field.
func BenchmarkParser_Parse_Nested(b *testing.B) {
	type Address struct {
		City string
	}
	type Row struct {
		Name    string
		Address *Address
		When    time.Time
	}
	fields := []*FieldMapping{
		{Path: "Name", Start: 0},
		{Path: "Address.City", Start: 1},
		{Path: "When", Start: 2},
	}
	p, err := NewParser[Row](fields)
	if err != nil {
		b.Fatal(err)
	}
	line := "John,Warsaw,2020-05-23"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Parse(line)
	}
}

// Benchmark fixed-width extraction into an existing record.
func BenchmarkPlan_ParseInto_Fixed(b *testing.B) {
	type Row struct {
		Code   string
		Serial string
		Qty    int
	}
	fields := []*FieldMapping{
		{Path: "Code", Start: 0, Length: 5},
		{Path: "Serial", Start: 5, Length: 5},
		{Path: "Qty", Start: 10, Length: 4},
	}
	plan, err := New(reflect.TypeOf(Row{}), fields, WithFixedWidth())
	if err != nil {
		b.Fatal(err)
	}
	line := "12345ABCDE  42"
	record := &Row{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = plan.ParseInto(line, record)
	}
}
