// Package interp implements the tree-walking Interpreter (spec.md
// §4.7): it executes a parsed, optionally-optimized AST directly
// against its own runtime scope stack, without lowering to any
// intermediate form.
package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime value. Every concrete kind below implements it as
// a pointer receiver rather than a tagged union — dispatch is by Go
// type switch instead of a discriminant field.
type Value interface {
	Type() string
	String() string
}

// IntValue holds any of tesserac's integer-kind primitives (int, the
// sized u*/i* family); the interpreter does not distinguish bit widths
// at runtime, only at the Type Registry level.
type IntValue struct{ Value int64 }

func (v *IntValue) Type() string   { return "int" }
func (v *IntValue) String() string { return strconv.FormatInt(v.Value, 10) }

// FloatValue holds float and double.
type FloatValue struct{ Value float64 }

func (v *FloatValue) Type() string   { return "float" }
func (v *FloatValue) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

// BoolValue holds bool.
type BoolValue struct{ Value bool }

func (v *BoolValue) Type() string { return "bool" }
func (v *BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// CharValue holds char.
type CharValue struct{ Value rune }

func (v *CharValue) Type() string   { return "char" }
func (v *CharValue) String() string { return string(v.Value) }

// StringValue holds cstr (string literals and the builtin's formatting
// output use this uniformly; tesserac has no separate "string" type
// beyond cstr).
type StringValue struct{ Value string }

func (v *StringValue) Type() string   { return "cstr" }
func (v *StringValue) String() string { return v.Value }

// VoidValue is the result of a statement or call that produces no
// value (spec.md has no explicit "unit" literal, but control-flow
// statements and the print builtin need something to return).
type VoidValue struct{}

func (VoidValue) Type() string   { return "void" }
func (VoidValue) String() string { return "" }

// ArrayValue is a fixed-capacity, heap-allocated array. Elements are
// cells (*Value) rather than bare Values so subscript assignment and
// `&arr[i]` can address an individual slot, matching spec.md §4.7's
// "return the indexed slot" wording.
type ArrayValue struct {
	Elements []*Value
}

func (v *ArrayValue) Type() string { return "array" }
func (v *ArrayValue) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range v.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString((*c).String())
	}
	b.WriteByte(']')
	return b.String()
}

// CompositeValue is an instance of a user-defined type. Fields are
// cells, same reasoning as ArrayValue, addressed by the MemberIdentifier
// index the parser already resolved.
type CompositeValue struct {
	TypeName string
	Fields   []*Value
}

func (v *CompositeValue) Type() string { return v.TypeName }
func (v *CompositeValue) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range v.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s", (*c).String())
	}
	b.WriteByte('}')
	return b.String()
}

// PointerValue holds the address of a cell, produced by GetPointer and
// consumed by Dereference. A nil Cell is the interpreter's "null
// pointer" — dereferencing one reports RT003.
type PointerValue struct {
	Cell *Value
}

func (v *PointerValue) Type() string { return "pointer" }
func (v *PointerValue) String() string {
	if v.Cell == nil {
		return "<nil>"
	}
	return "&" + (*v.Cell).String()
}

func newCell(v Value) *Value {
	cell := new(Value)
	*cell = v
	return cell
}
