package interp

import (
	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// constantValue reads the literal payload off a ConstantValue node.
func constantValue(n *ast.Node) Value {
	switch n.Value.Kind {
	case ast.LiteralInt:
		return &IntValue{Value: n.Value.Int}
	case ast.LiteralFloat:
		return &FloatValue{Value: n.Value.Flt}
	case ast.LiteralChar:
		return &CharValue{Value: n.Value.Chr}
	case ast.LiteralString:
		return &StringValue{Value: n.Value.Str}
	case ast.LiteralBool:
		return &BoolValue{Value: n.Value.Bool}
	}
	return VoidValue{}
}

// zeroValue produces the default value for a declaration with no
// initializer, per kind: numeric types start at zero, composites get
// every member's own default, arrays get one zero/default element per
// slot.
func (it *Interpreter) zeroValue(t *typeregistry.Type) Value {
	if t == nil {
		return VoidValue{}
	}
	switch t.Capability {
	case typeregistry.CapArray:
		return it.allocateArray(t)
	case typeregistry.CapUserComposite:
		return it.zeroComposite(t)
	case typeregistry.CapPointer:
		return &PointerValue{Cell: nil}
	}
	switch t.ID {
	case typeregistry.Float, typeregistry.Double:
		return &FloatValue{Value: 0}
	case typeregistry.Bool:
		return &BoolValue{Value: false}
	case typeregistry.Char:
		return &CharValue{Value: 0}
	case typeregistry.CString:
		return &StringValue{Value: ""}
	default:
		return &IntValue{Value: 0}
	}
}

// allocateArray builds a fresh ArrayValue with t.Capacity zero-valued
// elements of t.ElementID, and registers it with the interpreter's heap
// so Close can account for every allocation made during a run — the
// capacity itself was already folded to a concrete int at parse time
// (internal/parser's evalConstInt), so no const lookup happens here.
func (it *Interpreter) allocateArray(t *typeregistry.Type) *ArrayValue {
	elemType := it.registry.GetType(t.ElementID)
	arr := &ArrayValue{Elements: make([]*Value, t.Capacity)}
	for i := range arr.Elements {
		arr.Elements[i] = newCell(it.zeroValue(elemType))
	}
	it.heap = append(it.heap, arr)
	return arr
}

// zeroComposite builds a CompositeValue with one field per member,
// using the member's stored literal Default (typeregistry.Member sets
// this from the type declaration's own initializer, spec.md §4.3) when
// present, or that member's own zero value otherwise.
func (it *Interpreter) zeroComposite(t *typeregistry.Type) *CompositeValue {
	comp := &CompositeValue{TypeName: t.Designation, Fields: make([]*Value, len(t.Members))}
	for i, m := range t.Members {
		var v Value
		if m.Default != nil {
			v = it.convert(valueFromLiteral(m.Default), m.TypeID)
		} else {
			v = it.zeroValue(it.registry.GetType(m.TypeID))
		}
		comp.Fields[i] = newCell(v)
	}
	return comp
}

// valueFromLiteral lifts a raw Go literal out of typeregistry.Member's
// Default (produced at parse time by the parser's literalGoValue) into
// a runtime Value. The member's own declared type decides the final
// representation — convert handles e.g. an int64(0) default landing on
// a float member — so this only needs to pick the literal's own kind.
func valueFromLiteral(lit interface{}) Value {
	switch v := lit.(type) {
	case int64:
		return &IntValue{Value: v}
	case float64:
		return &FloatValue{Value: v}
	case rune:
		return &CharValue{Value: v}
	case string:
		return &StringValue{Value: v}
	case bool:
		return &BoolValue{Value: v}
	}
	return VoidValue{}
}

// convert coerces v to target's representation, implementing spec.md
// §4.4's implicit numeric conversions at the points the parser leaves
// them implicit (assignment, and initializer-to-declared-type) rather
// than inserting an ast.Cast node for every mixed-type use.
func (it *Interpreter) convert(v Value, target typeregistry.TypeID) Value {
	switch target {
	case typeregistry.Float, typeregistry.Double:
		if _, ok := v.(*FloatValue); ok {
			return v
		}
		return &FloatValue{Value: toFloat64(v)}
	case typeregistry.Bool:
		return v
	case typeregistry.Char:
		if _, ok := v.(*CharValue); ok {
			return v
		}
		return &CharValue{Value: rune(toInt64(v))}
	case typeregistry.CString:
		return v
	}
	if it.registry.IsIntegerKind(target) {
		if _, ok := v.(*IntValue); ok {
			return v
		}
		return &IntValue{Value: toInt64(v)}
	}
	return v
}

func toFloat64(v Value) float64 {
	switch val := v.(type) {
	case *FloatValue:
		return val.Value
	case *IntValue:
		return float64(val.Value)
	case *CharValue:
		return float64(val.Value)
	case *BoolValue:
		if val.Value {
			return 1
		}
		return 0
	}
	return 0
}

func toInt64(v Value) int64 {
	switch val := v.(type) {
	case *IntValue:
		return val.Value
	case *FloatValue:
		return int64(val.Value)
	case *CharValue:
		return int64(val.Value)
	case *BoolValue:
		if val.Value {
			return 1
		}
		return 0
	}
	return 0
}

func truthy(v Value) bool {
	switch val := v.(type) {
	case *BoolValue:
		return val.Value
	case *IntValue:
		return val.Value != 0
	case *FloatValue:
		return val.Value != 0
	case *CharValue:
		return val.Value != 0
	}
	return false
}
