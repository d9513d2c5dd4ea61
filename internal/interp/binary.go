package interp

import (
	"github.com/sunholo/tesserac/internal/ast"
	terrors "github.com/sunholo/tesserac/internal/errors"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// execBinary evaluates a BinaryOperator node. Assignment is handled
// separately from arithmetic/comparison/logic since its left operand is
// an lvalue the parser deliberately left unwrapped (internal/parser's
// toLValue), never an LValueToRValue-wrapped rvalue.
func (it *Interpreter) execBinary(node *ast.Node) (Value, error) {
	lhs, rhs := node.Children[0], node.Children[1]

	if node.Token.Lexeme == "=" {
		return it.execAssign(node, lhs, rhs)
	}

	// Short-circuit logical operators evaluate rhs only when needed.
	switch node.Token.Lexeme {
	case "&&":
		l, err := it.Execute(lhs)
		if err != nil {
			return nil, err
		}
		if !truthy(l) {
			return &BoolValue{Value: false}, nil
		}
		r, err := it.Execute(rhs)
		if err != nil {
			return nil, err
		}
		return &BoolValue{Value: truthy(r)}, nil
	case "||":
		l, err := it.Execute(lhs)
		if err != nil {
			return nil, err
		}
		if truthy(l) {
			return &BoolValue{Value: true}, nil
		}
		r, err := it.Execute(rhs)
		if err != nil {
			return nil, err
		}
		return &BoolValue{Value: truthy(r)}, nil
	}

	l, err := it.Execute(lhs)
	if err != nil {
		return nil, err
	}
	r, err := it.Execute(rhs)
	if err != nil {
		return nil, err
	}

	switch node.Token.Lexeme {
	case "==", "!=", "<", "<=", ">", ">=":
		return compareValues(node.Token.Lexeme, l, r), nil
	case "^":
		return &IntValue{Value: toInt64(l) ^ toInt64(r)}, nil
	}

	resultFloat := node.TypeID == int(typeregistry.Float) || node.TypeID == int(typeregistry.Double)
	if resultFloat {
		return arithFloat(node.Token.Lexeme, toFloat64(l), toFloat64(r))
	}
	return it.arithInt(node, toInt64(l), toInt64(r))
}

func (it *Interpreter) execAssign(node, lhs, rhs *ast.Node) (Value, error) {
	cell, err := it.cellFor(lhs)
	if err != nil {
		return nil, err
	}
	v, err := it.Execute(rhs)
	if err != nil {
		return nil, err
	}
	v = it.convert(v, typeregistry.TypeID(lhs.TypeID))
	*cell = v
	return v, nil
}

func arithFloat(op string, l, r float64) (Value, error) {
	switch op {
	case "+":
		return &FloatValue{Value: l + r}, nil
	case "-":
		return &FloatValue{Value: l - r}, nil
	case "*":
		return &FloatValue{Value: l * r}, nil
	case "/":
		return &FloatValue{Value: l / r}, nil
	}
	return &FloatValue{Value: 0}, nil
}

func (it *Interpreter) arithInt(node *ast.Node, l, r int64) (Value, error) {
	switch node.Token.Lexeme {
	case "+":
		return &IntValue{Value: l + r}, nil
	case "-":
		return &IntValue{Value: l - r}, nil
	case "*":
		return &IntValue{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, it.runtimeError(terrors.RT002, node, "integer division by zero")
		}
		return &IntValue{Value: l / r}, nil
	case "%":
		if r == 0 {
			return nil, it.runtimeError(terrors.RT002, node, "integer modulo by zero")
		}
		return &IntValue{Value: l % r}, nil
	}
	return &IntValue{Value: 0}, nil
}

func compareValues(op string, l, r Value) Value {
	_, lf := l.(*FloatValue)
	_, rf := r.(*FloatValue)
	if lf || rf {
		a, b := toFloat64(l), toFloat64(r)
		return &BoolValue{Value: compareFloat(op, a, b)}
	}
	a, b := toInt64(l), toInt64(r)
	return &BoolValue{Value: compareInt(op, a, b)}
}

func compareFloat(op string, a, b float64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

func compareInt(op string, a, b int64) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}
