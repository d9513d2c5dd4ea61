package interp

import (
	"github.com/sunholo/tesserac/internal/ast"
)

// execUnary evaluates a UnaryOperator node: arithmetic negation reads
// its already-rvalue operand directly; `++`/`--` instead resolve the
// operand's storage cell so the increment can be written back, and
// differ only in which value they report (prefix yields the updated
// value, postfix yields the value the cell held beforehand).
func (it *Interpreter) execUnary(node *ast.Node) (Value, error) {
	switch node.Token.Lexeme {
	case "-":
		v, err := it.Execute(node.Children[0])
		if err != nil {
			return nil, err
		}
		if f, ok := v.(*FloatValue); ok {
			return &FloatValue{Value: -f.Value}, nil
		}
		return &IntValue{Value: -toInt64(v)}, nil
	case "++", "--":
		return it.execIncDec(node)
	}
	return it.Execute(node.Children[0])
}

func (it *Interpreter) execIncDec(node *ast.Node) (Value, error) {
	cell, err := it.cellFor(node.Children[0])
	if err != nil {
		return nil, err
	}
	old := *cell
	var updated Value
	delta := int64(1)
	if node.Token.Lexeme == "--" {
		delta = -1
	}
	if f, ok := old.(*FloatValue); ok {
		updated = &FloatValue{Value: f.Value + float64(delta)}
	} else {
		updated = &IntValue{Value: toInt64(old) + delta}
	}
	*cell = updated
	if node.SubKind == ast.Postfix {
		return old, nil
	}
	return updated, nil
}
