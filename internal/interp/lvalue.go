package interp

import (
	"fmt"

	"github.com/sunholo/tesserac/internal/ast"
	terrors "github.com/sunholo/tesserac/internal/errors"
)

// cellFor resolves an lvalue-producing node to its backing storage
// cell. The parser's parsePostfix rewrites every `.member`/`[idx]`
// access into a fresh Variable node that keeps the ORIGINAL base
// variable's Token and drops everything before the last accessor (see
// internal/parser's parsePostfix) — so a Variable node here never
// nests more than one accessor child, and resolving its base is always
// a single env lookup by that Token's name, never a recursive walk.
func (it *Interpreter) cellFor(node *ast.Node) (*Value, error) {
	switch node.Kind {
	case ast.Variable:
		base, ok := it.env.Cell(node.Token.Lexeme)
		if !ok {
			return nil, fmt.Errorf("interp: undeclared name %q", node.Token.Lexeme)
		}
		if len(node.Children) == 0 {
			return base, nil
		}
		child := node.Children[0]
		if child.Kind == ast.MemberIdentifier {
			comp, ok := (*base).(*CompositeValue)
			if !ok {
				return nil, fmt.Errorf("interp: %q is not a composite value", node.Token.Lexeme)
			}
			if child.Index < 0 || child.Index >= len(comp.Fields) {
				return nil, it.runtimeError(terrors.RT001, node, fmt.Sprintf("member index %d out of bounds for %q", child.Index, comp.TypeName))
			}
			return comp.Fields[child.Index], nil
		}
		arr, ok := (*base).(*ArrayValue)
		if !ok {
			return nil, fmt.Errorf("interp: %q is not an array value", node.Token.Lexeme)
		}
		idx, err := it.Execute(child)
		if err != nil {
			return nil, err
		}
		i := int(toInt64(idx))
		if i < 0 || i >= len(arr.Elements) {
			return nil, it.runtimeError(terrors.RT001, node, fmt.Sprintf("array index %d out of bounds (length %d)", i, len(arr.Elements)))
		}
		return arr.Elements[i], nil
	case ast.Dereference:
		v, err := it.Execute(node.Children[0])
		if err != nil {
			return nil, err
		}
		ptr, ok := v.(*PointerValue)
		if !ok || ptr.Cell == nil {
			return nil, it.runtimeError(terrors.RT003, node, "dereference of a null pointer")
		}
		return ptr.Cell, nil
	}
	return nil, fmt.Errorf("interp: node kind %s is not an lvalue", node.Kind)
}
