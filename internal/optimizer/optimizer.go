// Package optimizer implements the AST Optimizer (spec.md §4.5): a
// single bottom-up pass that collapses trivial Expression wrappers and
// constant-folds arithmetic BinaryOperator nodes. It recurses into
// children first, then applies this node's rule to the
// (already-optimized) result.
package optimizer

import (
	"github.com/sunholo/tesserac/internal/ast"
)

// Optimize runs the single required pass over root and returns the
// (possibly mutated) node. The pass is structurally idempotent:
// Optimize(Optimize(n)) == Optimize(n), since both rules are no-ops
// once applied (a collapsed Expression has no Expression wrapper left
// to collapse; a folded BinaryOperator is already a ConstantValue, which
// optimizeNode passes through unchanged).
func Optimize(root *ast.Node) *ast.Node {
	return optimizeNode(root)
}

func optimizeNode(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}

	for i, c := range n.Children {
		n.Children[i] = optimizeNode(c)
		n.Children[i].Parent = n
	}

	switch n.Kind {
	case ast.Expression:
		if len(n.Children) == 1 {
			return n.Children[0]
		}
	case ast.BinaryOperator:
		if folded := foldBinary(n); folded != nil {
			return folded
		}
	}
	return n
}

// foldBinary implements spec.md §4.5's constant-folding rule: both
// operands must already be ConstantValue nodes of compatible numeric
// kind (integer or float). Division by zero is deliberately left
// unfolded — it surfaces as a DivisionByZero runtime error at
// interpretation instead, per spec.md §4.5's explicit carve-out.
func foldBinary(n *ast.Node) *ast.Node {
	if len(n.Children) != 2 {
		return nil
	}
	lhs, rhs := n.Children[0], n.Children[1]
	if lhs.Kind != ast.ConstantValue || rhs.Kind != ast.ConstantValue {
		return nil
	}

	switch {
	case lhs.Value.Kind == ast.LiteralInt && rhs.Value.Kind == ast.LiteralInt:
		return foldIntBinary(n, lhs.Value.Int, rhs.Value.Int)
	case isNumericFloat(lhs.Value) && isNumericFloat(rhs.Value):
		return foldFloatBinary(n, floatOf(lhs.Value), floatOf(rhs.Value))
	}
	return nil
}

func isNumericFloat(v ast.Value) bool {
	return v.Kind == ast.LiteralFloat || v.Kind == ast.LiteralInt
}

func floatOf(v ast.Value) float64 {
	if v.Kind == ast.LiteralInt {
		return float64(v.Int)
	}
	return v.Flt
}

func foldIntBinary(n *ast.Node, a, b int64) *ast.Node {
	var result int64
	switch n.Token.Lexeme {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return nil
		}
		result = a / b
	case "%":
		if b == 0 {
			return nil
		}
		result = a % b
	default:
		return nil
	}
	out := ast.New(ast.ConstantValue, n.Token)
	out.Value = ast.Value{Kind: ast.LiteralInt, Int: result}
	out.TypeID = n.TypeID
	return out
}

func foldFloatBinary(n *ast.Node, a, b float64) *ast.Node {
	var result float64
	switch n.Token.Lexeme {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return nil
		}
		result = a / b
	default:
		return nil
	}
	out := ast.New(ast.ConstantValue, n.Token)
	out.Value = ast.Value{Kind: ast.LiteralFloat, Flt: result}
	out.TypeID = n.TypeID
	return out
}
