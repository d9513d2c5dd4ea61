package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/parser"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

func parseOptimized(t *testing.T, src string) *ast.Node {
	t.Helper()
	lex := lexer.New(src, "opt_test.tess")
	file, errs := parser.Parse(lex, typeregistry.New(), "opt_test.tess")
	require.Empty(t, errs)
	return Optimize(file.Node)
}

func TestCollapsesExpressionWrapper(t *testing.T) {
	root := parseOptimized(t, "25 + 97;")
	stmt := root.Children[0]
	require.Equal(t, ast.Statement, stmt.Kind)
	// The Expression wrapper the parser inserted around the statement's
	// expression must be gone after optimization.
	require.Len(t, stmt.Children, 1)
	assert.Equal(t, ast.ConstantValue, stmt.Children[0].Kind)
}

func TestConstantFoldsIntegerArithmetic(t *testing.T) {
	root := parseOptimized(t, "25 + 97;")
	folded := root.Children[0].Children[0]
	require.Equal(t, ast.ConstantValue, folded.Kind)
	assert.Equal(t, int64(122), folded.Value.Int)
}

func TestConstantFoldingRespectsPrecedence(t *testing.T) {
	root := parseOptimized(t, "2 * (6 * 1 + 2) / 4 * (4 + 1);")
	folded := root.Children[0].Children[0]
	require.Equal(t, ast.ConstantValue, folded.Kind)
	assert.Equal(t, int64(20), folded.Value.Int)
}

func TestLargerArithmeticExpression(t *testing.T) {
	root := parseOptimized(t, "125 * 45 + 24 / (4 + 3) - 5;")
	folded := root.Children[0].Children[0]
	require.Equal(t, ast.ConstantValue, folded.Kind)
	assert.Equal(t, int64(5623), folded.Value.Int)
}

func TestDivisionByZeroIsLeftUnfolded(t *testing.T) {
	root := parseOptimized(t, "1 / 0;")
	result := root.Children[0].Children[0]
	require.Equal(t, ast.BinaryOperator, result.Kind, "division by zero must survive optimization unfolded")
}

func TestOptimizeIsIdempotent(t *testing.T) {
	root := parseOptimized(t, `
		function add(int a, int b) : int { return a + b; }
		int x = 1 + 2 * 3;
		if (x > 0) { x = x + 1; }
	`)
	once := ast.Print(root)
	twice := ast.Print(Optimize(root))
	assert.Equal(t, once, twice)
}

func TestNonConstantBinaryOperatorIsUnaffected(t *testing.T) {
	root := parseOptimized(t, "int a = 0; int b = 0; a + b;")
	stmt := root.Children[2]
	bin := stmt.Children[0]
	require.Equal(t, ast.BinaryOperator, bin.Kind)
}
