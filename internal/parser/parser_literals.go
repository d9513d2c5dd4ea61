package parser

import (
	"strconv"
	"strings"

	"github.com/sunholo/tesserac/internal/ast"
)

// parseIntLiteral strips the lexer's accepted integer suffixes (i/u
// force-integer markers) before delegating to strconv; a malformed
// literal the lexer let through as INT still parses as 0 rather than
// panicking the parser.
func parseIntLiteral(lexeme string) int64 {
	trimmed := strings.TrimRight(lexeme, "iu")
	v, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseFloatLiteral strips the trailing `f` suffix lexer.readNumber
// accepts before delegating to strconv.
func parseFloatLiteral(lexeme string) float64 {
	trimmed := strings.TrimRight(lexeme, "f")
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return v
}

// literalGoValue extracts the native Go value a ConstantValue node
// carries, for storage as a typeregistry.Member's Default. Returns nil
// for anything more complex than a literal (e.g. `-1.0` or an expression
// built from other members); such a member has no Default, so a new
// composite value starts it at its type's zero value.
func literalGoValue(n *ast.Node) interface{} {
	if n == nil || n.Kind != ast.ConstantValue {
		return nil
	}
	switch n.Value.Kind {
	case ast.LiteralInt:
		return n.Value.Int
	case ast.LiteralFloat:
		return n.Value.Flt
	case ast.LiteralChar:
		return n.Value.Chr
	case ast.LiteralString:
		return n.Value.Str
	case ast.LiteralBool:
		return n.Value.Bool
	}
	return nil
}
