package parser

import (
	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// parseTypeExpr parses a base type name followed by any sequence of
// `*` (pointer-to) and `[capacity]` (array-of) modifiers, applied left
// to right, e.g. `int`, `int*`, `int[8]`, `int*[4]`. A name the Type
// Registry has never seen is treated as a forward reference via
// GetOrRegister, so a type can be used before its declaration is
// parsed (spec.md §4.2's placeholder mechanism).
func (p *Parser) parseTypeExpr() typeregistry.TypeID {
	if !p.curIs(lexer.IDENT) {
		p.errorf("SYN006", p.curPos(), "expected type name, got %q", p.cur.Lexeme)
		return typeregistry.InvalidTypeID
	}
	name := p.cur.Lexeme
	p.advance()

	id, ok := p.scope.ResolveType(name)
	if !ok {
		id = p.registry.GetOrRegister(name)
	}

	for {
		switch p.cur.Kind {
		case lexer.STAR:
			p.advance()
			id = p.registry.GetPointerTo(id)
		case lexer.LBRACKET:
			p.advance()
			capacity := p.evalConstInt(p.parseExpr(16))
			p.expect(lexer.RBRACKET, "SYN004", "']'")
			id = p.registry.GetArrayOf(id, capacity)
		default:
			return id
		}
	}
}

// looksLikeTypeStart reports whether the current token could begin a
// typed declaration: an identifier naming a known type, optionally
// followed by `*`/`[...]` modifiers, then the declared name — i.e.
// `TypeName name`, `TypeName* name`, or `TypeName[cap] name`. Knowing
// the current identifier names a type is sufficient on its own
// (variables and types share no identifier, so `int`/`complex`/etc.
// can never also be a variable being subscripted or multiplied); the
// peek token only needs checking to rule out a bare type name used as
// an ordinary call or variable reference, neither of which spec.md's
// grammar has, so no further disambiguation is required here.
func (p *Parser) looksLikeTypeStart() bool {
	if !p.curIs(lexer.IDENT) {
		return false
	}
	if p.registry.GetTypeByName(p.cur.Lexeme) != nil {
		return true
	}
	_, ok := p.scope.ResolveType(p.cur.Lexeme)
	return ok
}

// evalConstInt folds an array-capacity expression down to a concrete
// int at parse time. Array identity is capacity-parameterized (spec.md
// §9), so the capacity must be known before the array TypeID can be
// interned; this supports integer literals, `const` variable
// references whose folded value was recorded at declaration, and
// +,-,*,/ combinations of those, which covers every capacity
// expression spec.md §8's scenarios use.
func (p *Parser) evalConstInt(n *ast.Node) int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case ast.ConstantValue:
		return int(n.Value.Int)
	case ast.LValueToRValue:
		return p.evalConstInt(n.Children[0])
	case ast.Variable:
		if n.ResolvedRef != nil && n.ResolvedRef.SubKind == ast.Const && len(n.ResolvedRef.Children) > 0 {
			return p.evalConstInt(n.ResolvedRef.Children[0])
		}
	case ast.BinaryOperator:
		if len(n.Children) != 2 {
			return 0
		}
		l, r := p.evalConstInt(n.Children[0]), p.evalConstInt(n.Children[1])
		switch n.Token.Lexeme {
		case "+":
			return l + r
		case "-":
			return l - r
		case "*":
			return l * r
		case "/":
			if r != 0 {
				return l / r
			}
		}
	case ast.UnaryOperator:
		if n.Token.Lexeme == "-" && len(n.Children) == 1 {
			return -p.evalConstInt(n.Children[0])
		}
	}
	p.errorf("SEM004", n.Position(), "array capacity must be a constant integer expression")
	return 0
}
