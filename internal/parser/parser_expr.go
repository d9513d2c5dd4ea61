package parser

import (
	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// precedence returns the binding power of the operator starting at the
// current token, using spec.md §4.4's inverted convention: a LOWER
// number binds TIGHTER. parseExpr's climbing loop stops once the next
// operator's precedence is looser (numerically greater) than the
// minimum it was called with.
func (p *Parser) precedenceOf(k lexer.Kind) int {
	if prec := (lexer.Token{Kind: k}).Precedence(); prec != 0 {
		return prec
	}
	return 1 << 30 // not an operator: loosest possible, stops the loop
}

// parseExpr implements precedence-climbing: it parses one primary/unary
// term, then repeatedly folds in infix operators whose precedence is at
// least as tight as minPrec, reparenting the already-built left operand
// under a new BinaryOperator node (the "pop and rotate" ast.Reparent
// documents).
func (p *Parser) parseExpr(minPrec int) *ast.Node {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		opKind := p.cur.Kind
		if !isBinaryOp(opKind) {
			break
		}
		prec := p.precedenceOf(opKind)
		if prec > minPrec {
			break
		}

		opTok := p.cur
		rightAssoc := opKind == lexer.ASSIGN
		p.advance()

		nextMin := prec
		if !rightAssoc {
			// Left-associative: an operator at the SAME precedence must
			// not be folded into the right operand, so tighten the bound
			// by one before recursing.
			nextMin = prec - 1
		}
		right := p.parseExpr(nextMin)
		if right == nil {
			return left
		}

		if opKind == lexer.ASSIGN {
			left = p.toLValue(left)
		} else {
			left = p.toRValue(left)
		}
		right = p.toRValue(right)

		bin := ast.New(ast.BinaryOperator, p.tokenInfoFor(opTok))
		bin.AddChild(left)
		bin.AddChild(right)
		bin.TypeID = p.resultTypeOfBinary(opKind, left, right)
		left = bin
	}

	return left
}

func isBinaryOp(k lexer.Kind) bool {
	switch k {
	case lexer.ASSIGN, lexer.OR, lexer.AND, lexer.CARET,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.LTE, lexer.GT, lexer.GTE,
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return true
	}
	return false
}

// resultTypeOfBinary applies spec.md §4.4's arithmetic-conversion rules:
// comparisons and logical operators always yield bool; assignment keeps
// the left-hand type; otherwise the wider of the two operand types
// wins, with float/double dominating integer kinds.
func (p *Parser) resultTypeOfBinary(op lexer.Kind, lhs, rhs *ast.Node) int {
	switch op {
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.LTE, lexer.GT, lexer.GTE, lexer.AND, lexer.OR:
		return int(typeregistry.Bool)
	case lexer.ASSIGN:
		return lhs.TypeID
	}
	lt, rt := typeregistry.TypeID(lhs.TypeID), typeregistry.TypeID(rhs.TypeID)
	if lt == rt {
		return int(lt)
	}
	if p.registry.IsFloatingPoint(lt) || p.registry.IsFloatingPoint(rt) {
		if lt == typeregistry.Double || rt == typeregistry.Double {
			return int(typeregistry.Double)
		}
		return int(typeregistry.Float)
	}
	return int(typeregistry.Int)
}

// parseUnary handles prefix operators (-, &, *, ++, --) before falling
// through to a postfix-decorated primary.
func (p *Parser) parseUnary() *ast.Node {
	switch p.cur.Kind {
	case lexer.MINUS, lexer.AMP:
		opTok := p.cur
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		if opTok.Kind == lexer.AMP {
			n := ast.New(ast.GetPointer, p.tokenInfoFor(opTok))
			n.AddChild(p.toLValue(operand))
			n.TypeID = int(p.registry.GetPointerTo(typeregistry.TypeID(operand.TypeID)))
			return n
		}
		operand = p.toRValue(operand)
		n := ast.New(ast.UnaryOperator, p.tokenInfoFor(opTok))
		n.SubKind = ast.Prefix
		n.AddChild(operand)
		n.TypeID = operand.TypeID
		return n
	case lexer.STAR:
		opTok := p.cur
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		operand = p.toRValue(operand)
		n := ast.New(ast.Dereference, p.tokenInfoFor(opTok))
		n.AddChild(operand)
		if t := p.registry.GetType(typeregistry.TypeID(operand.TypeID)); t != nil && t.IsPointer() {
			n.TypeID = int(t.PointeeID)
		}
		return n
	case lexer.INCR, lexer.DECR:
		opTok := p.cur
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		n := ast.New(ast.UnaryOperator, p.tokenInfoFor(opTok))
		n.SubKind = ast.Prefix
		n.AddChild(p.toLValue(operand))
		n.TypeID = operand.TypeID
		return n
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) tokenInfoFor(tok lexer.Token) ast.TokenInfo {
	return ast.TokenInfo{Lexeme: tok.Lexeme, Pos: ast.Pos{File: tok.File, Line: tok.Line, Column: tok.Column}}
}

// parsePostfix decorates a primary with trailing `++`/`--`, `[idx]`
// subscripts, and `.member` accesses, left to right.
func (p *Parser) parsePostfix(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	for {
		switch p.cur.Kind {
		case lexer.INCR, lexer.DECR:
			opTok := p.cur
			p.advance()
			post := ast.New(ast.UnaryOperator, p.tokenInfoFor(opTok))
			post.SubKind = ast.Postfix
			post.AddChild(p.toLValue(n))
			post.TypeID = n.TypeID
			n = post
		case lexer.LBRACKET:
			p.advance()
			if at := p.registry.GetType(typeregistry.TypeID(n.TypeID)); at == nil || !at.IsArray() {
				p.errorf("SEM007", p.curPos(), "subscript of non-array type")
			}
			idx := p.toRValue(p.parseExpr(16))
			p.expect(lexer.RBRACKET, "SYN004", "']'")
			sub := ast.New(ast.Variable, n.Token)
			sub.AddChild(idx)
			if t := p.registry.GetType(typeregistry.TypeID(n.TypeID)); t != nil && t.IsArray() {
				sub.TypeID = int(t.ElementID)
			}
			n = sub
		case lexer.DOT:
			p.advance()
			if !p.curIs(lexer.IDENT) {
				p.errorf("SYN005", p.curPos(), "expected member name after '.'")
				return n
			}
			memberTok := p.cur
			p.advance()
			member := ast.New(ast.MemberIdentifier, p.tokenInfoFor(memberTok))
			if t := p.registry.GetType(typeregistry.TypeID(n.TypeID)); t != nil {
				idx := t.MemberIndex(memberTok.Lexeme)
				if idx < 0 {
					p.errorf("SEM003", p.curPos(), "type %q has no member %q", t.Designation, memberTok.Lexeme)
				} else {
					member.Index = idx
					member.TypeID = int(t.Members[idx].TypeID)
				}
			}
			access := ast.New(ast.Variable, n.Token)
			access.AddChild(member)
			access.TypeID = member.TypeID
			n = access
		default:
			return n
		}
	}
}

// parsePrimary parses literals, parenthesized expressions, and
// identifiers (variable references or calls), resolving names against
// the Scope Chain as it goes.
func (p *Parser) parsePrimary() *ast.Node {
	switch p.cur.Kind {
	case lexer.INT:
		n := p.constantFromCur(ast.LiteralInt)
		n.TypeID = int(typeregistry.Int)
		p.advance()
		return n
	case lexer.FLOAT:
		n := p.constantFromCur(ast.LiteralFloat)
		n.TypeID = int(typeregistry.Float)
		p.advance()
		return n
	case lexer.CHAR:
		n := p.constantFromCur(ast.LiteralChar)
		n.TypeID = int(typeregistry.Char)
		p.advance()
		return n
	case lexer.STRING:
		n := p.constantFromCur(ast.LiteralString)
		n.TypeID = int(p.registry.GetTypeID("cstr"))
		p.advance()
		return n
	case lexer.TRUE, lexer.FALSE:
		n := ast.New(ast.ConstantValue, p.curTokenInfo())
		n.Value = ast.Value{Kind: ast.LiteralBool, Bool: p.cur.Kind == lexer.TRUE}
		n.TypeID = int(typeregistry.Bool)
		p.advance()
		return n
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr(16)
		p.expect(lexer.RPAREN, "SYN003", "')'")
		return inner
	case lexer.IDENT:
		return p.parseIdentifierExpr()
	}
	p.errorf("SYN001", p.curPos(), "unexpected token %q in expression", p.cur.Lexeme)
	p.advance()
	return nil
}

func (p *Parser) constantFromCur(kind ast.LiteralKind) *ast.Node {
	n := ast.New(ast.ConstantValue, p.curTokenInfo())
	v := ast.Value{Kind: kind}
	switch kind {
	case ast.LiteralInt:
		v.Int = parseIntLiteral(p.cur.Lexeme)
	case ast.LiteralFloat:
		v.Flt = parseFloatLiteral(p.cur.Lexeme)
	case ast.LiteralChar:
		if len(p.cur.Lexeme) > 0 {
			v.Chr = []rune(p.cur.Lexeme)[0]
		}
	case ast.LiteralString:
		v.Str = p.cur.Lexeme
	}
	n.Value = v
	return n
}

// parseIdentifierExpr disambiguates a bare identifier between a
// function call (name immediately followed by `(`) and a variable
// reference, resolving the latter against the Scope Chain.
func (p *Parser) parseIdentifierExpr() *ast.Node {
	nameTok := p.cur
	info := p.tokenInfoFor(nameTok)
	p.advance()

	if p.curIs(lexer.LPAREN) {
		return p.parseCall(nameTok.Lexeme, info)
	}

	decl, ok := p.scope.ResolveVariable(nameTok.Lexeme)
	n := ast.New(ast.Variable, info)
	if !ok {
		p.errorf("SEM002", info.Pos, "undeclared name %q", nameTok.Lexeme)
		return n
	}
	n.TypeID = decl.TypeID
	n.ResolvedRef = decl
	return n
}

func (p *Parser) parseCall(name string, info ast.TokenInfo) *ast.Node {
	p.expect(lexer.LPAREN, "SYN003", "'('")
	var args []*ast.Node
	if !p.curIs(lexer.RPAREN) {
		for {
			arg := p.toRValue(p.parseExpr(16))
			if arg != nil {
				args = append(args, arg)
			}
			if !p.curIs(lexer.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(lexer.RPAREN, "SYN003", "')'")

	call := ast.New(ast.FunctionCall, info)
	for _, a := range args {
		call.AddChild(a)
	}

	argTypes := make([]typeregistry.TypeID, len(args))
	for i, a := range args {
		argTypes[i] = typeregistry.TypeID(a.TypeID)
	}
	decl, ok := p.scope.ResolveFunction(name, argTypes)
	if !ok {
		p.errorf("SEM005", info.Pos, "no matching overload for call to %q", name)
		return call
	}
	call.ResolvedRef = decl
	call.TypeID = decl.TypeID
	return call
}

// toRValue wraps n in LValueToRValue unless it is already a value
// producer (literal, call result, or already-converted value).
func (p *Parser) toRValue(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.Variable, ast.Dereference:
		conv := ast.New(ast.LValueToRValue, n.Token)
		conv.AddChild(n)
		conv.TypeID = n.TypeID
		return conv
	default:
		return n
	}
}

// toLValue strips a previously-inserted LValueToRValue wrapper, for
// contexts (assignment targets, `&x`, `++x`) that need the location
// itself rather than its loaded value.
func (p *Parser) toLValue(n *ast.Node) *ast.Node {
	if n != nil && n.Kind == ast.LValueToRValue && len(n.Children) == 1 {
		return n.Children[0]
	}
	return n
}
