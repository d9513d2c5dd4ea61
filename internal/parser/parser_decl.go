package parser

import (
	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// parseTopLevel parses one top-level construct: an import, an
// optionally-exported function/type declaration, or a bare statement
// (spec.md's grammar allows module-scope variable declarations too).
func (p *Parser) parseTopLevel() *ast.Node {
	switch p.cur.Kind {
	case lexer.IMPORT:
		return p.parseImportDecl()
	case lexer.EXPORT:
		p.advance()
		decl := p.parseExportable()
		if decl != nil {
			decl.Flags |= ast.FlagExported
		}
		return decl
	default:
		return p.parseStatement()
	}
}

// parseExportable parses the declaration forms `export` may prefix:
// a function or a type. Anything else is a syntax error — `export` is
// a declaration-prefix keyword, not a general statement modifier.
func (p *Parser) parseExportable() *ast.Node {
	switch p.cur.Kind {
	case lexer.FUNCTION:
		return p.parseFunctionDecl()
	case lexer.TYPE:
		return p.parseTypeDecl()
	}
	p.errorf("SYN001", p.curPos(), "'export' must precede a function or type declaration, got %q", p.cur.Lexeme)
	return nil
}

// parseImportDecl parses `import "dependency-name";`. The name feeds
// the module system's Dependency Tree; it carries no runtime behavior
// of its own, so it produces a leaf ImportDeclaration node rather than
// anything the interpreter evaluates.
func (p *Parser) parseImportDecl() *ast.Node {
	info := p.curTokenInfo()
	p.advance()
	if !p.curIs(lexer.STRING) {
		p.errorf("SYN006", p.curPos(), "expected a quoted dependency name after 'import'")
		p.resync()
		return nil
	}
	nameTok := p.cur
	p.advance()
	p.expect(lexer.SEMICOLON, "SYN001", "';'")
	return ast.New(ast.ImportDeclaration, ast.TokenInfo{Lexeme: nameTok.Lexeme, Pos: info.Pos})
}

// parseStatement parses one statement per spec.md §4.4: a scope block,
// a control-flow form, a variable declaration, or an expression
// statement.
func (p *Parser) parseStatement() *ast.Node {
	switch p.cur.Kind {
	case lexer.LBRACE:
		return p.parseScopeBlock()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.FUNCTION:
		return p.parseFunctionDecl()
	case lexer.TYPE:
		return p.parseTypeDecl()
	case lexer.LET, lexer.CONST:
		return p.parseVariableDecl()
	}
	if p.looksLikeTypeStart() {
		return p.parseVariableDecl()
	}
	return p.parseExpressionStatement()
}

// parseScopeBlock parses `{ statements... }`, opening and closing a
// fresh lexical region in the Scope Chain (spec.md's scope-isolation
// invariant).
func (p *Parser) parseScopeBlock() *ast.Node {
	info := p.curTokenInfo()
	p.expect(lexer.LBRACE, "SYN002", "'{'")
	node := ast.New(ast.ScopeBlock, info)
	p.scope.Push()
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			node.AddChild(stmt)
		} else {
			p.resync()
		}
	}
	p.scope.Pop()
	p.expect(lexer.RBRACE, "SYN002", "'}'")
	return node
}

func (p *Parser) parseIfStatement() *ast.Node {
	info := p.curTokenInfo()
	p.advance()
	p.expect(lexer.LPAREN, "SYN003", "'('")
	cond := p.toRValue(p.parseExpr(16))
	p.expect(lexer.RPAREN, "SYN003", "')'")
	then := p.parseStatement()

	node := ast.New(ast.IfStatement, info)
	node.AddChild(cond)
	node.AddChild(then)
	if p.curIs(lexer.ELSE) {
		p.advance()
		node.AddChild(p.parseStatement())
	}
	return node
}

func (p *Parser) parseWhileStatement() *ast.Node {
	info := p.curTokenInfo()
	p.advance()
	p.expect(lexer.LPAREN, "SYN003", "'('")
	cond := p.toRValue(p.parseExpr(16))
	p.expect(lexer.RPAREN, "SYN003", "')'")
	body := p.parseStatement()

	node := ast.New(ast.WhileStatement, info)
	node.AddChild(cond)
	node.AddChild(body)
	return node
}

// parseForStatement parses the C-style three-clause `for`, opening one
// scope for the whole header so the init clause's variable is visible
// to the condition, step, and body.
func (p *Parser) parseForStatement() *ast.Node {
	info := p.curTokenInfo()
	p.advance()
	p.expect(lexer.LPAREN, "SYN003", "'('")

	p.scope.Push()
	var initNode *ast.Node
	if !p.curIs(lexer.SEMICOLON) {
		initNode = p.parseForInit()
	} else {
		p.advance()
	}

	var condNode *ast.Node
	if !p.curIs(lexer.SEMICOLON) {
		condNode = p.toRValue(p.parseExpr(16))
	}
	p.expect(lexer.SEMICOLON, "SYN001", "';'")

	var stepNode *ast.Node
	if !p.curIs(lexer.RPAREN) {
		stepNode = p.toRValue(p.parseExpr(16))
	}
	p.expect(lexer.RPAREN, "SYN003", "')'")

	body := p.parseStatement()
	p.scope.Pop()

	node := ast.New(ast.ForStatement, info)
	node.AddChild(orEmptyStatement(initNode, info))
	node.AddChild(orEmptyStatement(condNode, info))
	node.AddChild(orEmptyStatement(stepNode, info))
	node.AddChild(body)
	return node
}

func orEmptyStatement(n *ast.Node, info ast.TokenInfo) *ast.Node {
	if n != nil {
		return n
	}
	return ast.New(ast.Statement, info)
}

// parseForInit parses the init clause of a `for` header: either a
// variable declaration or a bare expression, consuming the clause's
// trailing `;` either way.
func (p *Parser) parseForInit() *ast.Node {
	if p.curIs(lexer.LET) || p.curIs(lexer.CONST) || p.looksLikeTypeStart() {
		return p.parseVariableDecl()
	}
	expr := p.toRValue(p.parseExpr(16))
	p.expect(lexer.SEMICOLON, "SYN001", "';'")
	return expr
}

func (p *Parser) parseReturnStatement() *ast.Node {
	info := p.curTokenInfo()
	p.advance()
	node := ast.New(ast.ReturnStatement, info)
	if !p.curIs(lexer.SEMICOLON) {
		node.AddChild(p.toRValue(p.parseExpr(16)))
	}
	p.expect(lexer.SEMICOLON, "SYN001", "';'")
	return node
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	info := p.curTokenInfo()
	expr := p.parseExpr(16)
	p.expect(lexer.SEMICOLON, "SYN001", "';'")
	if expr == nil {
		return nil
	}
	wrapper := ast.New(ast.Expression, info)
	wrapper.AddChild(p.toRValue(expr))
	stmt := ast.New(ast.Statement, info)
	stmt.AddChild(wrapper)
	return stmt
}

// parseVariableDecl parses all three declaration spellings spec.md §8's
// examples use: `let name [: Type] = expr;`, `Type name [= expr];`, and
// a leading `const` modifier on the typed form.
func (p *Parser) parseVariableDecl() *ast.Node {
	info := p.curTokenInfo()
	isConst := false
	if p.curIs(lexer.CONST) {
		isConst = true
		p.advance()
		info = p.curTokenInfo()
	}

	var (
		name     string
		nameInfo ast.TokenInfo
		typeID   typeregistry.TypeID
		init     *ast.Node
	)

	if p.curIs(lexer.LET) {
		p.advance()
		if !p.curIs(lexer.IDENT) {
			p.errorf("SYN005", p.curPos(), "expected identifier after 'let'")
			p.resync()
			return nil
		}
		name, nameInfo = p.cur.Lexeme, p.curTokenInfo()
		p.advance()
		typeID = typeregistry.InvalidTypeID
		if p.curIs(lexer.COLON) {
			p.advance()
			typeID = p.parseTypeExpr()
		}
		p.expect(lexer.ASSIGN, "SYN001", "'='")
		init = p.toRValue(p.parseExpr(16))
		if typeID == typeregistry.InvalidTypeID && init != nil {
			typeID = typeregistry.TypeID(init.TypeID)
		}
	} else {
		typeID = p.parseTypeExpr()
		if !p.curIs(lexer.IDENT) {
			p.errorf("SYN005", p.curPos(), "expected identifier in declaration")
			p.resync()
			return nil
		}
		name, nameInfo = p.cur.Lexeme, p.curTokenInfo()
		p.advance()
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			init = p.toRValue(p.parseExpr(16))
		}
	}
	p.expect(lexer.SEMICOLON, "SYN001", "';'")

	node := ast.New(ast.VariableDeclaration, ast.TokenInfo{Lexeme: name, Pos: nameInfo.Pos})
	node.TypeID = int(typeID)
	if isConst {
		node.SubKind = ast.Const
	}
	if init != nil {
		node.AddChild(init)
	}

	if !p.scope.DeclareVariable(node) {
		p.errorf("SEM001", nameInfo.Pos, "%q is already declared in this scope", name)
	}
	_ = info
	return node
}

// parseFunctionDecl parses `function name(Type param, ...) : ReturnType
// { body }`. The declaration is registered in the enclosing scope
// before its body is parsed, so recursive calls resolve; parameters and
// the body share one pushed frame.
func (p *Parser) parseFunctionDecl() *ast.Node {
	info := p.curTokenInfo()
	p.advance()
	if !p.curIs(lexer.IDENT) {
		p.errorf("SYN005", p.curPos(), "expected function name")
		p.resync()
		return nil
	}
	name := p.cur.Lexeme
	p.advance()

	node := ast.New(ast.FunctionDeclaration, ast.TokenInfo{Lexeme: name, Pos: info.Pos})
	p.scope.DeclareFunction(node)

	p.expect(lexer.LPAREN, "SYN003", "'('")
	p.scope.Push()
	if !p.curIs(lexer.RPAREN) {
		for {
			pType := p.parseTypeExpr()
			if !p.curIs(lexer.IDENT) {
				p.errorf("SYN005", p.curPos(), "expected parameter name")
				break
			}
			pName := p.cur.Lexeme
			pInfo := p.curTokenInfo()
			p.advance()
			pNode := ast.New(ast.VariableDeclaration, ast.TokenInfo{Lexeme: pName, Pos: pInfo.Pos})
			pNode.TypeID = int(pType)
			p.scope.DeclareVariable(pNode)
			node.AddChild(pNode)
			if !p.curIs(lexer.COMMA) {
				break
			}
			p.advance()
		}
	}
	p.expect(lexer.RPAREN, "SYN003", "')'")
	p.expect(lexer.COLON, "SYN001", "':'")
	retType := p.parseTypeExpr()
	node.TypeID = int(retType)

	body := ast.New(ast.ScopeBlock, p.curTokenInfo())
	p.expect(lexer.LBRACE, "SYN002", "'{'")
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body.AddChild(stmt)
		} else {
			p.resync()
		}
	}
	p.expect(lexer.RBRACE, "SYN002", "'}'")
	p.scope.Pop()

	node.AddChild(body)
	return node
}

// parseTypeDecl parses `type Name { member; ... }`, where each member is
// spelled either `Type name` (the typed form shared with variable
// declarations) or `let name : Type` (the form the Module Interface
// format's §4.6 `type Name { let m: T; ... }` serialization uses, so
// that re-parsing a saved interface is just an ordinary parse). It
// registers the composite with the Type Registry and binds its name in
// the Scope Chain.
func (p *Parser) parseTypeDecl() *ast.Node {
	info := p.curTokenInfo()
	p.advance()
	if !p.curIs(lexer.IDENT) {
		p.errorf("SYN005", p.curPos(), "expected type name")
		p.resync()
		return nil
	}
	name := p.cur.Lexeme
	p.advance()

	p.expect(lexer.LBRACE, "SYN002", "'{'")
	var members []typeregistry.Member
	node := ast.New(ast.TypeDeclaration, ast.TokenInfo{Lexeme: name, Pos: info.Pos})
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		var mType typeregistry.TypeID
		var mName string
		var mInfo ast.TokenInfo

		if p.curIs(lexer.LET) {
			p.advance()
			if !p.curIs(lexer.IDENT) {
				p.errorf("SYN005", p.curPos(), "expected member name after 'let'")
				p.resync()
				continue
			}
			mName, mInfo = p.cur.Lexeme, p.curTokenInfo()
			p.advance()
			p.expect(lexer.COLON, "SYN001", "':'")
			mType = p.parseTypeExpr()
		} else {
			mType = p.parseTypeExpr()
			if !p.curIs(lexer.IDENT) {
				p.errorf("SYN005", p.curPos(), "expected member name")
				p.resync()
				continue
			}
			mName, mInfo = p.cur.Lexeme, p.curTokenInfo()
			p.advance()
		}

		var defaultNode *ast.Node
		var defaultValue interface{}
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			defaultNode = p.parseExpr(16)
			defaultValue = literalGoValue(defaultNode)
		}
		p.expect(lexer.SEMICOLON, "SYN001", "';'")

		members = append(members, typeregistry.Member{Name: mName, TypeID: mType, Default: defaultValue})
		mNode := ast.New(ast.VariableDeclaration, ast.TokenInfo{Lexeme: mName, Pos: mInfo.Pos})
		mNode.TypeID = int(mType)
		if defaultNode != nil {
			mNode.AddChild(defaultNode)
		}
		node.AddChild(mNode)
	}
	p.expect(lexer.RBRACE, "SYN002", "'}'")

	id := p.registry.RegisterUserType(name, members)
	node.TypeID = int(id)
	if !p.scope.DeclareType(name, id) {
		p.errorf("SEM001", info.Pos, "type %q is already declared in this scope", name)
	}
	return node
}
