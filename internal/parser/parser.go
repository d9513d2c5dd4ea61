// Package parser implements the recursive-descent parser with
// precedence-climbing expression parsing: it consumes a token stream,
// enforces syntax, resolves names against a Scope Chain, and attaches
// TypeIDs via a Type Registry as it builds the tagged-variant AST.
package parser

import (
	"fmt"

	"github.com/sunholo/tesserac/internal/ast"
	terrors "github.com/sunholo/tesserac/internal/errors"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/scope"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// Parser holds the two-token lookahead window the grammar needs, plus
// the semantic context (Scope Chain, Type Registry) kept separate from
// pure syntax.
type Parser struct {
	lex *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	registry *typeregistry.Registry
	scope    *scope.Chain

	file   string
	errors []error
}

// New creates a Parser over lex, sharing registry (the process-wide
// Type Registry) and constructing a fresh Scope Chain rooted at the
// global scope.
func New(lex *lexer.Lexer, registry *typeregistry.Registry, file string) *Parser {
	p := &Parser{
		lex:      lex,
		registry: registry,
		scope:    scope.New(registry),
		file:     file,
	}
	declareBuiltins(p.scope, registry)
	p.advance()
	p.advance()
	return p
}

// declareBuiltins registers the host functions spec.md §4.7 calls out
// (`print`) in the global scope so ordinary call resolution finds them
// like any other overload, rather than special-casing the callee name
// in the grammar. FlagBuiltin plus FlagVariadic together mean: accept
// any argument list, and resolve to a host implementation by name
// instead of a parsed body (internal/interp.RegisterBuiltin).
func declareBuiltins(chain *scope.Chain, registry *typeregistry.Registry) {
	print := ast.New(ast.FunctionDeclaration, ast.TokenInfo{Lexeme: "print"})
	print.Flags |= ast.FlagBuiltin | ast.FlagVariadic
	print.TypeID = int(typeregistry.Void)
	chain.DeclareFunction(print)
}

// Errors returns every diagnostic collected while parsing.
func (p *Parser) Errors() []error {
	return p.errors
}

func (p *Parser) advance() {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		p.errors = append(p.errors, err)
		// Surface an ILLEGAL token rather than aborting the whole scan;
		// the parser's own resync handles recovery from here.
		p.peek = lexer.Token{Kind: lexer.ILLEGAL, Lexeme: "", File: p.file}
		return
	}
	p.peek = tok
}

func (p *Parser) curPos() ast.Pos {
	return ast.Pos{File: p.cur.File, Line: p.cur.Line, Column: p.cur.Column}
}

func (p *Parser) peekPos() ast.Pos {
	return ast.Pos{File: p.peek.File, Line: p.peek.Line, Column: p.peek.Column}
}

func (p *Parser) curTokenInfo() ast.TokenInfo {
	return ast.TokenInfo{Lexeme: p.cur.Lexeme, Pos: p.curPos()}
}

func (p *Parser) curIs(k lexer.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k lexer.Kind) bool { return p.peek.Kind == k }

// expect advances past the current token if it matches k, else reports
// a structured error and returns false.
func (p *Parser) expect(k lexer.Kind, code string, what string) bool {
	if p.curIs(k) {
		p.advance()
		return true
	}
	p.errorf(code, p.curPos(), "expected %s, got %q", what, p.cur.Lexeme)
	return false
}

func (p *Parser) errorf(code string, at ast.Pos, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	info, _ := terrors.GetErrorInfo(code)
	rep := terrors.New(code, info.Phase, msg, at)
	p.errors = append(p.errors, terrors.WrapReport(rep))
}

// resync discards tokens until a statement boundary (`;` or `}`) or
// EOF, so one syntax error doesn't prevent collecting the rest. This is
// the "quality of implementation" recovery spec.md §7 permits.
func (p *Parser) resync() {
	for !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		p.advance()
	}
	if p.curIs(lexer.SEMICOLON) {
		p.advance()
	}
}

// Parse runs the grammar's entry production: a sequence of top-level
// declarations and statements until end-of-file. It returns the built
// *ast.File alongside any diagnostics collected; a non-empty error list
// means the AST may be partial.
func Parse(lex *lexer.Lexer, registry *typeregistry.Registry, file string) (*ast.File, []error) {
	p := New(lex, registry, file)
	root := ast.NewFile(file)

	for !p.curIs(lexer.EOF) {
		stmt := p.parseTopLevel()
		if stmt != nil {
			root.Node.AddChild(stmt)
		}
		if len(p.errors) > 0 && stmt == nil {
			p.resync()
		}
	}

	return root, p.errors
}
