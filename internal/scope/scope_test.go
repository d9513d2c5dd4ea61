package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

func varDecl(name string) *ast.Node {
	return ast.New(ast.VariableDeclaration, ast.TokenInfo{Lexeme: name})
}

func funcDecl(name string, flags ast.Flags, paramTypeIDs ...int) *ast.Node {
	n := ast.New(ast.FunctionDeclaration, ast.TokenInfo{Lexeme: name})
	n.Flags = flags
	for _, id := range paramTypeIDs {
		p := ast.New(ast.VariableDeclaration, ast.TokenInfo{})
		p.TypeID = id
		n.AddChild(p)
	}
	n.AddChild(ast.New(ast.ScopeBlock, ast.TokenInfo{})) // body
	return n
}

func TestDeclareVariableRejectsRedeclarationInSameScope(t *testing.T) {
	c := New(typeregistry.New())
	require.True(t, c.DeclareVariable(varDecl("x")))
	assert.False(t, c.DeclareVariable(varDecl("x")))
}

func TestScopeIsolation(t *testing.T) {
	c := New(typeregistry.New())
	c.Push()
	c.DeclareVariable(varDecl("inner"))

	_, ok := c.ResolveVariable("inner")
	assert.True(t, ok, "inner variable must resolve while its scope is active")

	c.Pop()

	_, ok = c.ResolveVariable("inner")
	assert.False(t, ok, "inner variable must not resolve once its scope is popped")
}

func TestResolveVariableWalksInnermostToOutermost(t *testing.T) {
	c := New(typeregistry.New())
	outer := varDecl("x")
	c.DeclareVariable(outer)

	c.Push()
	inner := varDecl("x")
	c.DeclareVariable(inner)

	found, ok := c.ResolveVariable("x")
	require.True(t, ok)
	assert.Same(t, inner, found)

	c.Pop()
	found, ok = c.ResolveVariable("x")
	require.True(t, ok)
	assert.Same(t, outer, found)
}

func TestResolveFunctionExactArityAndTypeMatch(t *testing.T) {
	r := typeregistry.New()
	c := New(r)
	f := funcDecl("add", ast.FlagNone, int(typeregistry.Int), int(typeregistry.Int))
	c.DeclareFunction(f)

	found, ok := c.ResolveFunction("add", []typeregistry.TypeID{typeregistry.Int, typeregistry.Int})
	require.True(t, ok)
	assert.Same(t, f, found)

	_, ok = c.ResolveFunction("add", []typeregistry.TypeID{typeregistry.Int})
	assert.False(t, ok, "wrong arity must not match")
}

func TestResolveFunctionVariadicAlwaysMatches(t *testing.T) {
	r := typeregistry.New()
	c := New(r)
	f := funcDecl("printf", ast.FlagVariadic, int(typeregistry.CString))
	c.DeclareFunction(f)

	found, ok := c.ResolveFunction("printf", []typeregistry.TypeID{typeregistry.Int, typeregistry.Float, typeregistry.Bool})
	require.True(t, ok)
	assert.Same(t, f, found)
}

func TestResolveFunctionGenericPointerParameterMatchesAnyPointer(t *testing.T) {
	r := typeregistry.New()
	c := New(r)
	f := funcDecl("free", ast.FlagNone, int(typeregistry.Pointer))
	c.DeclareFunction(f)

	intPtr := r.GetPointerTo(typeregistry.Int)
	found, ok := c.ResolveFunction("free", []typeregistry.TypeID{intPtr})
	require.True(t, ok)
	assert.Same(t, f, found)
}

func TestResolveFunctionFirstMatchWins(t *testing.T) {
	r := typeregistry.New()
	c := New(r)

	outer := funcDecl("id", ast.FlagNone, int(typeregistry.Pointer))
	c.DeclareFunction(outer)

	c.Push()
	inner := funcDecl("id", ast.FlagNone, int(typeregistry.Int))
	c.DeclareFunction(inner)

	found, ok := c.ResolveFunction("id", []typeregistry.TypeID{typeregistry.Int})
	require.True(t, ok)
	assert.Same(t, inner, found, "innermost matching candidate must win even though an outer, less-specific one also matches")
}

func TestDeclareTypeRejectsRedeclarationInSameScope(t *testing.T) {
	c := New(typeregistry.New())
	require.True(t, c.DeclareType("Point", typeregistry.TypeID(100)))
	assert.False(t, c.DeclareType("Point", typeregistry.TypeID(101)))
}

func TestResolveTypeWalksInnermostToOutermost(t *testing.T) {
	c := New(typeregistry.New())
	c.DeclareType("Point", typeregistry.TypeID(100))

	c.Push()
	id, ok := c.ResolveType("Point")
	require.True(t, ok)
	assert.Equal(t, typeregistry.TypeID(100), id)
}
