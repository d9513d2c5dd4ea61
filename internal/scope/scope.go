// Package scope implements the Scope Chain: a stack of lexical scopes
// holding variable declarations, function overload sets, and type
// bindings, with innermost-to-outermost name resolution.
package scope

import (
	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// scopeFrame is one lexical region: a scope block, a function body, or a
// for/while header. Variable and type names are unique within a scope;
// functions form an overload multimap, per spec.md's divergence from
// the original (which allows only one function per name).
type scopeFrame struct {
	variables map[string]*ast.Node
	functions map[string][]*ast.Node
	types     map[string]typeregistry.TypeID
}

func newFrame() *scopeFrame {
	return &scopeFrame{
		variables: make(map[string]*ast.Node),
		functions: make(map[string][]*ast.Node),
		types:     make(map[string]typeregistry.TypeID),
	}
}

// Chain is the Scope Chain: push()/pop() are paired by lexical region,
// and every declare/resolve operation works against the current stack.
type Chain struct {
	frames   []*scopeFrame
	registry *typeregistry.Registry
}

// New builds a Chain with a single (global) frame already pushed.
// registry is consulted by ResolveFunction's generic-pointer matching
// rule.
func New(registry *typeregistry.Registry) *Chain {
	c := &Chain{registry: registry}
	c.Push()
	return c
}

// Push opens a new lexical region.
func (c *Chain) Push() {
	c.frames = append(c.frames, newFrame())
}

// Pop closes the innermost lexical region. Names declared in it stop
// being resolvable (spec.md invariant "scope isolation").
func (c *Chain) Pop() {
	if len(c.frames) == 0 {
		return
	}
	c.frames = c.frames[:len(c.frames)-1]
}

func (c *Chain) innermost() *scopeFrame {
	return c.frames[len(c.frames)-1]
}

// DeclareVariable adds decl to the innermost scope, keyed by
// decl.Token.Lexeme. Returns false if the name is already declared in
// that same scope (caller reports Redeclaration).
func (c *Chain) DeclareVariable(decl *ast.Node) bool {
	f := c.innermost()
	name := decl.Token.Lexeme
	if _, exists := f.variables[name]; exists {
		return false
	}
	f.variables[name] = decl
	return true
}

// DeclareFunction appends decl to the innermost scope's overload set
// for its name. Signature collisions are not checked here; they
// surface at call-resolution time per spec.md §4.3.
func (c *Chain) DeclareFunction(decl *ast.Node) {
	f := c.innermost()
	name := decl.Token.Lexeme
	f.functions[name] = append(f.functions[name], decl)
}

// DeclareType binds name to id in the innermost scope. Returns false if
// the name is already declared in that same scope.
func (c *Chain) DeclareType(name string, id typeregistry.TypeID) bool {
	f := c.innermost()
	if _, exists := f.types[name]; exists {
		return false
	}
	f.types[name] = id
	return true
}

// ResolveVariable walks innermost to outermost and returns the first
// declaration found.
func (c *Chain) ResolveVariable(name string) (*ast.Node, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if decl, ok := c.frames[i].variables[name]; ok {
			return decl, true
		}
	}
	return nil, false
}

// ResolveType walks innermost to outermost and returns the first
// binding found.
func (c *Chain) ResolveType(name string) (typeregistry.TypeID, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if id, ok := c.frames[i].types[name]; ok {
			return id, true
		}
	}
	return typeregistry.InvalidTypeID, false
}

// ResolveFunction implements spec.md §4.3's overload matching: for each
// candidate in innermost-to-outermost, declaration order, a candidate
// matches when either it is Variadic, or its arity equals len(argTypes)
// and every argument type equals the corresponding parameter type OR
// the parameter is the generic `pointer` type and the argument is any
// pointer type. The first match wins.
func (c *Chain) ResolveFunction(name string, argTypes []typeregistry.TypeID) (*ast.Node, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		for _, candidate := range c.frames[i].functions[name] {
			if c.matches(candidate, argTypes) {
				return candidate, true
			}
		}
	}
	return nil, false
}

func (c *Chain) matches(decl *ast.Node, argTypes []typeregistry.TypeID) bool {
	if decl.Flags.Has(ast.FlagVariadic) {
		return true
	}
	params := paramTypes(decl)
	if len(params) != len(argTypes) {
		return false
	}
	for i, paramID := range params {
		if paramID == argTypes[i] {
			continue
		}
		if paramID == typeregistry.Pointer && c.isPointer(argTypes[i]) {
			continue
		}
		return false
	}
	return true
}

func (c *Chain) isPointer(id typeregistry.TypeID) bool {
	if c.registry == nil {
		return false
	}
	t := c.registry.GetType(id)
	return t != nil && t.IsPointer()
}

// paramTypes reads the parameter TypeIDs off a FunctionDeclaration
// node's children, excluding the trailing body node.
func paramTypes(decl *ast.Node) []typeregistry.TypeID {
	if len(decl.Children) == 0 {
		return nil
	}
	params := decl.Children[:len(decl.Children)-1]
	ids := make([]typeregistry.TypeID, len(params))
	for i, p := range params {
		ids[i] = typeregistry.TypeID(p.TypeID)
	}
	return ids
}
