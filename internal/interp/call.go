package interp

import (
	"fmt"

	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// execCall evaluates a FunctionCall: the callee was already resolved at
// parse time (node.ResolvedRef, cached by internal/parser's parseCall),
// so there is no runtime name lookup — only argument evaluation and
// dispatch to either a registered host builtin or a user function body.
func (it *Interpreter) execCall(node *ast.Node) (Value, error) {
	decl := node.ResolvedRef
	if decl == nil {
		return nil, fmt.Errorf("interp: call to %q has no resolved declaration", node.Token.Lexeme)
	}

	args := make([]Value, len(node.Children))
	for i, a := range node.Children {
		v, err := it.Execute(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if decl.Flags.Has(ast.FlagBuiltin) {
		fn, ok := it.builtins[decl.Token.Lexeme]
		if !ok {
			return nil, fmt.Errorf("interp: no host implementation registered for builtin %q", decl.Token.Lexeme)
		}
		return fn(args)
	}
	return it.callFunction(decl, args)
}

// callFunction binds args into a fresh frame chained to the global
// environment — not the caller's current one — so a function only ever
// sees its own parameters and process-wide globals, matching the
// parser's lexical (not dynamic) static resolution: a FunctionDeclaration
// body only ever names its own params or names declared outside every
// function (spec.md §4.5's scoping rule).
func (it *Interpreter) callFunction(decl *ast.Node, args []Value) (Value, error) {
	params := decl.Children[:len(decl.Children)-1]
	body := decl.Children[len(decl.Children)-1]

	callerEnv := it.env
	savedReturning, savedReturnValue := it.returning, it.returnValue

	frame := NewEnvironment(it.global)
	for i, p := range params {
		v := Value(VoidValue{})
		if i < len(args) {
			v = it.convert(args[i], typeregistry.TypeID(p.TypeID))
		}
		frame.Declare(p.Token.Lexeme, v)
	}

	it.env = frame
	it.returning = false
	it.returnValue = VoidValue{}

	_, err := it.Execute(body)
	result := it.returnValue

	it.env = callerEnv
	it.returning = savedReturning
	it.returnValue = savedReturnValue

	if err != nil {
		return nil, err
	}
	return result, nil
}
