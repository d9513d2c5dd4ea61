package interp

import (
	"fmt"
	"io"

	"github.com/sunholo/tesserac/internal/ast"
	terrors "github.com/sunholo/tesserac/internal/errors"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// Interpreter is the tree-walking evaluator (spec.md §4.7): its own
// runtime scope stack (Environment), a heap of allocated arrays tracked
// for teardown the way the original Interpreter::~Interpreter frees
// `_allocated_arrays`, and a return-value slot the block evaluators
// check after every statement to short-circuit on `return`.
type Interpreter struct {
	registry *typeregistry.Registry
	global   *Environment
	env      *Environment

	builtins map[string]BuiltinFunc
	stdout   io.Writer

	heap []*ArrayValue

	returning   bool
	returnValue Value
}

// Option configures a new Interpreter.
type Option func(*Interpreter)

// WithStdout redirects the default `print` builtin's output, used by
// tests and by a CLI driver that wants to capture or colorize it.
func WithStdout(w io.Writer) Option {
	return func(it *Interpreter) { it.stdout = w }
}

// New builds an Interpreter sharing registry with the parser that
// produced the AST it will execute — the Type Registry is the one
// process-wide resource spec.md §5 names, so interpretation must read
// the same records parsing wrote.
func New(registry *typeregistry.Registry, opts ...Option) *Interpreter {
	it := &Interpreter{
		registry: registry,
		builtins: make(map[string]BuiltinFunc),
		stdout:   defaultStdout(),
	}
	it.global = NewEnvironment(nil)
	it.env = it.global
	for _, opt := range opts {
		opt(it)
	}
	it.registerDefaultBuiltins()
	return it
}

// Close releases the interpreter's tracked array storage. Go's
// collector will reclaim the backing slices regardless; this exists so
// the Interpreter has an explicit teardown boundary mirroring the
// original's destructor, and so an embedder can assert nothing
// allocated during one run leaks into the next if it chooses to pool
// Interpreters.
func (it *Interpreter) Close() {
	it.heap = nil
}

// Run executes every top-level child of root in order (spec.md §4.7's
// Root/Scope semantics) and returns the value of a top-level `return`,
// or the last statement's value if none was returned.
func (it *Interpreter) Run(root *ast.Node) (Value, error) {
	v, err := it.Execute(root)
	if err != nil {
		return nil, err
	}
	if it.returning {
		return it.returnValue, nil
	}
	return v, nil
}

// Execute dispatches on node.Kind. Every case mirrors one entry of
// spec.md §4.7's semantics table; the grounding source is the original
// Interpreter::execute's single switch, restructured as explicit error
// returns instead of the source's error()/warn() side-effecting logger.
func (it *Interpreter) Execute(node *ast.Node) (Value, error) {
	if node == nil {
		return VoidValue{}, nil
	}
	switch node.Kind {
	case ast.Root:
		// The root runs directly in the global frame (not a pushed
		// child of it): top-level declarations are what `it.global`
		// *is*, and every function call's frame chains straight to
		// it.global, so a function body must see them there.
		return it.execChildren(node)
	case ast.ScopeBlock:
		return it.execScoped(node)
	case ast.Statement:
		return it.execSequenceChild(node)
	case ast.Expression:
		return it.execSequenceChild(node)
	case ast.IfStatement:
		return it.execIf(node)
	case ast.WhileStatement:
		return it.execWhile(node)
	case ast.ForStatement:
		return it.execFor(node)
	case ast.ReturnStatement:
		return it.execReturn(node)
	case ast.VariableDeclaration:
		return it.execVariableDecl(node)
	case ast.FunctionDeclaration, ast.TypeDeclaration, ast.ImportDeclaration:
		// Declarations are fully resolved at parse time (the
		// FunctionDeclaration's body is interpreted lazily, on call);
		// visiting one as a statement is a no-op.
		return VoidValue{}, nil
	case ast.Variable:
		cell, err := it.cellFor(node)
		if err != nil {
			return nil, err
		}
		return *cell, nil
	case ast.LValueToRValue:
		return it.Execute(node.Children[0])
	case ast.BinaryOperator:
		return it.execBinary(node)
	case ast.UnaryOperator:
		return it.execUnary(node)
	case ast.FunctionCall:
		return it.execCall(node)
	case ast.ConstantValue:
		return constantValue(node), nil
	case ast.GetPointer:
		cell, err := it.cellFor(node.Children[0])
		if err != nil {
			return nil, err
		}
		return &PointerValue{Cell: cell}, nil
	case ast.Dereference:
		return it.execDereference(node)
	case ast.Cast:
		return it.execCast(node)
	}
	return nil, fmt.Errorf("interp: unhandled node kind %s", node.Kind)
}

// execScoped pushes a fresh Environment frame, runs every child in
// order, and pops it again — the runtime analog of internal/scope's
// Push/Pop around a ScopeBlock. A `for` header gets its frame in
// execFor, and Root runs directly in the global frame.
func (it *Interpreter) execScoped(node *ast.Node) (Value, error) {
	parent := it.env
	it.env = NewEnvironment(parent)
	v, err := it.execChildren(node)
	it.env = parent
	return v, err
}

func (it *Interpreter) execChildren(node *ast.Node) (Value, error) {
	var last Value = VoidValue{}
	for _, child := range node.Children {
		v, err := it.Execute(child)
		if err != nil {
			return nil, err
		}
		last = v
		if it.returning {
			break
		}
	}
	return last, nil
}

// execSequenceChild handles Statement and Expression, both single-child
// "transparent" wrappers the optimizer may already have collapsed (for
// Expression) or never inserted (a Statement with no expression, e.g.
// an empty `for` clause).
func (it *Interpreter) execSequenceChild(node *ast.Node) (Value, error) {
	if len(node.Children) == 0 {
		return VoidValue{}, nil
	}
	return it.Execute(node.Children[0])
}

func (it *Interpreter) execIf(node *ast.Node) (Value, error) {
	cond, err := it.Execute(node.Children[0])
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return it.Execute(node.Children[1])
	}
	if len(node.Children) > 2 {
		return it.Execute(node.Children[2])
	}
	return VoidValue{}, nil
}

func (it *Interpreter) execWhile(node *ast.Node) (Value, error) {
	var last Value = VoidValue{}
	for {
		cond, err := it.Execute(node.Children[0])
		if err != nil {
			return nil, err
		}
		if !truthy(cond) {
			break
		}
		last, err = it.Execute(node.Children[1])
		if err != nil {
			return nil, err
		}
		if it.returning {
			break
		}
	}
	return last, nil
}

// execFor runs the init clause once in its own frame, then repeatedly
// evaluates cond/body/step in that same frame until cond is false or a
// `return` fires — spec.md §4.7: "for initializer and step run in the
// loop's own scope."
func (it *Interpreter) execFor(node *ast.Node) (Value, error) {
	parent := it.env
	it.env = NewEnvironment(parent)
	defer func() { it.env = parent }()

	if _, err := it.Execute(node.Children[0]); err != nil {
		return nil, err
	}

	var last Value = VoidValue{}
	for {
		if !isEmptyClause(node.Children[1]) {
			cond, err := it.Execute(node.Children[1])
			if err != nil {
				return nil, err
			}
			if !truthy(cond) {
				break
			}
		}
		var err error
		last, err = it.Execute(node.Children[3])
		if err != nil {
			return nil, err
		}
		if it.returning {
			break
		}
		if _, err := it.Execute(node.Children[2]); err != nil {
			return nil, err
		}
	}
	return last, nil
}

// isEmptyClause reports whether a for-header clause is the synthetic
// empty Statement parseForStatement's orEmptyStatement substitutes for
// an omitted init/cond/step.
func isEmptyClause(n *ast.Node) bool {
	return n.Kind == ast.Statement && len(n.Children) == 0
}

func (it *Interpreter) execReturn(node *ast.Node) (Value, error) {
	var v Value = VoidValue{}
	if len(node.Children) > 0 {
		val, err := it.Execute(node.Children[0])
		if err != nil {
			return nil, err
		}
		v = val
	}
	it.returnValue = v
	it.returning = true
	return v, nil
}

func (it *Interpreter) execVariableDecl(node *ast.Node) (Value, error) {
	t := it.registry.GetType(typeregistry.TypeID(node.TypeID))
	var val Value
	if len(node.Children) > 0 {
		v, err := it.Execute(node.Children[0])
		if err != nil {
			return nil, err
		}
		val = it.convert(v, typeregistry.TypeID(node.TypeID))
	} else {
		val = it.zeroValue(t)
	}
	it.env.Declare(node.Token.Lexeme, val)
	return val, nil
}

func (it *Interpreter) execCast(node *ast.Node) (Value, error) {
	v, err := it.Execute(node.Children[0])
	if err != nil {
		return nil, err
	}
	return it.convert(v, typeregistry.TypeID(node.TypeID)), nil
}

func (it *Interpreter) execDereference(node *ast.Node) (Value, error) {
	v, err := it.Execute(node.Children[0])
	if err != nil {
		return nil, err
	}
	ptr, ok := v.(*PointerValue)
	if !ok || ptr.Cell == nil {
		return nil, it.runtimeError(terrors.RT003, node, "dereference of a null pointer")
	}
	return *ptr.Cell, nil
}

func (it *Interpreter) runtimeError(code string, node *ast.Node, msg string) error {
	return terrors.WrapReport(terrors.New(code, "runtime", msg, node.Position()))
}
