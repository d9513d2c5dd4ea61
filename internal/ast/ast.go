// Package ast defines the tagged-variant abstract syntax tree produced by
// the parser. Every node, regardless of grammatical role, is represented
// by the same Node struct; callers dispatch on Kind rather than on a Go
// type switch over a class hierarchy. This mirrors the arena-friendly
// "pop child, reparent under a new operator" surgery the parser performs
// during precedence climbing: a single struct shape means that surgery
// never has to juggle incompatible node types.
package ast

import "fmt"

// Pos is a single point in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open range in a source file, used for caret diagnostics
// that need to highlight more than one token (e.g. an unterminated
// string literal, or an unmatched brace naming the line it opened on).
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s:%d:%d-%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s (%s to %s)", s.Start.File, s.Start, s.End)
}

// Kind discriminates the variant a Node represents. The field layout of
// Node is shared across all kinds; Kind says which fields are meaningful
// and how Children is laid out.
type Kind int

const (
	Invalid Kind = iota

	Root       // Children: top-level statements. One per translation unit.
	ScopeBlock // Children: statements. Pushes a lexical scope.
	Statement  // Children: [expr-or-control]. A bare statement wrapper.
	Expression // Children: [inner]. Collapsed to inner by the optimizer.

	IfStatement     // Children: [cond, then, else?]
	WhileStatement  // Children: [cond, body]
	ForStatement    // Children: [init, cond, step, body]
	ReturnStatement // Children: [value?]

	VariableDeclaration // Children: [initializer?]. Name in Token, type in TypeID.
	Variable            // Children: [index] or [member...]. Name in Token.
	FunctionDeclaration // Children: [param-decls..., body]. Name in Token.
	FunctionCall        // Children: [args...]. Callee name in Token.
	TypeDeclaration     // Children: [member-decls...]. Name in Token.
	MemberIdentifier    // No children. Member name in Token, index in Index.

	ConstantValue  // No children. Literal payload in Value.
	Cast           // Children: [source]. Target type in TypeID.
	LValueToRValue // Children: [lvalue]. Inserted by the parser.
	GetPointer     // Children: [lvalue]. `&x`.
	Dereference    // Children: [pointer]. `*p`.
	UnaryOperator  // Children: [operand]. Op in Token.
	BinaryOperator // Children: [lhs, rhs]. Op in Token.

	ImportDeclaration // No children. Dependency name in Token.
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}

var kindNames = map[Kind]string{
	Invalid:             "Invalid",
	Root:                "Root",
	ScopeBlock:          "Scope",
	Statement:           "Statement",
	Expression:          "Expression",
	IfStatement:         "IfStatement",
	WhileStatement:      "WhileStatement",
	ForStatement:        "ForStatement",
	ReturnStatement:     "ReturnStatement",
	VariableDeclaration: "VariableDeclaration",
	Variable:            "Variable",
	FunctionDeclaration: "FunctionDeclaration",
	FunctionCall:        "FunctionCall",
	TypeDeclaration:     "TypeDeclaration",
	MemberIdentifier:    "MemberIdentifier",
	ConstantValue:       "ConstantValue",
	Cast:                "Cast",
	LValueToRValue:      "LValueToRValue",
	GetPointer:          "GetPointer",
	Dereference:         "Dereference",
	UnaryOperator:       "UnaryOperator",
	BinaryOperator:      "BinaryOperator",
	ImportDeclaration:   "ImportDeclaration",
}

// SubKind refines a handful of Kinds that otherwise share the same
// children layout (e.g. a VariableDeclaration that is also `const`, or a
// postfix rather than prefix UnaryOperator).
type SubKind int

const (
	None SubKind = iota
	Const
	Prefix
	Postfix
)

// Flags annotate FunctionDeclaration nodes, spec.md's `(Exported,
// Variadic, Imported)` flag set. They're a bitmask so a declaration can
// carry more than one.
type Flags int

const (
	FlagNone     Flags = 0
	FlagExported Flags = 1 << iota
	FlagVariadic
	FlagImported
	// FlagBuiltin marks a FunctionDeclaration with no body, resolved by
	// name to a host-registered implementation at interpretation time
	// (spec.md §4.7's `print`, and interp.RegisterBuiltin's extensions).
	// Not part of spec.md's own (Exported, Variadic, Imported) flag set.
	FlagBuiltin
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// LiteralKind tags the payload carried by a ConstantValue node.
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralChar
	LiteralString
	LiteralBool
)

// Value is the typed payload of a ConstantValue node. Exactly one field
// is meaningful, selected by Kind.
type Value struct {
	Kind LiteralKind
	Int  int64
	Flt  float64
	Str  string
	Chr  rune
	Bool bool
}

// TokenInfo is the subset of lexer.Token an AST node needs to remember:
// enough to report a diagnostic and to recover the declared/operator name
// without the node owning a full lexer dependency.
type TokenInfo struct {
	Lexeme string
	Pos    Pos
}

// Node is the single tagged-variant AST node. Every parse result,
// whatever its grammatical role, is one of these; Children is owned
// exclusively by the node (destroying a node destroys its subtree), and
// Parent is a non-owning back-reference used only during parse-time tree
// surgery (see Reparent).
type Node struct {
	Kind     Kind
	SubKind  SubKind
	Token    TokenInfo
	TypeID   int // resolved type; see package typeregistry. 0 (InvalidTypeID) until resolved.
	Children []*Node
	Parent   *Node // weak; not walked when freeing a subtree

	// Kind-specific metadata.
	Value       Value // ConstantValue payload
	Index       int   // MemberIdentifier: resolved member index
	Flags       Flags // FunctionDeclaration
	ResolvedRef *Node // FunctionCall: resolved callee declaration (cache)
}

// New creates a leaf node of the given kind at the given position.
func New(kind Kind, tok TokenInfo) *Node {
	return &Node{Kind: kind, Token: tok}
}

// AddChild appends a child and sets its Parent back-reference.
func (n *Node) AddChild(child *Node) *Node {
	child.Parent = n
	n.Children = append(n.Children, child)
	return n
}

// Reparent detaches n from its current parent (if any) and appends it as
// a child of newParent. This is the "pop and rotate" operation spec.md
// §9 calls out: precedence climbing parses a right-hand operand, then
// discovers a lower-precedence operator follows and must re-root the
// already-built subtree under a new BinaryOperator node.
func (n *Node) Reparent(newParent *Node) {
	if n.Parent != nil {
		siblings := n.Parent.Children
		for i, c := range siblings {
			if c == n {
				n.Parent.Children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	newParent.AddChild(n)
}

// Position reports where this node begins, for diagnostics.
func (n *Node) Position() Pos { return n.Token.Pos }

// File owns the top-level statements of one translation unit, plus its
// own source path. Dependency names are not stored here; they come from
// a separate pre-pass scan (parser.ParseDependencies).
type File struct {
	Node *Node // Kind == ast.Root
	Path string
}

// NewFile creates an empty File (with an empty Root node) for the given
// source path.
func NewFile(path string) *File {
	return &File{
		Node: &Node{Kind: Root, Token: TokenInfo{Pos: Pos{File: path, Line: 1, Column: 1}}},
		Path: path,
	}
}
