package ast

import (
	"encoding/json"
	"fmt"
)

// dump is the JSON-serializable shape Print emits for a Node. It omits
// the Parent back-reference (cyclical, and a debug dump should read
// top-down) and normalizes literal payloads to their Go zero-value
// representation.
type dump struct {
	Kind     string      `json:"kind"`
	SubKind  string      `json:"subKind,omitempty"`
	Lexeme   string      `json:"lexeme,omitempty"`
	Pos      string      `json:"pos,omitempty"`
	TypeID   int         `json:"typeId,omitempty"`
	Value    interface{} `json:"value,omitempty"`
	Index    int         `json:"index,omitempty"`
	Flags    []string    `json:"flags,omitempty"`
	Children []*dump     `json:"children,omitempty"`
}

// Print renders a deterministic JSON dump of an AST node, used by the
// `tesserac ast` CLI subcommand.
func Print(n *Node) string {
	data, err := json.MarshalIndent(simplify(n), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplify(n *Node) *dump {
	if n == nil {
		return nil
	}
	d := &dump{
		Kind:   n.Kind.String(),
		Lexeme: n.Token.Lexeme,
		Pos:    n.Token.Pos.String(),
		TypeID: n.TypeID,
	}
	if n.SubKind != None {
		d.SubKind = subKindNames[n.SubKind]
	}
	if n.Kind == ConstantValue {
		d.Value = literalValue(n.Value)
	}
	if n.Kind == MemberIdentifier {
		d.Index = n.Index
	}
	if n.Kind == FunctionDeclaration {
		d.Flags = flagNames(n.Flags)
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, simplify(c))
	}
	return d
}

var subKindNames = map[SubKind]string{
	Const:   "const",
	Prefix:  "prefix",
	Postfix: "postfix",
}

func literalValue(v Value) interface{} {
	switch v.Kind {
	case LiteralInt:
		return v.Int
	case LiteralFloat:
		return v.Flt
	case LiteralChar:
		return string(v.Chr)
	case LiteralString:
		return v.Str
	case LiteralBool:
		return v.Bool
	default:
		return nil
	}
}

func flagNames(f Flags) []string {
	var out []string
	if f.Has(FlagExported) {
		out = append(out, "exported")
	}
	if f.Has(FlagVariadic) {
		out = append(out, "variadic")
	}
	if f.Has(FlagImported) {
		out = append(out, "imported")
	}
	return out
}
