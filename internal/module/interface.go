package module

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sunholo/tesserac/internal/ast"
	terrors "github.com/sunholo/tesserac/internal/errors"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/parser"
	"github.com/sunholo/tesserac/internal/scope"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

// ModuleInterface is one translation unit's persisted exported
// surface: the dependency names it imports, its exported type
// declarations, and its exported function signatures. Save/Import
// round-trip the three-section ASCII format spec.md §4.6 specifies.
type ModuleInterface struct {
	Dependencies    []string
	TypeExports     []*ast.Node // Kind == ast.TypeDeclaration
	FunctionExports []*ast.Node // Kind == ast.FunctionDeclaration, FlagImported set once imported
}

// BuildInterface collects dependency names and every top-level
// `export`-flagged type/function declaration out of a compiled file,
// ready to be Saved.
func BuildInterface(deps []string, root *ast.Node) *ModuleInterface {
	mi := &ModuleInterface{Dependencies: deps}
	for _, child := range root.Children {
		if !child.Flags.Has(ast.FlagExported) {
			continue
		}
		switch child.Kind {
		case ast.TypeDeclaration:
			mi.TypeExports = append(mi.TypeExports, child)
		case ast.FunctionDeclaration:
			mi.FunctionExports = append(mi.FunctionExports, child)
		}
	}
	return mi
}

// Save writes the interface to path in the format
// `ModuleInterface::save` defines: dependency names, a blank line,
// `type Name { let m: T; ... }` lines for every exported type, a blank
// line, then `name return_type arg1_type arg2_type ...` lines for
// every exported function.
func (mi *ModuleInterface) Save(path string, registry *typeregistry.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return terrors.WrapReport(terrors.NewGeneric("module", err))
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, dep := range mi.Dependencies {
		fmt.Fprintln(w, dep)
	}
	fmt.Fprintln(w)

	for _, n := range mi.TypeExports {
		t := registry.GetType(typeregistry.TypeID(n.TypeID))
		var b strings.Builder
		fmt.Fprintf(&b, "type %s { ", n.Token.Lexeme)
		for _, m := range t.Members {
			fmt.Fprintf(&b, "let %s: %s; ", m.Name, registry.GetType(m.TypeID).Designation)
		}
		b.WriteString("}")
		fmt.Fprintln(w, b.String())
	}
	fmt.Fprintln(w)

	for _, n := range mi.FunctionExports {
		retType := registry.GetType(typeregistry.TypeID(n.TypeID))
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s", n.Token.Lexeme, retType.Designation)
		for _, arg := range n.Children {
			if arg.Kind != ast.VariableDeclaration {
				continue
			}
			fmt.Fprintf(&b, " %s", registry.GetType(typeregistry.TypeID(arg.TypeID)).Designation)
		}
		fmt.Fprintln(w, b.String())
	}

	return w.Flush()
}

// Import reads path back into synthetic TypeDeclaration/
// FunctionDeclaration nodes owned by the returned interface (not part
// of any translation unit's own AST), and introduces them into dest's
// Scope Chain as the consumer's imports. Function nodes are flagged
// Imported. A missing file is reported as MOD002; a malformed one as
// MOD004.
func Import(path string, registry *typeregistry.Registry, dest *scope.Chain) (*ModuleInterface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, terrors.WrapReport(terrors.New(terrors.MOD002, "module", "interface file not found: "+path, ast.Pos{}))
	}

	sections := splitSections(string(data))

	mi := &ModuleInterface{}
	for _, line := range sections[0] {
		mi.Dependencies = append(mi.Dependencies, line)
	}

	for _, line := range sections[1] {
		typeNode, err := importTypeLine(line, path, registry)
		if err != nil {
			return nil, err
		}
		mi.TypeExports = append(mi.TypeExports, typeNode)
		dest.DeclareType(typeNode.Token.Lexeme, typeregistry.TypeID(typeNode.TypeID))
	}

	for _, line := range sections[2] {
		fnNode, err := importFunctionLine(line, registry)
		if err != nil {
			return nil, err
		}
		mi.FunctionExports = append(mi.FunctionExports, fnNode)
		dest.DeclareFunction(fnNode)
	}

	return mi, nil
}

// splitSections breaks the interface file into its three
// blank-line-delimited sections (dependencies, types, functions), each
// a slice of non-empty lines. A blank line advances to the next
// section; once the third section is reached, further blank lines are
// folded into it rather than starting a fourth.
func splitSections(data string) [][]string {
	lines := strings.Split(strings.TrimRight(data, "\n"), "\n")
	sections := make([][]string, 3)
	idx := 0
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			if idx < 2 {
				idx++
			}
			continue
		}
		sections[idx] = append(sections[idx], line)
	}
	return sections
}

// importTypeLine re-parses a single `type Name { let m: T; ... }` line
// using the ordinary language parser — the dual member-spelling
// support parseTypeDecl carries exists exactly so this line of code can
// work (spec.md §4.6: "the parser re-parses them").
func importTypeLine(line, path string, registry *typeregistry.Registry) (*ast.Node, error) {
	lex := lexer.New(line, path)
	file, errs := parser.Parse(lex, registry, path)
	if len(errs) > 0 {
		return nil, terrors.WrapReport(terrors.New(terrors.MOD004, "module", "malformed type export: "+line, ast.Pos{File: path}))
	}
	for _, child := range file.Node.Children {
		if child.Kind == ast.TypeDeclaration {
			return child, nil
		}
	}
	return nil, terrors.WrapReport(terrors.New(terrors.MOD004, "module", "expected a type declaration: "+line, ast.Pos{File: path}))
}

// importFunctionLine parses the compact `name return_type arg_type...`
// signature format — not tesserac's declaration syntax, just a
// whitespace-separated list of designations — into a synthetic,
// bodyless FunctionDeclaration.
func importFunctionLine(line string, registry *typeregistry.Registry) (*ast.Node, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, terrors.WrapReport(terrors.New(terrors.MOD004, "module", "malformed function export: "+line, ast.Pos{}))
	}

	name, retType := fields[0], fields[1]
	fnNode := ast.New(ast.FunctionDeclaration, ast.TokenInfo{Lexeme: name})
	fnNode.Flags |= ast.FlagImported
	fnNode.TypeID = int(registry.GetOrRegister(retType))

	for _, argType := range fields[2:] {
		arg := ast.New(ast.VariableDeclaration, ast.TokenInfo{})
		arg.TypeID = int(registry.GetOrRegister(argType))
		fnNode.AddChild(arg)
	}
	// The Scope Chain's overload matcher (scope.paramTypes) reads every
	// child but the last as a parameter, trusting the last to be the
	// body every ordinarily-parsed FunctionDeclaration carries. An
	// imported signature has no body, so a placeholder takes its slot.
	fnNode.AddChild(ast.New(ast.ScopeBlock, ast.TokenInfo{}))

	return fnNode, nil
}
