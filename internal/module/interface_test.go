package module

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/tesserac/internal/ast"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/parser"
	"github.com/sunholo/tesserac/internal/scope"
	"github.com/sunholo/tesserac/internal/typeregistry"
)

func TestModuleInterfaceRoundTripsExportedTypeAndFunction(t *testing.T) {
	registry := typeregistry.New()
	src := `
		export type point {
			let x : int;
			let y : int = 0;
		}
		export function origin() : point {
			point p;
			return p;
		}
	`
	lex := lexer.New(src, "src.tess")
	file, errs := parser.Parse(lex, registry, "src.tess")
	require.Empty(t, errs)

	mi := BuildInterface([]string{"base"}, file.Node)
	require.Len(t, mi.TypeExports, 1)
	require.Len(t, mi.FunctionExports, 1)

	path := filepath.Join(t.TempDir(), "src_abc123")
	require.NoError(t, mi.Save(path, registry))

	importedRegistry := typeregistry.New()
	importedScope := scope.New(importedRegistry)
	imported, err := Import(path, importedRegistry, importedScope)
	require.NoError(t, err)

	assert.Equal(t, []string{"base"}, imported.Dependencies)
	require.Len(t, imported.TypeExports, 1)
	assert.Equal(t, "point", imported.TypeExports[0].Token.Lexeme)

	pointID, ok := importedScope.ResolveType("point")
	require.True(t, ok)
	pointType := importedRegistry.GetType(pointID)
	require.NotNil(t, pointType)
	require.Len(t, pointType.Members, 2)
	assert.Equal(t, "x", pointType.Members[0].Name)
	assert.Equal(t, "y", pointType.Members[1].Name)

	fnDecl, ok := importedScope.ResolveFunction("origin", nil)
	require.True(t, ok)
	assert.True(t, fnDecl.Flags.Has(ast.FlagImported))
	assert.Equal(t, pointID, typeregistry.TypeID(fnDecl.TypeID))
}

func TestModuleInterfaceMissingFileReportsMOD002(t *testing.T) {
	registry := typeregistry.New()
	_, err := Import(filepath.Join(t.TempDir(), "nope"), registry, scope.New(registry))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOD002")
}

func TestModuleInterfaceImportsMultipleFunctionSignatures(t *testing.T) {
	registry := typeregistry.New()
	src := `
		export function add(int a, int b) : int { return a + b; }
		export function zero() : int { return 0; }
	`
	lex := lexer.New(src, "src.tess")
	file, errs := parser.Parse(lex, registry, "src.tess")
	require.Empty(t, errs)

	mi := BuildInterface(nil, file.Node)
	path := filepath.Join(t.TempDir(), "iface")
	require.NoError(t, mi.Save(path, registry))

	importedRegistry := typeregistry.New()
	importedScope := scope.New(importedRegistry)
	_, err := Import(path, importedRegistry, importedScope)
	require.NoError(t, err)

	_, ok := importedScope.ResolveFunction("add", []typeregistry.TypeID{typeregistry.Int, typeregistry.Int})
	assert.True(t, ok)
	_, ok = importedScope.ResolveFunction("zero", nil)
	assert.True(t, ok)
}
