package module

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/sunholo/tesserac/internal/ast"
	terrors "github.com/sunholo/tesserac/internal/errors"
	"github.com/sunholo/tesserac/internal/lexer"
	"github.com/sunholo/tesserac/internal/parser"
)

// fileNode tracks one file's position in the dependency graph: the
// files it depends on, and (the reverse edge) the files that depend on
// it — mirroring original_source's `DependencyTree::File` (`depends_on`
// / `necessary_for`), which keeps the reverse edge so a wave can be
// peeled off the graph in one pass instead of re-scanning it.
type fileNode struct {
	path         string
	dependsOn    map[string]bool
	necessaryFor map[string]bool
	resolved     bool
}

// DependencyTree builds and processes a translation unit's transitive
// dependency graph (spec.md §4.6): `Construct` walks every `import`
// reachable from a root file via the parser's fast pre-pass, and
// `GenerateProcessingStages` orders the graph into topological waves a
// compiler driver can compile (or, per spec.md §5, schedule
// concurrently) one wave at a time.
type DependencyTree struct {
	resolver *Resolver
	roots    []string
	files    map[string]*fileNode
}

// NewDependencyTree builds an empty tree using resolver to turn import
// names into file paths.
func NewDependencyTree(resolver *Resolver) *DependencyTree {
	return &DependencyTree{
		resolver: resolver,
		files:    make(map[string]*fileNode),
	}
}

// Construct normalizes rootPath to an absolute path and recursively
// resolves every dependency reachable from it.
func (t *DependencyTree) Construct(rootPath string) error {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return terrors.WrapReport(terrors.New(terrors.MOD001, "module", "cannot resolve root path "+rootPath, ast.Pos{}))
	}
	abs = filepath.Clean(abs)
	t.roots = append(t.roots, abs)
	return t.construct(abs, "")
}

func (t *DependencyTree) construct(path, from string) error {
	entry, ok := t.files[path]
	if !ok {
		entry = &fileNode{path: path, dependsOn: make(map[string]bool), necessaryFor: make(map[string]bool)}
		t.files[path] = entry
	}
	if from != "" {
		entry.necessaryFor[from] = true
	}
	if entry.resolved {
		return nil
	}
	entry.resolved = true

	src, err := os.ReadFile(path)
	if err != nil {
		return terrors.WrapReport(terrors.New(terrors.MOD001, "module", "couldn't open file "+path, ast.Pos{}))
	}

	lex := lexer.New(string(src), path)
	deps, errs := parser.ParseDependencies(lex, path)
	if len(errs) > 0 {
		return errs[0]
	}

	for _, dep := range deps {
		resolvedPath, found := t.resolver.ResolveDependency(filepath.Dir(path), dep)
		if !found {
			return terrors.WrapReport(terrors.New(terrors.MOD001, "module", "dependency not found: "+dep, ast.Pos{File: path}))
		}
		entry.dependsOn[resolvedPath] = true
		if err := t.construct(resolvedPath, path); err != nil {
			return err
		}
	}
	return nil
}

// Files returns every file discovered during Construct, sorted by
// path.
func (t *DependencyTree) Files() []string {
	out := make([]string, 0, len(t.files))
	for p := range t.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// GenerateProcessingStages produces the processing waves spec.md §4.6
// describes: repeatedly collect every file with no remaining
// unresolved dependency into the next wave, then remove those files
// (and the edges pointing at them) from a working copy of the graph. A
// wave that comes up empty while files remain means the graph has a
// cycle.
func (t *DependencyTree) GenerateProcessingStages() ([][]string, error) {
	remaining := make(map[string]*fileNode, len(t.files))
	for path, e := range t.files {
		remaining[path] = &fileNode{
			path:         path,
			dependsOn:    cloneSet(e.dependsOn),
			necessaryFor: cloneSet(e.necessaryFor),
		}
	}

	var stages [][]string
	for len(remaining) > 0 {
		var ready []string
		for path, e := range remaining {
			if len(e.dependsOn) == 0 {
				ready = append(ready, path)
			}
		}
		if len(ready) == 0 {
			return nil, terrors.WrapReport(terrors.New(terrors.MOD003, "module", "cyclic dependency detected", ast.Pos{}))
		}
		sort.Strings(ready)

		for _, path := range ready {
			for dependent := range remaining[path].necessaryFor {
				if d, ok := remaining[dependent]; ok {
					delete(d.dependsOn, path)
				}
			}
			delete(remaining, path)
		}
		stages = append(stages, ready)
	}
	return stages, nil
}

func cloneSet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
