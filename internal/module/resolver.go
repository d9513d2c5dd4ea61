// Package module implements the Module Interface & Dependency Tree
// facility (spec.md §4.6): resolving import names to source files,
// building the dependency graph for a translation unit, topologically
// ordering it into processing waves, and persisting/reading back each
// file's exported surface as an ASCII module interface.
package module

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SourceExtension is the on-disk extension for tesserac source files,
// per SPEC_FULL.md §6.2 (renamed from original_source's `.lang`).
const SourceExtension = ".tess"

// CacheDirName is the directory, beside a project's source root, that
// holds persisted module interface files.
const CacheDirName = ".tesscache"

// Resolver locates the file a dependency name refers to: first beside
// the importing file, then in a configured standard-library directory,
// per spec.md §4.6 ("search the current file's directory, then a
// configured standard-library directory").
type Resolver struct {
	projectRoot   string
	stdlibPath    string
	searchPaths   []string
	caseSensitive bool
}

// NewResolver builds a Resolver rooted at the current working
// directory's project, with its standard-library and extra search
// paths drawn from tesserac.yaml (if present) and the environment, in
// that precedence order: an explicit project config wins over the
// generic fallbacks environment variables supply.
func NewResolver() *Resolver {
	root := findProjectRoot()
	cfg, _ := loadProjectConfig(root)

	stdlib := cfg.StdlibPath
	if stdlib != "" && !filepath.IsAbs(stdlib) {
		stdlib = filepath.Join(root, stdlib)
	}
	if stdlib == "" {
		stdlib = findStdlibPath()
	}

	return &Resolver{
		projectRoot:   root,
		stdlibPath:    stdlib,
		searchPaths:   append(cfg.SearchPaths, getSearchPaths()...),
		caseSensitive: isFileSystemCaseSensitive(),
	}
}

// ResolveDependency resolves dep (the bare name carried by an `import
// "dep";` statement) to an absolute source file path, searching
// fromDir (the importing file's directory) first and the standard
// library second. Neither candidate existing is reported by the caller
// as MOD001.
func (r *Resolver) ResolveDependency(fromDir, dep string) (string, bool) {
	local := filepath.Join(fromDir, withExt(dep))
	if abs, err := filepath.Abs(local); err == nil {
		if _, err := os.Stat(abs); err == nil {
			return abs, true
		}
	}

	stdlibCandidate := filepath.Join(r.stdlibPath, withExt(dep))
	if abs, err := filepath.Abs(stdlibCandidate); err == nil {
		if _, err := os.Stat(abs); err == nil {
			return abs, true
		}
	}

	for _, sp := range r.searchPaths {
		candidate := filepath.Join(sp, withExt(dep))
		if abs, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs, true
			}
		}
	}

	return "", false
}

func withExt(name string) string {
	if strings.HasSuffix(name, SourceExtension) {
		return name
	}
	return name + SourceExtension
}

// CacheDir returns the `.tesscache` directory beside sourceDir, the
// directory where generated module interface files for sources in
// sourceDir are placed.
func (r *Resolver) CacheDir(sourceDir string) string {
	return filepath.Join(sourceDir, CacheDirName)
}

// CacheFileName derives the cached interface's filename from a source
// file's absolute path: `<stem>_<hex(hash(absolute_path))>`, per
// spec.md §6 and SPEC_FULL.md §6.2.
func CacheFileName(absSourcePath string) string {
	stem := strings.TrimSuffix(filepath.Base(absSourcePath), SourceExtension)
	sum := sha256.Sum256([]byte(absSourcePath))
	return stem + "_" + hex.EncodeToString(sum[:])[:16]
}

// findProjectRoot walks upward from the working directory looking for
// a project marker, falling back to the working directory itself.
func findProjectRoot() string {
	markers := []string{"go.mod", ".git", "tesserac.yaml", ".tesserac"}

	dir, err := os.Getwd()
	if err != nil {
		return "."
	}

	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	pwd, _ := os.Getwd()
	return pwd
}

// findStdlibPath locates the standard library directory: the
// TESSERAC_STDLIB environment variable if set, else a `stdlib`
// directory beside the running executable, else one under the project
// root, else `./stdlib`.
func findStdlibPath() string {
	if stdlib := os.Getenv("TESSERAC_STDLIB"); stdlib != "" {
		return stdlib
	}

	if exe, err := os.Executable(); err == nil {
		for _, candidate := range []string{
			filepath.Join(filepath.Dir(exe), "..", "stdlib"),
			filepath.Join(filepath.Dir(exe), "stdlib"),
		} {
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return candidate
			}
		}
	}

	projectRoot := findProjectRoot()
	stdlib := filepath.Join(projectRoot, "stdlib")
	if info, err := os.Stat(stdlib); err == nil && info.IsDir() {
		return stdlib
	}

	return filepath.Join(".", "stdlib")
}

// getSearchPaths returns extra directories to search for a dependency
// beyond the importing file's own directory and the standard library:
// TESSERAC_PATH entries, a per-user module directory, and the project
// root itself.
func getSearchPaths() []string {
	var paths []string

	if tessPath := os.Getenv("TESSERAC_PATH"); tessPath != "" {
		for _, p := range strings.Split(tessPath, string(os.PathListSeparator)) {
			if p != "" {
				paths = append(paths, p)
			}
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tesserac", "modules"))
	}

	paths = append(paths, findProjectRoot())
	return paths
}

func isFileSystemCaseSensitive() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return false
	default:
		return true
	}
}
