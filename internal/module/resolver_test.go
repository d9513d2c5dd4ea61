package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverFindsDependencyBesideImportingFile(t *testing.T) {
	dir := t.TempDir()
	depPath := filepath.Join(dir, "mathlib"+SourceExtension)
	require.NoError(t, os.WriteFile(depPath, []byte(""), 0o644))

	r := NewResolver()
	resolved, ok := r.ResolveDependency(dir, "mathlib")
	require.True(t, ok)
	expected, _ := filepath.Abs(depPath)
	assert.Equal(t, expected, resolved)
}

func TestResolverFindsDependencyInStdlib(t *testing.T) {
	stdlib := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stdlib, "iolib"+SourceExtension), []byte(""), 0o644))
	t.Setenv("TESSERAC_STDLIB", stdlib)

	r := NewResolver()
	resolved, ok := r.ResolveDependency(t.TempDir(), "iolib")
	require.True(t, ok)
	expected, _ := filepath.Abs(filepath.Join(stdlib, "iolib"+SourceExtension))
	assert.Equal(t, expected, resolved)
}

func TestResolverReportsMissingDependency(t *testing.T) {
	t.Setenv("TESSERAC_STDLIB", t.TempDir())
	r := NewResolver()
	_, ok := r.ResolveDependency(t.TempDir(), "does_not_exist")
	assert.False(t, ok)
}

func TestResolverPrefersLocalFileOverStdlib(t *testing.T) {
	stdlib := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stdlib, "shared"+SourceExtension), []byte("// stdlib version"), 0o644))
	t.Setenv("TESSERAC_STDLIB", stdlib)

	local := t.TempDir()
	localDep := filepath.Join(local, "shared"+SourceExtension)
	require.NoError(t, os.WriteFile(localDep, []byte("// local version"), 0o644))

	r := NewResolver()
	resolved, ok := r.ResolveDependency(local, "shared")
	require.True(t, ok)
	expected, _ := filepath.Abs(localDep)
	assert.Equal(t, expected, resolved, "a local file beside the importer must win over the stdlib copy")
}

func TestCacheFileNameIsStableAndStemPrefixed(t *testing.T) {
	name1 := CacheFileName("/some/path/mathlib.tess")
	name2 := CacheFileName("/some/path/mathlib.tess")
	assert.Equal(t, name1, name2, "hashing the same path twice must be deterministic")
	assert.Equal(t, "mathlib_", name1[:len("mathlib_")])

	differentPath := CacheFileName("/other/path/mathlib.tess")
	assert.NotEqual(t, name1, differentPath, "different source paths must not collide")
}

func TestCacheDirIsBesideSourceDir(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, filepath.Join("/project/src", CacheDirName), r.CacheDir("/project/src"))
}
