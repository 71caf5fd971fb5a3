package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestDiscover_WalksRecursivelyInLexicalOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.txt", []byte("b"))
	writeFile(t, root, "a.txt", []byte("a"))
	writeFile(t, root, "shaders/blur.frag", []byte("blur"))
	writeFile(t, root, "shaders/deep/x.bin", []byte{0, 1})

	resources, err := Discover(root, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a.txt",
		"b.txt",
		"shaders/blur.frag",
		"shaders/deep/x.bin",
	}, RelPaths(resources))

	assert.Equal(t, filepath.Join(root, "shaders", "deep", "x.bin"), resources[3].Path)
	assert.Equal(t, int64(2), resources[3].Size)
	assert.False(t, resources[0].ModTime.IsZero())
}

func TestDiscover_ExcludesManifestFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", []byte("a"))
	writeFile(t, root, "CMakeLists.txt", []byte("x"))
	writeFile(t, root, "sub/CMakeLists.txt", []byte("x"))
	writeFile(t, root, "sub/OldCMakeLists.txt", []byte("x"))
	writeFile(t, root, "sub/CMakeLists.txt.bak", []byte("x"))

	resources, err := Discover(root, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "sub/CMakeLists.txt.bak"}, RelPaths(resources))
}

func TestDiscover_CustomExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", []byte("a"))
	writeFile(t, root, "notes.md", []byte("n"))
	writeFile(t, root, "CMakeLists.txt", []byte("x"))

	resources, err := Discover(root, Options{ExcludeSuffixes: []string{".md", ""}})
	require.NoError(t, err)

	assert.Equal(t, []string{"CMakeLists.txt", "a.txt"}, RelPaths(resources))
}

func TestDiscover_EmptyRoot(t *testing.T) {
	resources, err := Discover(t.TempDir(), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), DefaultOptions())
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "does not exist", cfgErr.Reason)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file", []byte("x"))

	_, err := Discover(filepath.Join(root, "file"), DefaultOptions())

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "is not a directory")
}
