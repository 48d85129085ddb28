// Test Type: Unit Test
// Description: Tests for atomic write-back of patched files

package patch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/patch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_Memory(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("src", 0755))
	require.NoError(t, fs.WriteFile("src/CvCity.cpp", []byte("old"), 0640))

	require.NoError(t, patch.Commit(fs, "src/CvCity.cpp", []byte("new")))

	data, err := fs.ReadFile("src/CvCity.cpp")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := fs.Stat("src/CvCity.cpp")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	leftovers, err := fs.Glob("src/.CvCity.cpp.tidyforge-*")
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestCommit_OS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CvPlot.cpp")
	require.NoError(t, os.WriteFile(path, []byte("int x;"), 0600))

	require.NoError(t, patch.Commit(filesystem.NewOS(), path, []byte("int x = 0;")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "int x = 0;", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCommit_MissingFile(t *testing.T) {
	err := patch.Commit(filesystem.NewMemory(), "nope.cpp", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}
