package filesystem_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFS_RoundTrip(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/src", 0755))
	require.NoError(t, fs.WriteFile("/src/CvUnit.cpp", []byte("int x;"), 0644))

	data, err := fs.ReadFile("/src/CvUnit.cpp")
	require.NoError(t, err)
	assert.Equal(t, "int x;", string(data))

	_, err = fs.ReadFile("/src")
	assert.Error(t, err, "reading a directory should fail")
}

func TestMemoryFS_TempFileAndRename(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/src", 0755))

	f, err := fs.TempFile("/src", ".tidyforge-*")
	require.NoError(t, err)
	_, err = f.Write([]byte("patched"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, fs.Rename(f.Name(), "/src/a.cpp"))
	data, err := fs.ReadFile("/src/a.cpp")
	require.NoError(t, err)
	assert.Equal(t, "patched", string(data))
}

func TestOSFS_Glob(t *testing.T) {
	dir := t.TempDir()
	fs := filesystem.NewOS()
	for _, name := range []string{"a.cpp", "b.cpp", "c.h"} {
		require.NoError(t, fs.WriteFile(filepath.Join(dir, name), []byte("//"), 0644))
	}

	matches, err := fs.Glob(filepath.Join(dir, "*.cpp"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
