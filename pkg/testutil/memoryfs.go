package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tidyforge/pkg/filesystem"
)

// NewMemoryFS returns an in-memory filesystem holding files, keyed by
// absolute path. Parent directories are created as needed.
func NewMemoryFS(t *testing.T, files map[string]string) filesystem.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	for path, content := range files {
		if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := fs.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return fs
}

// ReadFS returns the content of path in fs, failing the test on error.
func ReadFS(t *testing.T, fs filesystem.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
