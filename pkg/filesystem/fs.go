package filesystem

import (
	"io"
	"io/fs"
)

// FS is the set of filesystem operations tidyforge needs.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Chmod(name string, mode fs.FileMode) error

	// TempFile creates a new temporary file in dir, see os.CreateTemp.
	TempFile(dir, pattern string) (File, error)

	// Glob returns the names of all files matching pattern.
	Glob(pattern string) ([]string, error)
}

// File is a writable handle returned by TempFile.
type File interface {
	io.Writer
	io.Closer
	Name() string
	Sync() error
}
