package patch

import (
	"path/filepath"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/logging"
)

// Commit replaces the file at path with content. The data goes to a
// temporary file in the same directory which is renamed over path, so a
// reader sees either the old or the new file. The original mode is kept.
func Commit(fs filesystem.FS, path string, content []byte) error {
	logger := logging.GetLogger("patch")

	info, err := fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}

	tmp, err := fs.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".tidyforge-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create temporary file for %s", path)
	}
	tmpName := tmp.Name()

	fail := func(err error, msg string) error {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "%s %s", msg, path)
	}

	if _, err := tmp.Write(content); err != nil {
		return fail(err, "cannot write")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "cannot sync")
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close temporary file for %s", path)
	}
	if err := fs.Chmod(tmpName, info.Mode().Perm()); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set mode on %s", tmpName)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", path)
	}

	logger.Debug().Str("path", path).Int("bytes", len(content)).Msg("Committed file")
	return nil
}
