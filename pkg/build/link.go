package build

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tidyforge/pkg/config"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
)

// OutputPaths returns the linked binary and its debug database.
func (l Layout) OutputPaths(output string) (string, string) {
	bin := filepath.Join(l.OutDir, output)
	pdb := filepath.Join(l.OutDir, strings.TrimSuffix(output, filepath.Ext(output))+".pdb")
	return bin, pdb
}

// WriteResponseFile writes the linker response file listing output paths,
// link flags, library directories, libraries and objects. Objects that do
// not exist are still listed; a warning is returned for each.
func WriteResponseFile(fs filesystem.FS, l Layout, cfg config.BuildConfig, args Args, sources []string) ([]string, error) {
	var b strings.Builder
	var warnings []string

	bin, pdb := l.OutputPaths(cfg.Output)
	fmt.Fprintf(&b, "/OUT:%q\n/PDB:%q\n", bin, pdb)
	for _, f := range args.Link {
		b.WriteString(f + "\n")
	}
	for _, dir := range cfg.LibDirs {
		fmt.Fprintf(&b, "/LIBPATH:%q\n", projectPath(cfg, dir))
	}
	for _, lib := range cfg.Libs {
		b.WriteString(lib + "\n")
	}

	objects := make([]string, 0, len(cfg.Objects)+len(sources))
	for _, o := range cfg.Objects {
		objects = append(objects, filepath.Join(l.BuildDir, o))
	}
	for _, src := range sources {
		objects = append(objects, l.Object(src))
	}
	for _, obj := range objects {
		if _, err := fs.Stat(obj); err != nil {
			warnings = append(warnings, fmt.Sprintf("Warning: Object file %q does not exist.", obj))
		}
		fmt.Fprintf(&b, "%q\n", obj)
	}

	path := l.ResponseFile()
	if err := fs.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return warnings, nil
}
