package build

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/tidyforge/pkg/config"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
)

// Layout is where a profile's build writes its files.
type Layout struct {
	ProjectDir string
	BuildDir   string
	OutDir     string
}

// NewLayout places per-profile build and output directories under the
// configured ones.
func NewLayout(cfg config.BuildConfig, profile string) Layout {
	return Layout{
		ProjectDir: cfg.ProjectDir,
		BuildDir:   filepath.Join(projectPath(cfg, cfg.BuildDir), profile),
		OutDir:     filepath.Join(projectPath(cfg, cfg.OutDir), profile),
	}
}

// Object returns the object file for a source given relative to the
// project directory.
func (l Layout) Object(source string) string {
	rel := strings.TrimSuffix(source, filepath.Ext(source)) + ".obj"
	return filepath.Join(l.BuildDir, rel)
}

// LogPath is the concatenated compile and link log.
func (l Layout) LogPath() string {
	return filepath.Join(l.OutDir, "build.log")
}

// ResponseFile is the linker response file.
func (l Layout) ResponseFile() string {
	return filepath.Join(l.BuildDir, "link.rsp")
}

// Prepare creates the output directories, including one per object
// subdirectory.
func (l Layout) Prepare(fs filesystem.FS, sources []string) error {
	dirs := map[string]bool{l.BuildDir: true, l.OutDir: true}
	for _, src := range sources {
		dirs[filepath.Dir(l.Object(src))] = true
	}
	for dir := range dirs {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
		}
	}
	return nil
}

// Sources expands the configured source globs, relative to the project
// directory. The result is sorted and free of duplicates.
func Sources(fs filesystem.FS, projectDir string, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range patterns {
		matches, err := fs.Glob(filepath.Join(projectDir, pattern))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "bad source pattern %q", pattern)
		}
		for _, m := range matches {
			rel, err := filepath.Rel(projectDir, m)
			if err != nil {
				rel = m
			}
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
