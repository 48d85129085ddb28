package validate

import (
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
)

// FileResult is the scan of one file on disk.
type FileResult struct {
	Path     string    `json:"path"`
	Findings []Finding `json:"findings,omitempty"`
	Err      error     `json:"-"`
}

// Passed reports a readable file without findings.
func (r FileResult) Passed() bool {
	return r.Err == nil && len(r.Findings) == 0
}

// ScanFiles scans every path. Unreadable files are reported, not skipped.
func ScanFiles(fs filesystem.FS, paths []string) []FileResult {
	results := make([]FileResult, 0, len(paths))
	for _, p := range paths {
		content, err := fs.ReadFile(p)
		if err != nil {
			results = append(results, FileResult{
				Path: p,
				Err:  errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", p),
			})
			continue
		}
		findings, err := Check(p, content)
		results = append(results, FileResult{Path: p, Findings: findings, Err: err})
	}
	return results
}

// Failed counts results that did not pass.
func Failed(results []FileResult) int {
	n := 0
	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}
	return n
}
