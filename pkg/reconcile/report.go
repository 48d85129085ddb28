package reconcile

import (
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/overlap"
	"github.com/arthur-debert/tidyforge/pkg/validate"
)

// FileReport is the outcome for one file.
type FileReport struct {
	Path             string `json:"path"`
	Proposed         int    `json:"proposed"`
	Filtered         int    `json:"filtered"`
	Converted        int    `json:"converted"`
	OverlapDiscarded int    `json:"overlapDiscarded"`
	Applied          int    `json:"applied"`
	Committed        bool   `json:"committed"`

	Rejections  []Rejection        `json:"rejections,omitempty"`
	Conversions []Conversion       `json:"conversions,omitempty"`
	Discards    []overlap.Discard  `json:"discards,omitempty"`
	Findings    []validate.Finding `json:"findings,omitempty"`
	Err         error              `json:"-"`
}

// Passed reports whether the file was patched (or would have been) cleanly.
func (f FileReport) Passed() bool {
	return f.Err == nil
}

// Report is the outcome of a reconciliation run.
type Report struct {
	Files     []FileReport `json:"files"`
	Processed []string     `json:"processed,omitempty"`
	DryRun    bool         `json:"dryRun"`
}

// Totals sums the per-file counts. Path, Err and the entry lists are left
// empty.
func (r *Report) Totals() FileReport {
	var t FileReport
	for _, f := range r.Files {
		t.Proposed += f.Proposed
		t.Filtered += f.Filtered
		t.Converted += f.Converted
		t.OverlapDiscarded += f.OverlapDiscarded
		t.Applied += f.Applied
	}
	return t
}

// Failed returns the reports of files that did not pass.
func (r *Report) Failed() []FileReport {
	var failed []FileReport
	for _, f := range r.Files {
		if !f.Passed() {
			failed = append(failed, f)
		}
	}
	return failed
}

// Err summarises failed files. Corruption takes precedence over other
// failures when choosing the code.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	code := errors.GetErrorCode(failed[0].Err)
	paths := make([]string, 0, len(failed))
	for _, f := range failed {
		paths = append(paths, f.Path)
		if errors.IsErrorCode(f.Err, errors.ErrCorruptionDetected) {
			code = errors.ErrCorruptionDetected
		}
	}
	return errors.Newf(code, "%d of %d files failed reconciliation", len(failed), len(r.Files)).
		WithDetail("files", paths)
}
