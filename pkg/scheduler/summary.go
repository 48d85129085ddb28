package scheduler

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/tidyforge/pkg/errors"
)

// Summary aggregates a batch of results.
type Summary struct {
	Total    int
	Failed   int
	Failures []JobResult
}

// Summarize counts the failed results.
func Summarize(results []JobResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Failed() {
			s.Failed++
			s.Failures = append(s.Failures, r)
		}
	}
	return s
}

// Err returns a JOB_FAILURE error when any job failed.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	labels := make([]string, 0, len(s.Failures))
	for _, r := range s.Failures {
		labels = append(labels, r.Label)
	}
	return errors.Newf(errors.ErrJobFailure, "%d of %d jobs failed", s.Failed, s.Total).
		WithDetail("failed", labels)
}

// Exceeds reports whether more than max jobs failed.
func (s Summary) Exceeds(max int) bool {
	return s.Failed > max
}

// WriteResults appends a results log entry per job: a banner with the
// label, the command line, the captured output and the exit status.
func WriteResults(w io.Writer, results []JobResult) error {
	for _, r := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "==== %s ====\n", r.Label)
		fmt.Fprintf(&b, "%s\n", strings.Join(r.Command, " "))
		b.WriteString(r.Output)
		if r.Output != "" && !strings.HasSuffix(r.Output, "\n") {
			b.WriteByte('\n')
		}
		if r.Err != nil {
			fmt.Fprintf(&b, "error: %v\n", r.Err)
		}
		fmt.Fprintf(&b, "exit status %d\n", r.ExitCode)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write results log")
		}
	}
	return nil
}
