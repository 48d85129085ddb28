package scheduler

import (
	"bytes"
	"errors"
	"os/exec"
	"sync"
	"time"

	tferrors "github.com/arthur-debert/tidyforge/pkg/errors"
)

// Handle tracks one started process.
type Handle struct {
	job     Job
	cmd     *exec.Cmd
	started time.Time

	done    chan struct{}
	waitErr error
	ended   time.Time

	once   sync.Once
	buf    *bytes.Buffer
	result JobResult
}

func newHandle(job Job, cmd *exec.Cmd) *Handle {
	h := &Handle{job: job, cmd: cmd, done: make(chan struct{})}
	if job.Output != nil {
		cmd.Stdout = job.Output
		cmd.Stderr = job.Output
	} else {
		h.buf = &bytes.Buffer{}
		cmd.Stdout = h.buf
		cmd.Stderr = h.buf
	}
	return h
}

func (h *Handle) start() error {
	h.started = time.Now()
	if err := h.cmd.Start(); err != nil {
		h.buf = nil
		return err
	}
	cmd := h.cmd
	go func() {
		h.waitErr = cmd.Wait()
		h.ended = time.Now()
		close(h.done)
	}()
	return nil
}

// Job returns the job this handle runs.
func (h *Handle) Job() Job {
	return h.job
}

// Poll reports whether the process has exited, without blocking. Once it
// has, every call returns the same result.
func (h *Handle) Poll() (JobResult, bool) {
	select {
	case <-h.done:
		h.once.Do(h.finish)
		return h.result, true
	default:
		return JobResult{}, false
	}
}

// Wait blocks until the process exits.
func (h *Handle) Wait() JobResult {
	<-h.done
	h.once.Do(h.finish)
	return h.result
}

func (h *Handle) finish() {
	r := JobResult{
		JobID:    h.job.ID,
		Label:    h.job.Label,
		Command:  h.job.Command,
		Duration: h.ended.Sub(h.started),
	}
	if h.buf != nil {
		r.Output = h.buf.String()
	}

	var exitErr *exec.ExitError
	switch {
	case h.waitErr == nil:
	case errors.As(h.waitErr, &exitErr):
		r.ExitCode = exitErr.ExitCode()
		if r.ExitCode < 0 {
			r.Err = tferrors.Wrapf(h.waitErr, tferrors.ErrJobFailure, "%s was terminated", h.job.Label)
		}
	default:
		r.ExitCode = -1
		r.Err = tferrors.Wrapf(h.waitErr, tferrors.ErrJobFailure, "waiting for %s failed", h.job.Label)
	}

	h.result = r
	h.release()
}

// release drops the capture buffer and the command, whose Stdout and
// Stderr still point at it. Only call once the result is built or from a
// sweep that will never read the handle again.
func (h *Handle) release() {
	h.buf = nil
	h.cmd = nil
}
