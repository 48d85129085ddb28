package scheduler

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job describes one process to run.
type Job struct {
	ID    uuid.UUID
	Label string

	// Command is the argv of the process. With Shell set the elements are
	// joined by spaces and handed to the shell as one command string.
	Command []string
	Shell   bool

	// Env overrides entries of the inherited environment.
	Env map[string]string
	Dir string

	// Output receives combined stdout and stderr when set; otherwise the
	// output is captured into JobResult.Output. A writer shared between
	// jobs must be safe for concurrent use.
	Output io.Writer
}

// NewJob creates a job with a fresh ID.
func NewJob(label string, command ...string) Job {
	return Job{ID: uuid.New(), Label: label, Command: command}
}

// CommandLine renders the command for logs.
func (j Job) CommandLine() string {
	return strings.Join(j.Command, " ")
}

// JobResult is the outcome of a finished job.
type JobResult struct {
	JobID    uuid.UUID     `json:"id"`
	Label    string        `json:"label"`
	Command  []string      `json:"command"`
	ExitCode int           `json:"exitCode"`
	Output   string        `json:"output,omitempty"`
	Duration time.Duration `json:"duration"`
	// Err is set when waiting for the process failed or it was killed by
	// a signal.
	Err error `json:"-"`
}

// Failed reports a non-zero exit or a wait error.
func (r JobResult) Failed() bool {
	return r.ExitCode != 0 || r.Err != nil
}
