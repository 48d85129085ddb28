package scheduler

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/logging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultPollInterval is how long Drain sleeps after a pass that found no
// finished process.
const DefaultPollInterval = 10 * time.Millisecond

// Options configures a Scheduler.
type Options struct {
	PollInterval time.Duration
	// Shell runs jobs that set Job.Shell, as `<Shell> -c <command>`.
	Shell string
}

// Scheduler owns the queue of running jobs.
type Scheduler struct {
	mu      sync.Mutex
	pending []*Handle
	closed  bool

	pollInterval time.Duration
	shell        string
	logger       zerolog.Logger
}

// New creates a Scheduler.
func New(opts Options) *Scheduler {
	s := &Scheduler{
		pollInterval: opts.PollInterval,
		shell:        opts.Shell,
		logger:       logging.GetLogger("scheduler"),
	}
	if s.pollInterval <= 0 {
		s.pollInterval = DefaultPollInterval
	}
	if s.shell == "" {
		s.shell = "sh"
	}
	return s
}

// Submit starts job and queues its handle. When the process cannot be
// started nothing is queued and a JOB_START error is returned.
func (s *Scheduler) Submit(job Job) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.Newf(errors.ErrSchedulerClosed, "scheduler is closed, cannot run %s", job.Label)
	}
	if len(job.Command) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "job has no command")
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Label == "" {
		job.Label = job.Command[0]
	}

	cmd := s.command(job)
	logging.LogCommand(s.logger, cmd.Path, cmd.Args[1:])

	h := newHandle(job, cmd)
	if err := h.start(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrJobStart, "failed to start %s", job.Label).
			WithDetail("command", job.CommandLine())
	}
	s.pending = append(s.pending, h)

	s.logger.Debug().
		Str("job", job.ID.String()).
		Str("label", job.Label).
		Int("pending", len(s.pending)).
		Msg("Job started")
	return h, nil
}

func (s *Scheduler) command(job Job) *exec.Cmd {
	var cmd *exec.Cmd
	if job.Shell {
		cmd = exec.Command(s.shell, "-c", job.CommandLine())
	} else {
		cmd = exec.Command(job.Command[0], job.Command[1:]...)
	}
	cmd.Dir = job.Dir
	if len(job.Env) > 0 {
		keys := make([]string, 0, len(job.Env))
		for k := range job.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		cmd.Env = os.Environ()
		for _, k := range keys {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, job.Env[k]))
		}
	}
	return cmd
}

// Pending returns the number of queued handles.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close stops the scheduler from accepting jobs. Jobs already started keep
// running and can still be drained.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Scheduler) take() []*Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.pending
	s.pending = nil
	return queue
}

// Drain waits for every submitted job and returns the results in the order
// their completion was discovered. Jobs submitted while Drain runs are
// picked up as well.
func (s *Scheduler) Drain() []JobResult {
	done := logging.LogOperationStart(s.logger, "drain")
	defer done()

	var results []JobResult
	var queue []*Handle
	defer func() {
		if r := recover(); r != nil {
			for _, h := range queue {
				h.release()
			}
			for _, h := range s.take() {
				h.release()
			}
			panic(r)
		}
	}()

	for {
		queue = append(queue, s.take()...)
		if len(queue) == 0 {
			return results
		}

		progressed := false
		for n := len(queue); n > 0; n-- {
			h := queue[0]
			queue = queue[1:]
			res, ok := h.Poll()
			if !ok {
				queue = append(queue, h)
				continue
			}
			progressed = true
			results = append(results, res)
			s.logResult(res)
		}

		if !progressed {
			time.Sleep(s.pollInterval)
		}
	}
}

func (s *Scheduler) logResult(r JobResult) {
	ev := s.logger.Debug()
	if r.Failed() {
		ev = s.logger.Warn().Err(r.Err)
	}
	ev.Str("job", r.JobID.String()).
		Str("label", r.Label).
		Int("exitCode", r.ExitCode).
		Dur("duration", r.Duration).
		Msg("Job finished")
}

// Run submits every job and drains them. Jobs that fail to start are
// returned as errors; the others still run to completion.
func (s *Scheduler) Run(jobs []Job) ([]JobResult, []error) {
	var startErrs []error
	for _, j := range jobs {
		if _, err := s.Submit(j); err != nil {
			startErrs = append(startErrs, err)
		}
	}
	return s.Drain(), startErrs
}
