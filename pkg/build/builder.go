package build

import (
	"bytes"
	"fmt"

	"github.com/arthur-debert/tidyforge/pkg/config"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/logging"
	"github.com/arthur-debert/tidyforge/pkg/scheduler"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Runner runs a batch of jobs to completion.
type Runner interface {
	Run(jobs []scheduler.Job) ([]scheduler.JobResult, []error)
}

// Result is the outcome of a build.
type Result struct {
	Profile  string                `json:"profile"`
	Sources  int                   `json:"sources"`
	Compile  []scheduler.JobResult `json:"compile"`
	Failed   int                   `json:"failed"`
	Link     *scheduler.JobResult  `json:"link,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
	LogPath  string                `json:"log"`
	Output   string                `json:"output,omitempty"`
}

// Builder compiles and links one profile.
type Builder struct {
	fs     filesystem.FS
	runner Runner
	cfg    config.BuildConfig
	logger zerolog.Logger
}

// NewBuilder creates a Builder. fs is used for globbing sources and for
// the log and response files; the processes themselves see the real disk.
func NewBuilder(fs filesystem.FS, runner Runner, cfg config.BuildConfig) *Builder {
	return &Builder{
		fs:     fs,
		runner: runner,
		cfg:    cfg,
		logger: logging.GetLogger("build"),
	}
}

// Build compiles every source for profile and links when the number of
// failed compiles is within the configured budget. The returned error is a
// JOB_FAILURE when the compile budget is exceeded or the link fails; the
// Result is filled in as far as the build got.
func (b *Builder) Build(profile string) (*Result, error) {
	done := logging.LogOperationStart(b.logger, "build")
	defer done()

	args, err := ResolveArgs(b.cfg, profile)
	if err != nil {
		return nil, err
	}
	layout := NewLayout(b.cfg, profile)
	sources, err := Sources(b.fs, b.cfg.ProjectDir, b.cfg.Sources)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrNotFound, "no sources matched the configured patterns").
			WithDetail("patterns", b.cfg.Sources)
	}
	if err := layout.Prepare(b.fs, sources); err != nil {
		return nil, err
	}

	res := &Result{Profile: profile, Sources: len(sources), LogPath: layout.LogPath()}
	var log bytes.Buffer

	b.logger.Info().Str("profile", profile).Int("sources", len(sources)).Msg("Compiling")
	jobs := make([]scheduler.Job, 0, len(sources))
	for _, src := range sources {
		cmd := []string{b.cfg.Compiler, projectPath(b.cfg, src), "-o", layout.Object(src)}
		cmd = append(cmd, args.Compile...)
		jobs = append(jobs, scheduler.NewJob(src, cmd...))
	}
	results, startErrs := b.runner.Run(jobs)
	res.Compile = inJobOrder(jobs, results)
	for _, err := range startErrs {
		fmt.Fprintf(&log, "error: %v\n", err)
	}
	if err := scheduler.WriteResults(&log, res.Compile); err != nil {
		return res, err
	}

	summary := scheduler.Summarize(res.Compile)
	res.Failed = summary.Failed + len(startErrs)
	if res.Failed > b.cfg.MaxFailures {
		b.writeLog(layout, &log)
		return res, errors.Newf(errors.ErrJobFailure, "%d of %d sources failed to build - see %s",
			res.Failed, len(sources), res.LogPath)
	}

	warnings, err := WriteResponseFile(b.fs, layout, b.cfg, args, sources)
	if err != nil {
		b.writeLog(layout, &log)
		return res, err
	}
	res.Warnings = warnings
	for _, w := range warnings {
		log.WriteString(w + "\n")
		b.logger.Warn().Msg(w)
	}

	b.logger.Info().Str("output", b.cfg.Output).Msg("Linking")
	linkCmd := []string{b.cfg.Linker, "@" + layout.ResponseFile()}
	fmt.Fprintf(&log, "Linking command: %s %s\n", linkCmd[0], linkCmd[1])
	linkResults, linkErrs := b.runner.Run([]scheduler.Job{scheduler.NewJob(b.cfg.Output, linkCmd...)})
	if len(linkErrs) > 0 {
		fmt.Fprintf(&log, "error: %v\n", linkErrs[0])
		b.writeLog(layout, &log)
		return res, linkErrs[0]
	}
	if len(linkResults) == 1 {
		res.Link = &linkResults[0]
	}
	if err := scheduler.WriteResults(&log, linkResults); err != nil {
		return res, err
	}
	b.writeLog(layout, &log)

	if res.Link == nil || res.Link.Failed() {
		return res, errors.Newf(errors.ErrJobFailure, "linking %s failed - see %s", b.cfg.Output, res.LogPath)
	}
	res.Output, _ = layout.OutputPaths(b.cfg.Output)
	return res, nil
}

func (b *Builder) writeLog(l Layout, log *bytes.Buffer) {
	if err := b.fs.WriteFile(l.LogPath(), log.Bytes(), 0644); err != nil {
		b.logger.Error().Err(err).Str("path", l.LogPath()).Msg("Failed to write build log")
	}
}

// inJobOrder reorders results to follow the submitted jobs, dropping jobs
// that never started.
func inJobOrder(jobs []scheduler.Job, results []scheduler.JobResult) []scheduler.JobResult {
	byID := make(map[uuid.UUID]scheduler.JobResult, len(results))
	for _, r := range results {
		byID[r.JobID] = r
	}
	ordered := make([]scheduler.JobResult, 0, len(results))
	for _, j := range jobs {
		if r, ok := byID[j.ID]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered
}
