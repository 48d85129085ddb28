// Package tidy runs clang-tidy over the project sources, one job per
// source, and merges the fixes each run exports into a single document for
// reconciliation.
package tidy

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tidyforge/pkg/build"
	"github.com/arthur-debert/tidyforge/pkg/config"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/fixes"
	"github.com/arthur-debert/tidyforge/pkg/logging"
	"github.com/arthur-debert/tidyforge/pkg/scheduler"
	"github.com/rs/zerolog"
)

const (
	// CombinedName is the merged fix document written to the fixes dir.
	CombinedName = "combined-fixes.yaml"
	// LogName is the concatenated clang-tidy output.
	LogName = "clang-tidy.log"
)

// Runner runs a batch of jobs to completion.
type Runner interface {
	Run(jobs []scheduler.Job) ([]scheduler.JobResult, []error)
}

// Result is the outcome of an analysis run.
type Result struct {
	Sources  int                   `json:"sources"`
	Jobs     []scheduler.JobResult `json:"jobs"`
	Failed   int                   `json:"failed"`
	FixFiles []string              `json:"fixFiles"`
	Combined string                `json:"combined,omitempty"`
	Edits    int                   `json:"edits"`
	LogPath  string                `json:"log"`
}

// Analyzer drives clang-tidy.
type Analyzer struct {
	fs         filesystem.FS
	runner     Runner
	cfg        config.TidyConfig
	projectDir string
	logger     zerolog.Logger
}

// NewAnalyzer creates an Analyzer for sources under projectDir.
func NewAnalyzer(fs filesystem.FS, runner Runner, cfg config.TidyConfig, projectDir string) *Analyzer {
	return &Analyzer{
		fs:         fs,
		runner:     runner,
		cfg:        cfg,
		projectDir: projectDir,
		logger:     logging.GetLogger("tidy"),
	}
}

// FixesDir is where exported and merged documents are written.
func (a *Analyzer) FixesDir() string {
	if filepath.IsAbs(a.cfg.FixesDir) {
		return a.cfg.FixesDir
	}
	return filepath.Join(a.projectDir, a.cfg.FixesDir)
}

// ExportPath returns the per-source fix document path.
func (a *Analyzer) ExportPath(source string) string {
	name := strings.ReplaceAll(filepath.ToSlash(source), "/", "_")
	return filepath.Join(a.FixesDir(), strings.TrimSuffix(name, filepath.Ext(name))+".yaml")
}

// Command returns the clang-tidy invocation for one source.
func (a *Analyzer) Command(source string) []string {
	cmd := []string{
		a.cfg.Binary,
		"--checks=" + strings.Join(a.cfg.Checks, ","),
		"--export-fixes=" + a.ExportPath(source),
	}
	if a.cfg.FormatStyle != "" {
		cmd = append(cmd, "--format-style="+a.cfg.FormatStyle)
	}
	if a.cfg.HeaderFilter != "" {
		cmd = append(cmd, "--header-filter="+a.cfg.HeaderFilter)
	}
	if a.cfg.BuildPath != "" {
		cmd = append(cmd, "-p", a.cfg.BuildPath)
	}
	cmd = append(cmd, a.cfg.ExtraArgs...)
	return append(cmd, filepath.Join(a.projectDir, source))
}

// Analyze runs clang-tidy on every configured source and merges the
// exported fixes. A non-zero clang-tidy exit is counted but does not stop
// the run, since clang-tidy still exports the fixes it found.
func (a *Analyzer) Analyze() (*Result, error) {
	done := logging.LogOperationStart(a.logger, "tidy")
	defer done()

	if len(a.cfg.Checks) == 0 {
		return nil, errors.New(errors.ErrConfigValid, "tidy.checks is empty")
	}
	sources, err := build.Sources(a.fs, a.projectDir, a.cfg.Sources)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrNotFound, "no sources matched the configured patterns").
			WithDetail("patterns", a.cfg.Sources)
	}
	if err := a.fs.MkdirAll(a.FixesDir(), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", a.FixesDir())
	}

	jobs := make([]scheduler.Job, 0, len(sources))
	for _, src := range sources {
		// stale exports from an earlier run would be merged again
		_ = a.fs.Remove(a.ExportPath(src))
		jobs = append(jobs, scheduler.NewJob(src, a.Command(src)...))
	}

	a.logger.Info().
		Int("sources", len(sources)).
		Int("checks", len(a.cfg.Checks)).
		Msg("Running clang-tidy")
	results, startErrs := a.runner.Run(jobs)
	if len(startErrs) == len(jobs) {
		return nil, startErrs[0]
	}

	res := &Result{
		Sources: len(sources),
		Jobs:    results,
		Failed:  scheduler.Summarize(results).Failed + len(startErrs),
		LogPath: filepath.Join(a.FixesDir(), LogName),
	}

	var log bytes.Buffer
	for _, err := range startErrs {
		fmt.Fprintf(&log, "error: %v\n", err)
	}
	if err := scheduler.WriteResults(&log, results); err != nil {
		return nil, err
	}
	if err := a.fs.WriteFile(res.LogPath, log.Bytes(), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", res.LogPath)
	}

	var docs []*fixes.Document
	for _, src := range sources {
		path := a.ExportPath(src)
		if _, err := a.fs.Stat(path); err != nil {
			continue
		}
		doc, err := fixes.Load(a.fs, path)
		if err != nil {
			a.logger.Warn().Err(err).Str("path", path).Msg("Ignoring unreadable fix export")
			continue
		}
		res.FixFiles = append(res.FixFiles, path)
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		a.logger.Info().Msg("clang-tidy proposed no fixes")
		return res, nil
	}

	merged := fixes.Merge(docs...)
	res.Edits = len(merged.Edits())
	res.Combined = filepath.Join(a.FixesDir(), CombinedName)
	if err := fixes.Save(a.fs, res.Combined, merged); err != nil {
		return nil, err
	}

	a.logger.Info().
		Int("documents", len(docs)).
		Int("edits", res.Edits).
		Str("combined", res.Combined).
		Msg("Merged fix exports")
	return res, nil
}
