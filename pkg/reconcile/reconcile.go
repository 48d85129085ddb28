// Package reconcile turns analyzer fix documents into patched files.
//
// Reconciliation runs in two phases. Plan reads every target file once,
// classifies each proposed edit with the rule filter and resolves overlaps,
// producing a FilePlan per file and the processed fix document. Apply then
// splices the surviving edits, scans the result for corruption signatures
// and commits files that pass. Files are independent and are handled in
// parallel; the work on a single file is strictly sequential.
package reconcile

import (
	"context"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/fixes"
	"github.com/arthur-debert/tidyforge/pkg/logging"
	"github.com/arthur-debert/tidyforge/pkg/rules"
	"github.com/rs/zerolog"
)

// Options configures a Reconciler. Zero values select defaults.
type Options struct {
	FS            filesystem.FS
	Filter        *rules.Filter
	ContextRadius int
	// Parallelism caps the files worked on at once; 0 means no limit.
	Parallelism int
	DryRun      bool
}

// Reconciler runs the filter, resolve, apply, validate, commit pipeline.
type Reconciler struct {
	fs          filesystem.FS
	filter      *rules.Filter
	radius      int
	parallelism int
	dryRun      bool
	logger      zerolog.Logger
}

// New creates a Reconciler.
func New(opts Options) *Reconciler {
	r := &Reconciler{
		fs:          opts.FS,
		filter:      opts.Filter,
		radius:      opts.ContextRadius,
		parallelism: opts.Parallelism,
		dryRun:      opts.DryRun,
		logger:      logging.GetLogger("reconcile"),
	}
	if r.fs == nil {
		r.fs = filesystem.NewOS()
	}
	if r.filter == nil {
		r.filter = rules.Default()
	}
	if r.radius <= 0 {
		r.radius = rules.DefaultContextRadius
	}
	return r
}

// Run reconciles the given fix documents as one batch. Documents are
// merged first so that edits from different documents touching the same
// file are resolved against each other. A processed document is written
// next to every input, also in dry-run mode.
func (r *Reconciler) Run(ctx context.Context, paths []string) (*Report, error) {
	done := logging.LogOperationStart(r.logger, "reconcile")
	defer done()

	if len(paths) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no fix documents given")
	}

	docs := make([]*fixes.Document, 0, len(paths))
	for _, p := range paths {
		doc, err := fixes.Load(r.fs, p)
		if err != nil {
			return nil, err
		}
		r.logger.Debug().
			Str("path", p).
			Str("shape", doc.Shape.String()).
			Int("diagnostics", len(doc.Diagnostics)).
			Msg("Loaded fix document")
		docs = append(docs, doc)
	}

	plan, err := r.Plan(ctx, fixes.Merge(docs...))
	if err != nil {
		return nil, err
	}

	var processed []string
	for i, part := range plan.Document.Split(docs...) {
		out := fixes.ProcessedPath(paths[i])
		if err := fixes.Save(r.fs, out, part); err != nil {
			return nil, err
		}
		processed = append(processed, out)
	}

	report, err := r.Apply(ctx, plan)
	if err != nil {
		return nil, err
	}
	report.Processed = processed
	return report, nil
}
