package reconcile

import (
	"context"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/patch"
	"github.com/arthur-debert/tidyforge/pkg/validate"
	"golang.org/x/sync/errgroup"
)

// Apply patches, validates and commits every planned file. Per-file
// failures are recorded in the report; the returned error is only set when
// the run itself was interrupted.
func (r *Reconciler) Apply(ctx context.Context, plan *Plan) (*Report, error) {
	report := &Report{DryRun: r.dryRun, Files: make([]FileReport, len(plan.Files))}

	g, ctx := errgroup.WithContext(ctx)
	if r.parallelism > 0 {
		g.SetLimit(r.parallelism)
	}
	for i, fp := range plan.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Files[i] = r.applyFile(fp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "reconciliation interrupted")
	}
	return report, nil
}

func (r *Reconciler) applyFile(fp *FilePlan) FileReport {
	logger := r.logger.With().Str("file", fp.Path).Logger()
	fr := FileReport{
		Path:             fp.Path,
		Proposed:         fp.Proposed,
		Filtered:         len(fp.Rejected),
		Converted:        len(fp.Converted),
		OverlapDiscarded: len(fp.Discarded),
		Rejections:       fp.Rejected,
		Conversions:      fp.Converted,
		Discards:         fp.Discarded,
	}
	if fp.Err != nil {
		fr.Err = fp.Err
		return fr
	}

	patched, err := patch.Apply(fp.content, fp.Accepted)
	if err != nil {
		fr.Err = err
		logger.Error().Err(err).Msg("Refusing to patch file")
		return fr
	}
	fr.Applied = len(fp.Accepted)

	findings, err := validate.Check(fp.Path, patched)
	fr.Findings = findings
	if err != nil {
		fr.Err = err
		for _, f := range findings {
			logger.Error().
				Str("signature", f.Signature).
				Int("line", f.Line).
				Int("column", f.Column).
				Str("match", f.Match).
				Msg("Corruption detected")
		}
		return fr
	}

	if r.dryRun || fr.Applied == 0 {
		return fr
	}
	if err := patch.Commit(r.fs, fp.Path, patched); err != nil {
		fr.Err = err
		logger.Error().Err(err).Msg("Commit failed")
		return fr
	}
	fr.Committed = true
	logger.Info().Int("applied", fr.Applied).Msg("Patched file")
	return fr
}
