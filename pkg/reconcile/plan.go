package reconcile

import (
	"context"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/fixes"
	"github.com/arthur-debert/tidyforge/pkg/overlap"
	"github.com/arthur-debert/tidyforge/pkg/rules"
	"golang.org/x/sync/errgroup"
)

// Rejection records an edit the filter refused.
type Rejection struct {
	Edit     fixes.Edit     `json:"edit"`
	Rule     string         `json:"rule"`
	Category rules.Category `json:"category"`
	Reason   string         `json:"reason"`
}

// Conversion records an edit the filter rewrote.
type Conversion struct {
	From string     `json:"from"`
	To   string     `json:"to"`
	Rule string     `json:"rule"`
	Edit fixes.Edit `json:"edit"`
}

// FilePlan is the planned work for one file.
type FilePlan struct {
	Path      string
	Proposed  int
	Rejected  []Rejection
	Converted []Conversion
	Discarded []overlap.Discard
	// Accepted is ascending and non-overlapping.
	Accepted []fixes.Edit
	// Err is set when the file could not be read; nothing is planned then.
	Err error

	content []byte
}

// Plan is the outcome of the filter and resolve phase.
type Plan struct {
	// Document is the input restricted to accepted edits.
	Document *fixes.Document
	// Files is sorted by path.
	Files []*FilePlan
}

// Plan classifies and resolves every edit in doc without touching any file.
func (r *Reconciler) Plan(ctx context.Context, doc *fixes.Document) (*Plan, error) {
	groups, paths := fixes.GroupByFile(doc.Edits())
	files := make([]*FilePlan, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if r.parallelism > 0 {
		g.SetLimit(r.parallelism)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i] = r.planFile(path, groups[path])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "planning interrupted")
	}

	var kept []fixes.Edit
	for _, fp := range files {
		kept = append(kept, fp.Accepted...)
	}
	return &Plan{Document: doc.Retain(kept), Files: files}, nil
}

func (r *Reconciler) planFile(path string, edits []fixes.Edit) *FilePlan {
	logger := r.logger.With().Str("file", path).Logger()
	fp := &FilePlan{Path: path, Proposed: len(edits)}

	content, err := r.fs.ReadFile(path)
	if err != nil {
		fp.Err = errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", path)
		logger.Warn().Err(err).Int("edits", len(edits)).Msg("Skipping unreadable file")
		return fp
	}
	fp.content = content

	var survivors []fixes.Edit
	for _, e := range edits {
		d := r.filter.Classify(e, rules.ContextWindow(content, e.Offset, r.radius))
		switch d.Verdict {
		case rules.Reject:
			fp.Rejected = append(fp.Rejected, Rejection{Edit: e, Rule: d.Rule, Category: d.Category, Reason: d.Reason})
			logger.Info().
				Str("rule", d.Rule).
				Int("offset", e.Offset).
				Str("text", e.Text).
				Msg("Filtered edit")
		case rules.Rewrite:
			fp.Converted = append(fp.Converted, Conversion{From: e.Text, To: d.Edit.Text, Rule: d.Rule, Edit: d.Edit})
			logger.Info().
				Str("rule", d.Rule).
				Str("from", e.Text).
				Str("to", d.Edit.Text).
				Msg("Converted edit")
			survivors = append(survivors, d.Edit)
		default:
			survivors = append(survivors, d.Edit)
		}
	}

	res := overlap.Resolve(survivors)
	fp.Accepted = res.Accepted
	fp.Discarded = res.Discarded
	for _, d := range res.Discarded {
		logger.Info().
			Str("reason", string(d.Reason)).
			Int("offset", d.Edit.Offset).
			Int("conflictOffset", d.Conflict.Offset).
			Str("conflictOrigin", d.Conflict.Origin).
			Msg("Discarded edit")
	}

	logger.Debug().
		Int("proposed", fp.Proposed).
		Int("filtered", len(fp.Rejected)).
		Int("converted", len(fp.Converted)).
		Int("overlapDiscarded", len(fp.Discarded)).
		Int("accepted", len(fp.Accepted)).
		Msg("Planned file")
	return fp
}
