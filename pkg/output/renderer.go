package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/tidyforge/pkg/build"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/logging"
	"github.com/arthur-debert/tidyforge/pkg/reconcile"
	"github.com/arthur-debert/tidyforge/pkg/tidy"
	"github.com/arthur-debert/tidyforge/pkg/validate"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Renderer writes command results in one Format.
type Renderer struct {
	w      io.Writer
	format Format
	st     styles
	tbl    pterm.TablePrinter
}

// NewRenderer creates a Renderer for w. FormatAuto is resolved with
// DetectFormat.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = DetectFormat(w)
	}
	logger := logging.GetLogger("output")
	logger.Debug().
		Str("format", format.String()).
		Msg("Creating renderer")

	plain := format != FormatTerminal
	return &Renderer{
		w:      w,
		format: format,
		st:     newStyles(lipgloss.NewRenderer(w), plain),
		tbl:    newTable(plain),
	}
}

// Format returns the resolved format.
func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) json(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON output")
	}
	return nil
}

func (r *Renderer) print(s string) error {
	_, err := io.WriteString(r.w, s)
	return err
}

func (r *Renderer) table(rows [][]string) (string, error) {
	out, err := r.tbl.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render table")
	}
	return out + "\n", nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

type reconcileFileJSON struct {
	reconcile.FileReport
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// RenderReconcile writes a reconciliation report.
func (r *Renderer) RenderReconcile(rep *reconcile.Report) error {
	if r.format == FormatJSON {
		files := make([]reconcileFileJSON, 0, len(rep.Files))
		for _, f := range rep.Files {
			files = append(files, reconcileFileJSON{FileReport: f, Passed: f.Passed(), Error: errString(f.Err)})
		}
		return r.json(map[string]interface{}{
			"files":     files,
			"totals":    rep.Totals(),
			"processed": rep.Processed,
			"dryRun":    rep.DryRun,
		})
	}

	var b strings.Builder
	title := "Reconcile"
	if rep.DryRun {
		title += " (dry run)"
	}
	b.WriteString(r.st.Title.Render(title) + "\n\n")

	rows := [][]string{{"File", "Proposed", "Filtered", "Converted", "Discarded", "Applied", "Status"}}
	for _, f := range rep.Files {
		rows = append(rows, []string{
			f.Path,
			fmt.Sprint(f.Proposed),
			fmt.Sprint(f.Filtered),
			fmt.Sprint(f.Converted),
			fmt.Sprint(f.OverlapDiscarded),
			fmt.Sprint(f.Applied),
			r.fileStatus(f),
		})
	}
	tbl, err := r.table(rows)
	if err != nil {
		return err
	}
	b.WriteString(tbl)

	t := rep.Totals()
	fmt.Fprintf(&b, "\n%s proposed %d, filtered %d, converted %d, overlap-discarded %d, applied %d\n",
		r.st.Bold.Render("Totals:"), t.Proposed, t.Filtered, t.Converted, t.OverlapDiscarded, t.Applied)

	for _, f := range rep.Failed() {
		fmt.Fprintf(&b, "%s %s: %s\n", r.st.fail(), r.st.Path.Render(f.Path), f.Err)
		for _, fd := range f.Findings {
			b.WriteString(r.finding(fd))
		}
	}
	for _, p := range rep.Processed {
		fmt.Fprintf(&b, "%s %s\n", r.st.Muted.Render("Processed fixes:"), r.st.Path.Render(p))
	}
	return r.print(b.String())
}

func (r *Renderer) fileStatus(f reconcile.FileReport) string {
	switch {
	case !f.Passed():
		return r.st.fail() + " failed"
	case f.Committed:
		return r.st.ok() + " patched"
	case f.Applied > 0:
		return r.st.ok() + " clean"
	default:
		return r.st.Muted.Render("unchanged")
	}
}

func (r *Renderer) finding(f validate.Finding) string {
	return fmt.Sprintf("    %s %s %s\n",
		r.st.Muted.Render(fmt.Sprintf("%d:%d", f.Line, f.Column)),
		r.st.Warning.Render(f.Signature),
		fmt.Sprintf("%q", f.Match))
}

// RenderBuild writes a build result. err is the error Build returned, if
// any.
func (r *Renderer) RenderBuild(res *build.Result, err error) error {
	if r.format == FormatJSON {
		return r.json(map[string]interface{}{
			"result": res,
			"error":  errString(err),
		})
	}

	var b strings.Builder
	b.WriteString(r.st.Title.Render("Build "+res.Profile) + "\n\n")
	fmt.Fprintf(&b, "%d sources, %d failed\n", res.Sources, res.Failed)
	for _, j := range res.Compile {
		if j.Failed() {
			fmt.Fprintf(&b, "%s %s %s\n", r.st.fail(), r.st.Path.Render(j.Label),
				r.st.Muted.Render(fmt.Sprintf("(exit %d)", j.ExitCode)))
		}
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&b, "%s %s\n", r.st.warn(), w)
	}
	switch {
	case res.Link == nil:
		fmt.Fprintf(&b, "%s link skipped\n", r.st.Muted.Render("-"))
	case res.Link.Failed():
		fmt.Fprintf(&b, "%s link %s failed (exit %d)\n", r.st.fail(), res.Link.Label, res.Link.ExitCode)
	default:
		fmt.Fprintf(&b, "%s linked %s\n", r.st.ok(), r.st.Path.Render(res.Output))
	}
	fmt.Fprintf(&b, "%s %s\n", r.st.Muted.Render("Log:"), r.st.Path.Render(res.LogPath))
	return r.print(b.String())
}

// RenderTidy writes an analysis result.
func (r *Renderer) RenderTidy(res *tidy.Result) error {
	if r.format == FormatJSON {
		return r.json(res)
	}

	var b strings.Builder
	b.WriteString(r.st.Title.Render("Analysis") + "\n\n")
	fmt.Fprintf(&b, "%d sources analyzed, %d with a non-zero exit\n", res.Sources, res.Failed)
	fmt.Fprintf(&b, "%d fix documents, %d proposed edits\n", len(res.FixFiles), res.Edits)
	if res.Combined != "" {
		fmt.Fprintf(&b, "%s %s\n", r.st.Muted.Render("Merged fixes:"), r.st.Path.Render(res.Combined))
	}
	fmt.Fprintf(&b, "%s %s\n", r.st.Muted.Render("Log:"), r.st.Path.Render(res.LogPath))
	return r.print(b.String())
}

type validateFileJSON struct {
	validate.FileResult
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// RenderValidation writes corruption scan results.
func (r *Renderer) RenderValidation(results []validate.FileResult) error {
	if r.format == FormatJSON {
		files := make([]validateFileJSON, 0, len(results))
		for _, f := range results {
			files = append(files, validateFileJSON{FileResult: f, Passed: f.Passed(), Error: errString(f.Err)})
		}
		return r.json(map[string]interface{}{"files": files, "failed": validate.Failed(results)})
	}

	var b strings.Builder
	for _, f := range results {
		switch {
		case f.Passed():
			fmt.Fprintf(&b, "%s %s\n", r.st.ok(), r.st.Path.Render(f.Path))
		case len(f.Findings) == 0:
			fmt.Fprintf(&b, "%s %s: %s\n", r.st.fail(), r.st.Path.Render(f.Path), f.Err)
		default:
			fmt.Fprintf(&b, "%s %s\n", r.st.fail(), r.st.Path.Render(f.Path))
			for _, fd := range f.Findings {
				b.WriteString(r.finding(fd))
			}
		}
	}
	fmt.Fprintf(&b, "\n%d of %d files failed validation\n", validate.Failed(results), len(results))
	return r.print(b.String())
}

// RenderError writes an error with its code.
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatJSON {
		return r.json(map[string]interface{}{
			"error":   err.Error(),
			"code":    errors.GetErrorCode(err),
			"details": errors.GetErrorDetails(err),
		})
	}
	return r.print(fmt.Sprintf("%s %s\n", r.st.Error.Render("Error:"), err))
}

// RenderMessage writes a plain line.
func (r *Renderer) RenderMessage(msg string) error {
	if r.format == FormatJSON {
		return r.json(map[string]string{"message": msg})
	}
	return r.print(msg + "\n")
}
