// Test Type: Unit Test
// Description: Tests for rendering command results as text and JSON

package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/tidyforge/pkg/build"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/output"
	"github.com/arthur-debert/tidyforge/pkg/reconcile"
	"github.com/arthur-debert/tidyforge/pkg/scheduler"
	"github.com/arthur-debert/tidyforge/pkg/tidy"
	"github.com/arthur-debert/tidyforge/pkg/validate"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *reconcile.Report {
	return &reconcile.Report{
		Files: []reconcile.FileReport{
			{Path: "src/a.cpp", Proposed: 3, Filtered: 1, Applied: 2, Committed: true},
			{
				Path:     "src/b.cpp",
				Proposed: 1,
				Findings: []validate.Finding{{Signature: "fused-null-identifier", Match: "p = NULLptr", Line: 4, Column: 2}},
				Err:      errors.New(errors.ErrCorruptionDetected, "corruption detected in src/b.cpp"),
			},
		},
		Processed: []string{"fixes/combined-fixes.processed.yaml"},
	}
}

func TestRenderReconcile(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		r := output.NewRenderer(&buf, output.FormatText)

		require.NoError(t, r.RenderReconcile(sampleReport()))

		out := buf.String()
		assert.Contains(t, out, "Reconcile")
		assert.Contains(t, out, "src/a.cpp")
		assert.Contains(t, out, "patched")
		assert.Contains(t, out, "corruption detected in src/b.cpp")
		assert.Contains(t, out, "fused-null-identifier")
		assert.Contains(t, out, "4:2")
		assert.Contains(t, out, "proposed 4, filtered 1")
		assert.Contains(t, out, "combined-fixes.processed.yaml")
	})

	t.Run("dry run title", func(t *testing.T) {
		var buf bytes.Buffer
		rep := &reconcile.Report{DryRun: true}

		require.NoError(t, output.NewRenderer(&buf, output.FormatText).RenderReconcile(rep))
		assert.Contains(t, buf.String(), "(dry run)")
	})

	t.Run("text stays plain beside a terminal renderer", func(t *testing.T) {
		printColor, rawOutput := pterm.PrintColor, pterm.RawOutput

		var text, term bytes.Buffer
		textR := output.NewRenderer(&text, output.FormatText)
		termR := output.NewRenderer(&term, output.FormatTerminal)

		require.NoError(t, termR.RenderReconcile(sampleReport()))
		require.NoError(t, textR.RenderReconcile(sampleReport()))

		assert.NotContains(t, text.String(), "\x1b[")
		assert.Contains(t, text.String(), "src/a.cpp")
		assert.Equal(t, printColor, pterm.PrintColor)
		assert.Equal(t, rawOutput, pterm.RawOutput)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r := output.NewRenderer(&buf, output.FormatJSON)

		require.NoError(t, r.RenderReconcile(sampleReport()))

		var got struct {
			Files []struct {
				Path     string `json:"path"`
				Applied  int    `json:"applied"`
				Passed   bool   `json:"passed"`
				Error    string `json:"error"`
				Findings []validate.Finding
			} `json:"files"`
			Totals struct {
				Proposed int `json:"proposed"`
			} `json:"totals"`
			DryRun bool `json:"dryRun"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got.Files, 2)
		assert.True(t, got.Files[0].Passed)
		assert.Equal(t, 2, got.Files[0].Applied)
		assert.False(t, got.Files[1].Passed)
		assert.Contains(t, got.Files[1].Error, "corruption")
		assert.Len(t, got.Files[1].Findings, 1)
		assert.Equal(t, 4, got.Totals.Proposed)
		assert.False(t, got.DryRun)
	})
}

func TestRenderBuild(t *testing.T) {
	res := &build.Result{
		Profile: "release",
		Sources: 2,
		Failed:  1,
		Compile: []scheduler.JobResult{
			{Label: "src/a.cpp"},
			{Label: "src/b.cpp", ExitCode: 1},
		},
		Warnings: []string{"missing object build/release/b.o"},
		LogPath:  "out/release/build.log",
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewRenderer(&buf, output.FormatText).RenderBuild(res, nil))

		out := buf.String()
		assert.Contains(t, out, "Build release")
		assert.Contains(t, out, "2 sources, 1 failed")
		assert.Contains(t, out, "src/b.cpp")
		assert.NotContains(t, out, "src/a.cpp")
		assert.Contains(t, out, "missing object")
		assert.Contains(t, out, "link skipped")
		assert.Contains(t, out, "out/release/build.log")
	})

	t.Run("linked", func(t *testing.T) {
		linked := *res
		linked.Link = &scheduler.JobResult{Label: "link"}
		linked.Output = "out/release/app"

		var buf bytes.Buffer
		require.NoError(t, output.NewRenderer(&buf, output.FormatText).RenderBuild(&linked, nil))
		assert.Contains(t, buf.String(), "linked out/release/app")
	})

	t.Run("json carries error", func(t *testing.T) {
		var buf bytes.Buffer
		err := errors.New(errors.ErrJobFailure, "1 of 2 jobs failed")
		require.NoError(t, output.NewRenderer(&buf, output.FormatJSON).RenderBuild(res, err))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "[JOB_FAILURE] 1 of 2 jobs failed", got["error"])
		result, ok := got["result"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "release", result["profile"])
	})
}

func TestRenderTidy(t *testing.T) {
	res := &tidy.Result{
		Sources:  3,
		FixFiles: []string{"fixes/src_a.yaml", "fixes/src_b.yaml"},
		Combined: "fixes/combined-fixes.yaml",
		Edits:    7,
		LogPath:  "fixes/clang-tidy.log",
	}

	var buf bytes.Buffer
	require.NoError(t, output.NewRenderer(&buf, output.FormatText).RenderTidy(res))

	out := buf.String()
	assert.Contains(t, out, "3 sources analyzed")
	assert.Contains(t, out, "2 fix documents, 7 proposed edits")
	assert.Contains(t, out, "fixes/combined-fixes.yaml")
}

func TestRenderValidation(t *testing.T) {
	results := []validate.FileResult{
		{Path: "clean.cpp"},
		{Path: "bad.cpp", Findings: []validate.Finding{{Signature: "extra-closing-paren", Match: "f());", Line: 1, Column: 1}},
			Err: errors.New(errors.ErrCorruptionDetected, "corruption detected in bad.cpp")},
		{Path: "gone.cpp", Err: errors.New(errors.ErrFileRead, "cannot read gone.cpp")},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewRenderer(&buf, output.FormatText).RenderValidation(results))

		out := buf.String()
		assert.Contains(t, out, "clean.cpp")
		assert.Contains(t, out, "extra-closing-paren")
		assert.Contains(t, out, "cannot read gone.cpp")
		assert.Contains(t, out, "2 of 3 files failed validation")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewRenderer(&buf, output.FormatJSON).RenderValidation(results))

		var got struct {
			Files []struct {
				Path   string `json:"path"`
				Passed bool   `json:"passed"`
			} `json:"files"`
			Failed int `json:"failed"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 2, got.Failed)
		require.Len(t, got.Files, 3)
		assert.True(t, got.Files[0].Passed)
		assert.False(t, got.Files[2].Passed)
	})
}

func TestRenderError(t *testing.T) {
	err := errors.New(errors.ErrConfigValid, "bad radius").WithDetail("field", "reconcile.context_radius")

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewRenderer(&buf, output.FormatText).RenderError(err))
		assert.Equal(t, "Error: [CONFIG_INVALID] bad radius\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, output.NewRenderer(&buf, output.FormatJSON).RenderError(err))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "CONFIG_INVALID", got["code"])
		details, ok := got["details"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "reconcile.context_radius", details["field"])
	})
}
