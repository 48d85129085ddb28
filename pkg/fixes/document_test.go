// Test Type: Unit Test
// Description: Tests for fix document ingestion and the processed document

package fixes_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/fixes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrappedYAML = `---
MainSourceFile: /src/CvUnit.cpp
Diagnostics:
  - DiagnosticName: cppcoreguidelines-init-variables
    DiagnosticMessage:
      Message: variable 'p' is not initialized
      FilePath: /src/CvUnit.cpp
      FileOffset: 120
      Replacements:
        - FilePath: /src/CvUnit.cpp
          Offset: 121
          Length: 0
          ReplacementText: ' = nullptr'
    Level: Warning
    BuildDirectory: /src
  - DiagnosticName: readability-container-size-empty
    DiagnosticMessage:
      Message: the 'empty' method should be used
      FilePath: /src/CvCity.cpp
      FileOffset: 40
      Replacements:
        - FilePath: /src/CvCity.cpp
          Offset: 40
          Length: 13
          ReplacementText: 'v.empty()'
        - FilePath: /src/CvCity.cpp
          Offset: 60
          Length: 1
          ReplacementText: ''
    Level: Warning
...
`

const listYAML = `
- DiagnosticName: modernize-use-bool-literals
  DiagnosticMessage:
    Message: converting integer literal to bool
    FilePath: a.cpp
    FileOffset: 10
    Replacements:
      - FilePath: a.cpp
        Offset: 10
        Length: 1
        ReplacementText: 'true'
`

const singleYAML = `
DiagnosticName: readability-redundant-string-cstr
DiagnosticMessage:
  Message: redundant call to 'c_str'
  FilePath: b.cpp
  FileOffset: 5
  Replacements:
    - FilePath: b.cpp
      Offset: 5
      Length: 9
      ReplacementText: s
`

func TestParse_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shape     fixes.Shape
		wantEdits int
	}{
		{"wrapped_object", wrappedYAML, fixes.ShapeWrapped, 3},
		{"bare_list", listYAML, fixes.ShapeList, 1},
		{"single_diagnostic", singleYAML, fixes.ShapeSingle, 1},
		{"empty_document", "", fixes.ShapeWrapped, 0},
		{"null_document", "~\n", fixes.ShapeWrapped, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := fixes.Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.shape, doc.Shape)
			assert.Len(t, doc.Edits(), tt.wantEdits)
		})
	}
}

func TestParse_EditFields(t *testing.T) {
	doc, err := fixes.Parse([]byte(wrappedYAML))
	require.NoError(t, err)
	assert.Equal(t, "/src/CvUnit.cpp", doc.MainSourceFile)

	edits := doc.Edits()
	require.Len(t, edits, 3)

	assert.Equal(t, fixes.Edit{
		FilePath: "/src/CvUnit.cpp",
		Offset:   121,
		Length:   0,
		Text:     " = nullptr",
		Origin:   "cppcoreguidelines-init-variables",
		Ref:      fixes.Ref{Diagnostic: 0, Replacement: 0},
	}, edits[0])
	assert.Equal(t, fixes.Ref{Diagnostic: 1, Replacement: 1}, edits[2].Ref)
	assert.Equal(t, "", edits[2].Text, "pure deletion keeps empty text")
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.ErrorCode
	}{
		{"malformed_yaml", "Diagnostics: [", errors.ErrFixesParse},
		{"scalar_document", "hello", errors.ErrFixesInvalid},
		{"unknown_mapping", "Foo: bar\n", errors.ErrFixesInvalid},
		{"negative_offset", `
DiagnosticName: x
DiagnosticMessage:
  Replacements:
    - {FilePath: a.cpp, Offset: -1, Length: 0, ReplacementText: ""}
`, errors.ErrFixesInvalid},
		{"negative_length", `
- DiagnosticName: x
  DiagnosticMessage:
    Replacements:
      - {FilePath: a.cpp, Offset: 1, Length: -4, ReplacementText: ""}
`, errors.ErrFixesInvalid},
		{"missing_path", `
Diagnostics:
  - DiagnosticName: x
    DiagnosticMessage:
      Replacements:
        - {Offset: 1, Length: 1, ReplacementText: ""}
`, errors.ErrFixesInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixes.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestRetain_KeepsShapeAndRewrites(t *testing.T) {
	doc, err := fixes.Parse([]byte(wrappedYAML))
	require.NoError(t, err)
	edits := doc.Edits()

	kept := []fixes.Edit{edits[0].WithText(" = NULL"), edits[2]}
	processed := doc.Retain(kept)

	require.Len(t, processed.Diagnostics, 2, "diagnostics are kept even when emptied")
	first := processed.Diagnostics[0].DiagnosticMessage.Replacements
	require.Len(t, first, 1)
	assert.Equal(t, " = NULL", first[0].ReplacementText)

	second := processed.Diagnostics[1].DiagnosticMessage.Replacements
	require.Len(t, second, 1)
	assert.Equal(t, 60, second[0].Offset)

	// the source document is untouched
	assert.Equal(t, " = nullptr", doc.Diagnostics[0].DiagnosticMessage.Replacements[0].ReplacementText)
	assert.Len(t, doc.Diagnostics[1].DiagnosticMessage.Replacements, 2)
}

func TestEncode_RoundTripsEachShape(t *testing.T) {
	for _, input := range []string{wrappedYAML, listYAML, singleYAML} {
		doc, err := fixes.Parse([]byte(input))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, doc.Encode(&buf))

		again, err := fixes.Parse(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, doc.Shape, again.Shape)
		assert.Equal(t, doc.Edits(), again.Edits())
	}
}

func TestMerge(t *testing.T) {
	a, err := fixes.Parse([]byte(listYAML))
	require.NoError(t, err)
	b, err := fixes.Parse([]byte(singleYAML))
	require.NoError(t, err)

	merged := fixes.Merge(a, nil, b)
	assert.Equal(t, fixes.ShapeWrapped, merged.Shape)

	edits := merged.Edits()
	require.Len(t, edits, 2)
	abs, err := filepath.Abs("a.cpp")
	require.NoError(t, err)
	assert.Equal(t, abs, edits[0].FilePath)
	assert.Equal(t, fixes.Ref{Diagnostic: 1, Replacement: 0}, edits[1].Ref)
}

func TestSplit(t *testing.T) {
	a, err := fixes.Parse([]byte(listYAML))
	require.NoError(t, err)
	b, err := fixes.Parse([]byte(wrappedYAML))
	require.NoError(t, err)

	merged := fixes.Merge(a, b)
	parts := merged.Split(a, b)

	require.Len(t, parts, 2)
	assert.Equal(t, fixes.ShapeList, parts[0].Shape)
	assert.Len(t, parts[0].Diagnostics, 1)
	assert.Equal(t, fixes.ShapeWrapped, parts[1].Shape)
	assert.Equal(t, "/src/CvUnit.cpp", parts[1].MainSourceFile)
	assert.Len(t, parts[1].Diagnostics, 2)
}

func TestLoadSave(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/work/fixes.yaml", []byte(listYAML), 0644))

	doc, err := fixes.Load(fs, "/work/fixes.yaml")
	require.NoError(t, err)

	out := fixes.ProcessedPath("/work/fixes.yaml")
	assert.Equal(t, "/work/fixes.processed.yaml", out)
	require.NoError(t, fixes.Save(fs, out, doc))

	again, err := fixes.Load(fs, out)
	require.NoError(t, err)
	assert.Equal(t, fixes.ShapeList, again.Shape)

	_, err = fixes.Load(fs, "/work/missing.yaml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}

func TestEdits_CanonicalPaths(t *testing.T) {
	doc, err := fixes.Parse([]byte(`Diagnostics:
  - DiagnosticName: readability-isolate-declaration
    DiagnosticMessage:
      Message: generated
      FilePath: /src/a.cpp
      FileOffset: 4
      Replacements:
        - {FilePath: /src/a.cpp, Offset: 4, Length: 5, ReplacementText: "int a"}
        - {FilePath: /src/../src/a.cpp, Offset: 6, Length: 1, ReplacementText: "b"}
        - {FilePath: /src/./inc//a.h, Offset: 0, Length: 0, ReplacementText: ""}
`))
	require.NoError(t, err)

	edits := doc.Edits()
	require.Len(t, edits, 3)
	assert.Equal(t, "/src/a.cpp", edits[0].FilePath)
	assert.Equal(t, "/src/a.cpp", edits[1].FilePath)
	assert.Equal(t, "/src/inc/a.h", edits[2].FilePath)
	assert.Equal(t, "/src/../src/a.cpp", doc.Diagnostics[0].DiagnosticMessage.Replacements[1].FilePath)
}
