package fixes

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"gopkg.in/yaml.v3"
)

// Shape records which top-level layout a fix document used.
type Shape int

const (
	// ShapeWrapped is an object with MainSourceFile and Diagnostics keys.
	ShapeWrapped Shape = iota
	// ShapeList is a bare sequence of diagnostics.
	ShapeList
	// ShapeSingle is one diagnostic object at the top level.
	ShapeSingle
)

func (s Shape) String() string {
	switch s {
	case ShapeWrapped:
		return "wrapped"
	case ShapeList:
		return "list"
	case ShapeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Replacement is one textual change proposed by a diagnostic.
type Replacement struct {
	FilePath        string `yaml:"FilePath"`
	Offset          int    `yaml:"Offset"`
	Length          int    `yaml:"Length"`
	ReplacementText string `yaml:"ReplacementText"`
}

// Range is a highlighted source range attached to a message.
type Range struct {
	FilePath   string `yaml:"FilePath"`
	FileOffset int    `yaml:"FileOffset"`
	Length     int    `yaml:"Length"`
}

// Message is the primary message of a diagnostic or one of its notes.
type Message struct {
	Message      string        `yaml:"Message"`
	FilePath     string        `yaml:"FilePath"`
	FileOffset   int           `yaml:"FileOffset"`
	Replacements []Replacement `yaml:"Replacements"`
	Ranges       []Range       `yaml:"Ranges,omitempty"`
}

// Diagnostic is a single clang-tidy finding.
type Diagnostic struct {
	DiagnosticName    string    `yaml:"DiagnosticName"`
	DiagnosticMessage Message   `yaml:"DiagnosticMessage"`
	Notes             []Message `yaml:"Notes,omitempty"`
	Level             string    `yaml:"Level,omitempty"`
	BuildDirectory    string    `yaml:"BuildDirectory,omitempty"`
}

// Document is a normalized fix document.
type Document struct {
	Shape          Shape
	MainSourceFile string
	Diagnostics    []Diagnostic
}

type wrappedDocument struct {
	MainSourceFile string       `yaml:"MainSourceFile,omitempty"`
	Diagnostics    []Diagnostic `yaml:"Diagnostics"`
}

// Parse decodes a fix document in any of the accepted shapes.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, errors.ErrFixesParse, "failed to parse fix document")
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return &Document{Shape: ShapeWrapped}, nil
		}
		node = node.Content[0]
	}

	doc := &Document{}
	switch node.Kind {
	case 0:
		doc.Shape = ShapeWrapped
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return nil, errors.Newf(errors.ErrFixesInvalid,
				"fix document must be a list or a mapping, got scalar %q", node.Value)
		}
		doc.Shape = ShapeWrapped
	case yaml.SequenceNode:
		doc.Shape = ShapeList
		if err := node.Decode(&doc.Diagnostics); err != nil {
			return nil, errors.Wrap(err, errors.ErrFixesParse, "failed to decode diagnostic list")
		}
	case yaml.MappingNode:
		switch {
		case hasKey(node, "Diagnostics"):
			var w wrappedDocument
			if err := node.Decode(&w); err != nil {
				return nil, errors.Wrap(err, errors.ErrFixesParse, "failed to decode fix document")
			}
			doc.Shape = ShapeWrapped
			doc.MainSourceFile = w.MainSourceFile
			doc.Diagnostics = w.Diagnostics
		case hasKey(node, "DiagnosticMessage"):
			var d Diagnostic
			if err := node.Decode(&d); err != nil {
				return nil, errors.Wrap(err, errors.ErrFixesParse, "failed to decode diagnostic")
			}
			doc.Shape = ShapeSingle
			doc.Diagnostics = []Diagnostic{d}
		default:
			return nil, errors.New(errors.ErrFixesInvalid,
				"fix document has neither Diagnostics nor DiagnosticMessage")
		}
	default:
		return nil, errors.Newf(errors.ErrFixesInvalid, "unsupported fix document node kind %d", node.Kind)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

func (d *Document) validate() error {
	for di, diag := range d.Diagnostics {
		for ri, r := range diag.DiagnosticMessage.Replacements {
			var problem string
			switch {
			case r.FilePath == "":
				problem = "has no FilePath"
			case r.Offset < 0:
				problem = "has a negative Offset"
			case r.Length < 0:
				problem = "has a negative Length"
			default:
				continue
			}
			return errors.Newf(errors.ErrFixesInvalid, "replacement %d of diagnostic %q %s",
				ri, diag.DiagnosticName, problem).
				WithDetail("diagnostic", di).
				WithDetail("replacement", ri)
		}
	}
	return nil
}

// Edits flattens the document into edits in document order. File paths
// are canonicalized with CanonicalPath; the document keeps the spelling it
// was read with.
func (d *Document) Edits() []Edit {
	var edits []Edit
	for di, diag := range d.Diagnostics {
		for ri, r := range diag.DiagnosticMessage.Replacements {
			edits = append(edits, Edit{
				FilePath: CanonicalPath(r.FilePath),
				Offset:   r.Offset,
				Length:   r.Length,
				Text:     r.ReplacementText,
				Origin:   diag.DiagnosticName,
				Ref:      Ref{Diagnostic: di, Replacement: ri},
			})
		}
	}
	return edits
}

// Retain returns a copy of the document whose replacements are limited to
// the given edits, carrying their (possibly rewritten) text. Diagnostics
// left without replacements are kept so the audit trail stays complete.
// Replacements attached to notes are dropped since they are never applied.
func (d *Document) Retain(kept []Edit) *Document {
	byRef := make(map[Ref]Edit, len(kept))
	for _, e := range kept {
		byRef[e.Ref] = e
	}

	out := &Document{
		Shape:          d.Shape,
		MainSourceFile: d.MainSourceFile,
		Diagnostics:    make([]Diagnostic, len(d.Diagnostics)),
	}
	for di, diag := range d.Diagnostics {
		nd := diag
		nd.DiagnosticMessage.Replacements = []Replacement{}
		for ri, r := range diag.DiagnosticMessage.Replacements {
			e, ok := byRef[Ref{Diagnostic: di, Replacement: ri}]
			if !ok {
				continue
			}
			r.ReplacementText = e.Text
			nd.DiagnosticMessage.Replacements = append(nd.DiagnosticMessage.Replacements, r)
		}
		if len(diag.Notes) > 0 {
			nd.Notes = make([]Message, len(diag.Notes))
			for ni, note := range diag.Notes {
				note.Replacements = []Replacement{}
				nd.Notes[ni] = note
			}
		}
		out.Diagnostics[di] = nd
	}
	return out
}

// Merge concatenates the diagnostics of several documents into one wrapped
// document. Refs taken from the inputs are not valid against the result.
func Merge(docs ...*Document) *Document {
	out := &Document{Shape: ShapeWrapped}
	for _, d := range docs {
		if d == nil {
			continue
		}
		if out.MainSourceFile == "" {
			out.MainSourceFile = d.MainSourceFile
		}
		out.Diagnostics = append(out.Diagnostics, d.Diagnostics...)
	}
	return out
}

// Encode writes the document as YAML in its original shape.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	var v interface{}
	switch d.Shape {
	case ShapeList:
		diags := d.Diagnostics
		if diags == nil {
			diags = []Diagnostic{}
		}
		v = diags
	case ShapeSingle:
		if len(d.Diagnostics) == 1 {
			v = d.Diagnostics[0]
		} else {
			v = wrappedDocument{MainSourceFile: d.MainSourceFile, Diagnostics: d.Diagnostics}
		}
	default:
		v = wrappedDocument{MainSourceFile: d.MainSourceFile, Diagnostics: d.Diagnostics}
	}

	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode fix document")
	}
	return enc.Close()
}

// Load reads and parses a fix document from fs.
func Load(fs filesystem.FS, path string) (*Document, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read fix document %s", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "invalid fix document %s", path)
	}
	return doc, nil
}

// Save encodes the document to path.
func Save(fs filesystem.FS, path string, doc *Document) error {
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return err
	}
	if err := fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write fix document %s", path)
	}
	return nil
}

// ProcessedPath returns the audit document path for a fix document,
// e.g. fixes.yaml -> fixes.processed.yaml.
func ProcessedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".processed.yaml"
}

// Split cuts a document built by Merge(parts...) back into one document per
// part, each with the shape and main source file of its part.
func (d *Document) Split(parts ...*Document) []*Document {
	out := make([]*Document, 0, len(parts))
	pos := 0
	for _, p := range parts {
		if p == nil {
			out = append(out, nil)
			continue
		}
		end := pos + len(p.Diagnostics)
		if end > len(d.Diagnostics) {
			end = len(d.Diagnostics)
		}
		out = append(out, &Document{
			Shape:          p.Shape,
			MainSourceFile: p.MainSourceFile,
			Diagnostics:    d.Diagnostics[pos:end],
		})
		pos = end
	}
	return out
}
