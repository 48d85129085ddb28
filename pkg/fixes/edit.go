package fixes

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Ref locates a replacement inside the Document it was read from.
type Ref struct {
	Diagnostic  int
	Replacement int
}

// Edit is a single proposed text replacement in one file.
type Edit struct {
	FilePath string
	Offset   int
	Length   int
	Text     string
	Origin   string // diagnostic or check name
	Ref      Ref
}

// End returns the exclusive end offset of the replaced range.
func (e Edit) End() int {
	return e.Offset + e.Length
}

// Overlaps reports whether the half-open ranges of e and other intersect.
// Edits on different files never overlap.
func (e Edit) Overlaps(other Edit) bool {
	if e.FilePath != other.FilePath {
		return false
	}
	return e.Offset < other.End() && other.Offset < e.End()
}

// SameChange reports whether e and other describe the identical replacement.
func (e Edit) SameChange(other Edit) bool {
	return e.FilePath == other.FilePath &&
		e.Offset == other.Offset &&
		e.Length == other.Length &&
		e.Text == other.Text
}

// WithText returns a copy of e carrying a different replacement text.
func (e Edit) WithText(text string) Edit {
	e.Text = text
	return e
}

func (e Edit) String() string {
	return fmt.Sprintf("%s[%d:%d]=%q (%s)", e.FilePath, e.Offset, e.End(), e.Text, e.Origin)
}

// CanonicalPath returns the cleaned absolute form of path, so that every
// spelling of one file maps to the same key. When the working directory is
// unknown the cleaned path is returned.
func CanonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// GroupByFile splits edits per cleaned file path, keeping the input order
// inside each group. Edits in a group carry the cleaned path. The returned
// paths are sorted.
func GroupByFile(edits []Edit) (map[string][]Edit, []string) {
	groups := make(map[string][]Edit)
	for _, e := range edits {
		e.FilePath = filepath.Clean(e.FilePath)
		groups[e.FilePath] = append(groups[e.FilePath], e)
	}
	paths := make([]string, 0, len(groups))
	for p := range groups {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return groups, paths
}
