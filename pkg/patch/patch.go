// Package patch splices resolved edits into file content and writes the
// result back.
package patch

import (
	"bytes"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/fixes"
)

// Apply returns content with edits spliced in. Offsets refer to the original
// content. edits must target one file, be ascending and must not overlap;
// anything else is an INVARIANT_VIOLATION and no content is produced.
func Apply(content []byte, edits []fixes.Edit) ([]byte, error) {
	if err := check(content, edits); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + growth(edits))

	pos := 0
	for _, e := range edits {
		buf.Write(content[pos:e.Offset])
		buf.WriteString(e.Text)
		pos = e.End()
	}
	buf.Write(content[pos:])
	return buf.Bytes(), nil
}

func check(content []byte, edits []fixes.Edit) error {
	prevEnd := 0
	for i, e := range edits {
		switch {
		case e.Offset < 0 || e.Length < 0:
			return violation(e, i, "negative offset or length")
		case e.End() > len(content):
			return violation(e, i, "range ends past the end of the content").
				WithDetail("size", len(content))
		case e.FilePath != edits[0].FilePath:
			return violation(e, i, "edits target more than one file")
		case e.Offset < prevEnd:
			return violation(e, i, "edit overlaps or precedes the previous one").
				WithDetail("previousEnd", prevEnd)
		}
		prevEnd = e.End()
	}
	return nil
}

func violation(e fixes.Edit, index int, msg string) *errors.TidyError {
	return errors.New(errors.ErrInvariantViolation, msg).
		WithDetail("edit", e.String()).
		WithDetail("index", index)
}

func growth(edits []fixes.Edit) int {
	n := 0
	for _, e := range edits {
		n += len(e.Text) - e.Length
	}
	if n < 0 {
		return 0
	}
	return n
}
