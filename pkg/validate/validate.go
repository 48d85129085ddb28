// Package validate scans patched content for the text shapes that known
// analyzer corruption leaves behind. An empty scan is a pass.
package validate

import (
	"bytes"
	"regexp"
	"sort"

	"github.com/arthur-debert/tidyforge/pkg/errors"
)

// Signature is a known corruption shape.
type Signature struct {
	Name        string
	Description string
	Pattern     *regexp.Regexp
	// Confirm, when set, must accept the full line holding the match.
	Confirm func(line []byte) bool
}

// Finding is one signature match.
type Finding struct {
	Signature string `json:"signature"`
	Match     string `json:"match"`
	Offset    int    `json:"offset"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
}

func unbalancedLine(line []byte) bool {
	return bytes.Count(line, []byte(")")) > bytes.Count(line, []byte("("))
}

var signatures = []Signature{
	{
		Name:        "va-arg-null-assignment",
		Description: "NULL assigned inside a va_arg call",
		Pattern:     regexp.MustCompile(`va_arg\([^,]+\s*=\s*NULL`),
	},
	{
		Name:        "fused-null-identifier",
		Description: "NULL fused into the identifier that follows it",
		Pattern:     regexp.MustCompile(`\w*\s*= NULL[a-z]\w*`),
	},
	{
		Name:        "extra-closing-paren",
		Description: "call followed by an extra closing parenthesis",
		Pattern:     regexp.MustCompile(`\w+\(\)\);`),
		Confirm:     unbalancedLine,
	},
	{
		Name:        "truncated-libc-call",
		Description: "libc function name truncated into a NULL assignment",
		Pattern:     regexp.MustCompile(`\b(?:strle|strcp|strcm|strca|memcp|memse|sprint)\s*=\s*NULL`),
	},
}

// Signatures returns the signature table.
func Signatures() []Signature {
	out := make([]Signature, len(signatures))
	copy(out, signatures)
	return out
}

// Scan returns every signature match in content, ordered by offset and then
// by table order.
func Scan(content []byte) []Finding {
	var findings []Finding
	for _, sig := range signatures {
		for _, loc := range sig.Pattern.FindAllIndex(content, -1) {
			line, col, start, end := locate(content, loc[0])
			if sig.Confirm != nil && !sig.Confirm(content[start:end]) {
				continue
			}
			findings = append(findings, Finding{
				Signature: sig.Name,
				Match:     string(content[loc[0]:loc[1]]),
				Offset:    loc[0],
				Line:      line,
				Column:    col,
			})
		}
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Offset < findings[j].Offset
	})
	return findings
}

// locate returns the 1-based line and column of offset and the bounds of
// the line holding it.
func locate(content []byte, offset int) (line, col, start, end int) {
	start = bytes.LastIndexByte(content[:offset], '\n') + 1
	line = bytes.Count(content[:start], []byte("\n")) + 1
	col = offset - start + 1
	end = bytes.IndexByte(content[offset:], '\n')
	if end < 0 {
		end = len(content)
	} else {
		end += offset
	}
	return line, col, start, end
}

// Check scans content and turns any finding into a CORRUPTION_DETECTED error.
func Check(path string, content []byte) ([]Finding, error) {
	findings := Scan(content)
	if len(findings) == 0 {
		return nil, nil
	}
	return findings, errors.Newf(errors.ErrCorruptionDetected,
		"%s: %d corruption signature(s) found", path, len(findings)).
		WithDetail("first", findings[0].Signature).
		WithDetail("line", findings[0].Line)
}
