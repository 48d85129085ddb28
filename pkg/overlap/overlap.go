// Package overlap selects a non-overlapping subset of the edits proposed for
// a file.
//
// Edits are ordered by offset (ties keep their input order) and accepted
// greedily: an edit survives when it starts at or after the end of the last
// survivor. Everything else is discarded with the survivor it collided with,
// so the first of two conflicting edits always wins.
package overlap

import (
	"sort"

	"github.com/arthur-debert/tidyforge/pkg/fixes"
)

// Reason says why an edit was discarded.
type Reason string

const (
	ReasonOverlap   Reason = "overlap"
	ReasonDuplicate Reason = "duplicate"
)

// Discard is an edit that lost to an accepted one.
type Discard struct {
	Edit     fixes.Edit `json:"edit"`
	Conflict fixes.Edit `json:"conflict"`
	Reason   Reason     `json:"reason"`
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	// Accepted is ascending by file path, then offset, and never overlaps.
	Accepted  []fixes.Edit
	Discarded []Discard
}

// Resolve partitions edits into survivors and discards. The input slice is
// not modified.
func Resolve(edits []fixes.Edit) Resolution {
	var res Resolution
	groups, paths := fixes.GroupByFile(edits)
	for _, path := range paths {
		resolveFile(groups[path], &res)
	}
	return res
}

func resolveFile(edits []fixes.Edit, res *Resolution) {
	sorted := make([]fixes.Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	first := len(res.Accepted)
	lastEnd := -1
	var last fixes.Edit
	for _, e := range sorted {
		if dup, ok := findSame(res.Accepted[first:], e); ok {
			res.Discarded = append(res.Discarded, Discard{Edit: e, Conflict: dup, Reason: ReasonDuplicate})
			continue
		}
		if e.Offset < lastEnd {
			res.Discarded = append(res.Discarded, Discard{Edit: e, Conflict: last, Reason: ReasonOverlap})
			continue
		}
		res.Accepted = append(res.Accepted, e)
		last = e
		lastEnd = e.End()
	}
}

// findSame looks for an identical change among the accepted edits that
// start where e starts. accepted is ascending by offset.
func findSame(accepted []fixes.Edit, e fixes.Edit) (fixes.Edit, bool) {
	for i := len(accepted) - 1; i >= 0 && accepted[i].Offset == e.Offset; i-- {
		if accepted[i].SameChange(e) {
			return accepted[i], true
		}
	}
	return fixes.Edit{}, false
}
