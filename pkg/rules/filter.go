package rules

import (
	"strings"

	"github.com/arthur-debert/tidyforge/pkg/fixes"
)

// DefaultContextRadius is the number of bytes read on each side of an edit.
const DefaultContextRadius = 100

// Filter classifies edits against an ordered rule table. It is safe for
// concurrent use; the table is never modified after construction.
type Filter struct {
	rejects  []Rule
	rewrites []Rule
}

// NewFilter creates a filter over rules, keeping their relative order.
func NewFilter(rules []Rule) *Filter {
	f := &Filter{}
	for _, r := range rules {
		if r.Action == ActionRewrite {
			f.rewrites = append(f.rewrites, r)
		} else {
			f.rejects = append(f.rejects, r)
		}
	}
	return f
}

// Default creates a filter over the built-in table.
func Default() *Filter {
	return NewFilter(DefaultRules())
}

// Len returns the number of rules in the table.
func (f *Filter) Len() int {
	return len(f.rejects) + len(f.rewrites)
}

// Classify decides what happens to edit. context is the source text around
// the edit (see ContextWindow) and may be empty.
func (f *Filter) Classify(edit fixes.Edit, context string) Decision {
	for i := range f.rejects {
		r := &f.rejects[i]
		if r.matches(edit.Text, context) {
			return Decision{
				Verdict:  Reject,
				Rule:     r.Name,
				Category: r.Category,
				Reason:   r.Description,
				Edit:     edit,
			}
		}
	}

	for i := range f.rewrites {
		r := &f.rewrites[i]
		if !r.matches(edit.Text, context) {
			continue
		}
		text := r.Pattern.ReplaceAllString(edit.Text, r.Replace)
		if text == edit.Text {
			break
		}
		return Decision{
			Verdict:  Rewrite,
			Rule:     r.Name,
			Category: r.Category,
			Reason:   r.Description,
			Edit:     edit.WithText(text),
		}
	}

	return Decision{Verdict: Accept, Edit: edit}
}

func (r *Rule) matches(text, context string) bool {
	if r.Context != nil {
		if context == "" || !r.Context.MatchString(context) {
			return false
		}
	}
	if r.Trim {
		text = strings.TrimSpace(text)
	}
	if !r.Pattern.MatchString(text) {
		return false
	}
	return r.Confirm == nil || r.Confirm(text)
}

// ContextWindow returns up to radius bytes on each side of offset, clamped
// to the content.
func ContextWindow(content []byte, offset, radius int) string {
	if radius <= 0 || len(content) == 0 {
		return ""
	}
	start := offset - radius
	if start < 0 {
		start = 0
	}
	if start > len(content) {
		start = len(content)
	}
	end := offset + radius
	if end > len(content) {
		end = len(content)
	}
	if end < start {
		end = start
	}
	return string(content[start:end])
}
