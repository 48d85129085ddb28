package rules

import (
	"regexp"

	"github.com/arthur-debert/tidyforge/pkg/fixes"
)

// Verdict is the outcome of classifying one edit.
type Verdict int

const (
	Accept Verdict = iota
	Reject
	Rewrite
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Rewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// MarshalText renders the verdict by name in JSON reports.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Action says what a matching rule does to an edit.
type Action int

const (
	ActionReject Action = iota
	ActionRewrite
)

// Category groups rules in the built-in table.
type Category string

const (
	CategoryDialect    Category = "dialect"
	CategoryCorruption Category = "corruption"
	CategoryContext    Category = "context"
	CategoryCatchAll   Category = "catch-all"
	CategoryConversion Category = "conversion"
	CategoryUser       Category = "user"
)

// Rule is one entry of the filter table.
type Rule struct {
	Name     string
	Category Category
	Action   Action

	// Pattern is matched against the replacement text.
	Pattern *regexp.Regexp

	// Context, when set, must also match the source text around the edit.
	// Rules with a Context never fire on an empty context window.
	Context *regexp.Regexp

	// Confirm is an extra predicate on the replacement text.
	Confirm func(text string) bool

	// Replace is the expansion template for rewrite rules ($1, ${name}).
	Replace string

	// Trim matches Pattern against the whitespace-trimmed text.
	Trim bool

	Description string
}

// Decision is the result of Classify.
type Decision struct {
	Verdict  Verdict
	Rule     string
	Category Category
	Reason   string
	// Edit is the input edit, or its rewritten copy for Rewrite.
	Edit fixes.Edit
}
