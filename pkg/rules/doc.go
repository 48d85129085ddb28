// Package rules classifies proposed edits before they are applied.
//
// A rule is data: a name, a category, a regular expression run against the
// replacement text and optionally a second one that must match the source
// text around the edit. Rules are evaluated in table order.
//
// # Verdicts
//
// Every edit gets exactly one verdict:
//
//   - accept - no rule matched; the edit goes through unchanged
//   - reject - the first matching reject rule wins
//   - rewrite - no reject rule matched and a rewrite rule did; the edit is
//     replaced by a copy whose text went through the rule's replacement
//
// All reject rules are evaluated before any rewrite rule, so a rewrite can
// never rescue an edit that a reject rule catches. Rewritten text is not
// classified a second time.
//
// # Categories
//
// The built-in table groups rules by what they guard against:
//
//   - dialect - constructs the C++03 / VS2008 toolchain does not accept
//   - corruption - text shaped like the known analyzer corruption (NULL fused
//     into identifiers, truncated names, extra closing parentheses)
//   - context - only fires when the source around the edit matches too
//   - catch-all - any identifier immediately followed by a fused NULL
//   - conversion - rewrites (nullptr to NULL)
//
// # Configuration
//
// Project files add rules ahead of the built-in table and can disable
// built-in rules by name:
//
//	[reconcile]
//	disabled_rules = ["zero-assignment"]
//
//	[[reconcile.rules]]
//	name = "no-auto-ptr"
//	pattern = 'std::auto_ptr'
//
//	[[reconcile.rules]]
//	name = "null-macro"
//	pattern = '\bNULL_PTR\b'
//	action = "rewrite"
//	replace = "NULL"
package rules
