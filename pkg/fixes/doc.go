// Package fixes models clang-tidy fix proposals.
//
// A fix document (the file written by clang-tidy --export-fixes) comes in
// three shapes: a bare list of diagnostics, an object with a Diagnostics key,
// or a single diagnostic object. Parse normalizes all of them into a
// Document, and Edits flattens the document into the Edit values the
// reconciliation pipeline works on. Every Edit remembers where it came from
// (Ref) so a processed document can be written back in the original shape.
package fixes
