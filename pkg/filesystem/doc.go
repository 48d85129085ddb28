// Package filesystem provides the filesystem abstraction used by tidyforge.
//
// Source files are read and patched through the FS interface so that the
// reconciliation pipeline can run against an in-memory filesystem in tests
// and against the real disk in production.
package filesystem
