// Package testutil provides helpers shared by tidyforge tests.
//
// Real-disk helpers create project files and fake toolchain scripts under
// t.TempDir(); MemoryFS seeds an in-memory filesystem for tests that never
// spawn processes.
package testutil
