// Package build compiles and links the project through the job scheduler.
//
// A build configuration ("release", "debug") selects a profile from the
// configuration whose defines and flags are added to the base ones. Every
// source becomes one compile job; their output is collected in build.log in
// source order. When the number of failed compiles stays within the failure
// budget a link response file is written and the linker runs as one more
// job.
package build
