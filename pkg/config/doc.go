// Package config handles configuration management for tidyforge.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file, tidyforge.toml or .tidyforge.toml in the project
//     directory, or an explicit file given with --config-file
//  3. TIDYFORGE_ environment variables, sections separated by a double
//     underscore (TIDYFORGE_RECONCILE__CONTEXT_RADIUS=200)
//  4. command line overrides
//
// Reconciliation filter rules can be extended from the project file:
//
//	[[reconcile.rules]]
//	name = "no-auto-ptr"
//	pattern = 'std::auto_ptr'
//	action = "reject"
//	description = "auto_ptr is not allowed in new code"
package config
