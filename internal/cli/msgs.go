package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Build, analyze and safely apply clang-tidy fixes to legacy C++"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgBuildShort      = "Compile and link the project"
	MsgTidyShort       = "Run clang-tidy and apply the reconciled fixes"
	MsgReconcileShort  = "Filter, resolve and apply clang-tidy fix documents"
	MsgValidateShort   = "Scan files for corruption signatures"
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate a shell completion script"

	// Version output
	MsgVersionFormat = "tidyforge version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfigFile  = "Read configuration from this file instead of the project one"
	MsgFlagProjectDir  = "Project directory; relative file arguments resolve against it (default: current directory)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagProfile     = "Build configuration (release or debug)"
	MsgFlagMaxFailures = "Number of failed compiles tolerated before linking is skipped"
	MsgFlagNoApply     = "Only export and merge fixes, do not reconcile them"
	MsgFlagDryRun      = "Plan and write processed documents without touching sources"
	MsgFlagParallelism = "Files reconciled at once (0 means no limit)"
	MsgFlagDefaults    = "Print the built-in defaults instead"

	MsgNoFixes = "clang-tidy proposed no fixes."
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/tidy-long.txt
	msgTidyLongRaw string
	MsgTidyLong    = strings.TrimSpace(msgTidyLongRaw)

	//go:embed msgs/tidy-example.txt
	msgTidyExampleRaw string
	MsgTidyExample    = strings.TrimRight(msgTidyExampleRaw, "\n")

	//go:embed msgs/reconcile-long.txt
	msgReconcileLongRaw string
	MsgReconcileLong    = strings.TrimSpace(msgReconcileLongRaw)

	//go:embed msgs/reconcile-example.txt
	msgReconcileExampleRaw string
	MsgReconcileExample    = strings.TrimRight(msgReconcileExampleRaw, "\n")

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/validate-example.txt
	msgValidateExampleRaw string
	MsgValidateExample    = strings.TrimRight(msgValidateExampleRaw, "\n")
)
