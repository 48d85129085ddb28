package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/arthur-debert/tidyforge/internal/version"
	"github.com/arthur-debert/tidyforge/pkg/config"
	"github.com/arthur-debert/tidyforge/pkg/logging"
	"github.com/arthur-debert/tidyforge/pkg/output"
	"github.com/arthur-debert/tidyforge/pkg/scheduler"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	configFile string
	projectDir string
	format     string
}

// reportedError is returned by commands that already rendered the failure.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "tidyforge",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logging.Options{Verbosity: opts.verbosity, Console: cmd.ErrOrStderr()})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.configFile, "config-file", "", MsgFlagConfigFile)
	flags.StringVarP(&opts.projectDir, "project-dir", "C", "", MsgFlagProjectDir)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newTidyCmd(opts))
	rootCmd.AddCommand(newReconcileCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the root command and returns the process exit code. Errors
// that a command has not rendered itself are printed to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var reported reportedError
	if !stderrors.As(err, &reported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// loadConfig loads the layered configuration. overrides are applied last.
func (o *globalOptions) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	if o.projectDir != "" {
		if overrides == nil {
			overrides = map[string]interface{}{}
		}
		overrides["build.project_dir"] = o.projectDir
	}
	return config.Load(config.LoadOptions{
		ProjectDir: o.projectDir,
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
}

// resolve joins relative path arguments onto the project directory.
func (o *globalOptions) resolve(paths []string) []string {
	if o.projectDir == "" {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(o.projectDir, p)
		}
	}
	return out
}

func (o *globalOptions) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	format, err := output.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), format), nil
}

func newScheduler(cfg *config.Config) *scheduler.Scheduler {
	return scheduler.New(scheduler.Options{
		PollInterval: cfg.Scheduler.PollInterval,
		Shell:        cfg.Scheduler.Shell,
	})
}

// fail marks err as rendered, so Execute only sets the exit code.
func fail(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}
