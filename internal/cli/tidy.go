package cli

import (
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/reconcile"
	"github.com/arthur-debert/tidyforge/pkg/rules"
	"github.com/arthur-debert/tidyforge/pkg/tidy"
	"github.com/spf13/cobra"
)

func newTidyCmd(opts *globalOptions) *cobra.Command {
	var noApply bool

	cmd := &cobra.Command{
		Use:     "tidy",
		Short:   MsgTidyShort,
		Long:    MsgTidyLong,
		Example: MsgTidyExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			fs := filesystem.NewOS()
			analyzer := tidy.NewAnalyzer(fs, newScheduler(cfg), cfg.Tidy, cfg.Build.ProjectDir)
			res, err := analyzer.Analyze()
			if err != nil {
				return err
			}
			if err := r.RenderTidy(res); err != nil {
				return err
			}
			if noApply {
				return nil
			}
			if res.Combined == "" {
				return r.RenderMessage(MsgNoFixes)
			}

			filter, err := rules.Build(cfg.Reconcile)
			if err != nil {
				return err
			}
			rec := reconcile.New(reconcile.Options{
				FS:            fs,
				Filter:        filter,
				ContextRadius: cfg.Reconcile.ContextRadius,
				Parallelism:   cfg.Reconcile.Parallelism,
				DryRun:        cfg.Reconcile.DryRun,
			})
			report, err := rec.Run(cmd.Context(), []string{res.Combined})
			if err != nil {
				return err
			}
			if err := r.RenderReconcile(report); err != nil {
				return err
			}
			return fail(report.Err())
		},
	}

	cmd.Flags().BoolVar(&noApply, "no-apply", false, MsgFlagNoApply)

	return cmd
}
