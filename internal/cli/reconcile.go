package cli

import (
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/reconcile"
	"github.com/arthur-debert/tidyforge/pkg/rules"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReconcileCmd(opts *globalOptions) *cobra.Command {
	var (
		dryRun      bool
		parallelism int
	)

	cmd := &cobra.Command{
		Use:     "reconcile <fixes.yaml>...",
		Short:   MsgReconcileShort,
		Long:    MsgReconcileLong,
		Example: MsgReconcileExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("dry-run") {
				overrides["reconcile.dry_run"] = dryRun
			}
			if cmd.Flags().Changed("parallelism") {
				overrides["reconcile.parallelism"] = parallelism
			}
			cfg, err := opts.loadConfig(overrides)
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			filter, err := rules.Build(cfg.Reconcile)
			if err != nil {
				return err
			}

			args = opts.resolve(args)
			log.Info().
				Strs("documents", args).
				Int("rules", filter.Len()).
				Bool("dry_run", cfg.Reconcile.DryRun).
				Msg("Reconciling fix documents")

			rec := reconcile.New(reconcile.Options{
				FS:            filesystem.NewOS(),
				Filter:        filter,
				ContextRadius: cfg.Reconcile.ContextRadius,
				Parallelism:   cfg.Reconcile.Parallelism,
				DryRun:        cfg.Reconcile.DryRun,
			})
			report, err := rec.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := r.RenderReconcile(report); err != nil {
				return err
			}
			return fail(report.Err())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, MsgFlagParallelism)

	return cmd
}
