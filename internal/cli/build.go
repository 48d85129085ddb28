package cli

import (
	"github.com/arthur-debert/tidyforge/pkg/build"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newBuildCmd(opts *globalOptions) *cobra.Command {
	var (
		profile     string
		maxFailures int
	)

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("max-failures") {
				overrides["build.max_failures"] = maxFailures
			}
			cfg, err := opts.loadConfig(overrides)
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("profile", profile).
				Str("project_dir", cfg.Build.ProjectDir).
				Msg("Building")

			builder := build.NewBuilder(filesystem.NewOS(), newScheduler(cfg), cfg.Build)
			res, buildErr := builder.Build(profile)
			if res == nil {
				return buildErr
			}
			if err := r.RenderBuild(res, buildErr); err != nil {
				return err
			}
			return fail(buildErr)
		},
	}

	cmd.Flags().StringVar(&profile, "config", "release", MsgFlagProfile)
	cmd.Flags().IntVar(&maxFailures, "max-failures", 0, MsgFlagMaxFailures)
	_ = cmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"release", "debug"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
