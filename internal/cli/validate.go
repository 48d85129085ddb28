package cli

import (
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/filesystem"
	"github.com/arthur-debert/tidyforge/pkg/validate"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "validate <file>...",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		Example: MsgValidateExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			results := validate.ScanFiles(filesystem.NewOS(), opts.resolve(args))
			if err := r.RenderValidation(results); err != nil {
				return err
			}
			if n := validate.Failed(results); n > 0 {
				return fail(errors.Newf(errors.ErrCorruptionDetected,
					"%d of %d files failed validation", n, len(results)))
			}
			return nil
		},
	}
}
