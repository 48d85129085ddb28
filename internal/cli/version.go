package cli

import (
	"github.com/arthur-debert/tidyforge/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf(MsgVersionFormat, version.Version)
			if version.Commit != "" {
				cmd.Printf(MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				cmd.Printf(MsgBuiltFormat, version.Date)
			}
		},
	}
}
