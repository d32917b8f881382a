// Package status implements `helixctl status`.
package status

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiosk404/helix/internal/helixctl/util"
)

// NewCmdStatus creates the status command.
func NewCmdStatus(f *util.Factory, streams util.IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the health of the helixd server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := f.Client().Health(cmd.Context())
			if err != nil {
				fmt.Fprintf(streams.Out, "%s %v\n", color.RedString("unreachable:"), err)
				return err
			}
			fmt.Fprintf(streams.Out, "%s %s\n", color.GreenString("status:"), st)
			return nil
		},
	}
}
