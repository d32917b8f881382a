// Package cmd builds the helixctl command tree.
package cmd

import (
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kiosk404/helix/internal/helixctl/cmd/runs"
	"github.com/kiosk404/helix/internal/helixctl/cmd/search"
	"github.com/kiosk404/helix/internal/helixctl/cmd/status"
	"github.com/kiosk404/helix/internal/helixctl/util"
)

// NewDefaultHelixCtlCommand creates the `helixctl` command with default
// arguments.
func NewDefaultHelixCtlCommand() *cobra.Command {
	return NewHelixCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

// NewHelixCtlCommand creates the `helixctl` command with the given streams.
func NewHelixCtlCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cmds := &cobra.Command{
		Use:   "helixctl",
		Short: "helixctl queries a helixd search server",
		Long: heredoc.Doc(`
			helixctl is the CLI for the helix search service. It submits
			natural-language queries over a user's private archive and
			inspects past search runs.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	f := util.NewFactory(cmds.PersistentFlags())
	streams := util.IOStreams{In: in, Out: out, ErrOut: errOut}

	cmds.AddCommand(search.NewCmdSearch(f, streams))
	cmds.AddCommand(runs.NewCmdRuns(f, streams))
	cmds.AddCommand(status.NewCmdStatus(f, streams))

	return cmds
}
