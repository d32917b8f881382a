// Package search implements `helixctl search`.
package search

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiosk404/helix/internal/helixctl/util"
)

type options struct {
	userID string
}

// NewCmdSearch creates the search command.
func NewCmdSearch(f *util.Factory, streams util.IOStreams) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search a user's archive with a natural-language query",
		Example: heredoc.Doc(`
			# Search everything user alice saved about kubernetes
			helixctl search --user alice "what did I save about kubernetes?"`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			resp, err := f.Client().Search(cmd.Context(), o.userID, query)
			if err != nil {
				return err
			}

			fmt.Fprintf(streams.Out, "%s %s\n\n", color.CyanString("Request:"), resp.RequestID)
			fmt.Fprintln(streams.Out, resp.Result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.userID, "user", "u", "", "User whose archive to search.")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
