// Package runs implements `helixctl runs`.
package runs

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/kiosk404/helix/internal/helixctl/util"
	"github.com/kiosk404/helix/pkg/utils/json"
)

type options struct {
	userID string
	output string
}

// NewCmdRuns creates the runs command.
func NewCmdRuns(f *util.Factory, streams util.IOStreams) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "runs [RUN_ID]",
		Short: "List a user's search runs, or show one run",
		Example: heredoc.Doc(`
			# List alice's past searches
			helixctl runs --user alice

			# Show one run in full
			helixctl runs 2f3a...

			# Dump a run as JSON
			helixctl runs 2f3a... -o json`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.output != "table" && o.output != "json" {
				return fmt.Errorf("unsupported output format %q, expected table or json", o.output)
			}

			if len(args) == 1 {
				run, err := f.Client().GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if o.output == "json" {
					return printJSON(streams, run)
				}
				fmt.Fprintf(streams.Out, "ID:      %s\nUser:    %s\nStatus:  %s\nQuery:   %s\nCreated: %s\n\n%s\n",
					run.ID, run.UserID, run.Status, run.Query, run.CreatedAt, run.Result)
				return nil
			}

			if o.userID == "" {
				return fmt.Errorf("--user is required when no run id is given")
			}

			runs, err := f.Client().ListRuns(cmd.Context(), o.userID)
			if err != nil {
				return err
			}
			if o.output == "json" {
				return printJSON(streams, runs)
			}

			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow("ID", "STATUS", "CREATED", "QUERY")
			for _, r := range runs {
				table.AddRow(r.ID, r.Status, r.CreatedAt, r.Query)
			}
			fmt.Fprintln(streams.Out, table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.userID, "user", "u", "", "User whose runs to list.")
	cmd.Flags().StringVarP(&o.output, "output", "o", "table", "Output format, one of: table, json.")

	return cmd
}

func printJSON(streams util.IOStreams, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(streams.Out, string(data))
	return nil
}
