// helix-tools serves the sandboxed file tools for one (user, category)
// scope over stdio. helixd launches one instance per search agent; flags
// override the environment scope for manual runs.
package main

import (
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiosk404/helix/internal/toolserver"
	"github.com/kiosk404/helix/pkg/logger"
)

func main() {
	cfg := toolserver.ConfigFromEnv()

	cmd := &cobra.Command{
		Use:   "helix-tools",
		Short: "Sandboxed MCP file-tool server",
		Long: heredoc.Doc(`
			helix-tools exposes read_file, list_file and grep over one
			user's processed data for one category, speaking MCP on
			stdin/stdout. Scope comes from HELIX_TOOLS_* environment
			variables or the flags below.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := toolserver.New(cfg)
			if err != nil {
				return err
			}
			logger.Info("[Tools] serving %s", cfg.RootDir())
			return srv.ServeStdio()
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfg.BaseDir, "base-dir", cfg.BaseDir, "Root directory of the per-user corpus tree.")
	fs.StringVar(&cfg.UserID, "user-id", cfg.UserID, "User whose data is served.")
	fs.StringVar(&cfg.Category, "category", cfg.Category, "Category partition to serve.")

	if err := cmd.Execute(); err != nil {
		// stdout carries the MCP channel; diagnostics go to stderr only.
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
