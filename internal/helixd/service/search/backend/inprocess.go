package backend

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"

	"github.com/kiosk404/helix/internal/toolserver"
)

// NewInProcessFactory returns a factory that serves tools from within the
// server process. The sandbox still isolates each backend to one user and
// category directory; only the process boundary is skipped.
func NewInProcessFactory(baseDir string) Factory {
	return func(ctx context.Context, key Key) (Backend, error) {
		srv, err := toolserver.New(&toolserver.Config{
			BaseDir:  baseDir,
			UserID:   key.UserID,
			Category: key.Category,
		})
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", key, err)
		}

		cli, err := client.NewInProcessClient(srv.MCPServer())
		if err != nil {
			return nil, fmt.Errorf("backend %s: failed to create client: %w", key, err)
		}
		if err := cli.Start(ctx); err != nil {
			cli.Close()
			return nil, fmt.Errorf("backend %s: failed to start client: %w", key, err)
		}
		return newMCPBackend(ctx, cli, key)
	}
}
