package backend

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"

	"github.com/kiosk404/helix/internal/toolserver"
)

// NewStdioFactory returns a factory that launches the tool server as a
// subprocess per backend and talks MCP over its stdio. The subprocess model
// keeps a misbehaving tool session from taking the whole server with it.
func NewStdioFactory(command string, baseDir string, args ...string) Factory {
	return func(ctx context.Context, key Key) (Backend, error) {
		env := []string{
			fmt.Sprintf("%s=%s", toolserver.EnvBaseDir, baseDir),
			fmt.Sprintf("%s=%s", toolserver.EnvUserID, key.UserID),
			fmt.Sprintf("%s=%s", toolserver.EnvCategory, key.Category),
		}
		cli, err := client.NewStdioMCPClient(command, env, args...)
		if err != nil {
			return nil, fmt.Errorf("backend %s: failed to start %s: %w", key, command, err)
		}
		return newMCPBackend(ctx, cli, key)
	}
}
