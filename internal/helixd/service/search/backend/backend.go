// Package backend manages the sandboxed file-tool backends that search
// agents call into. Each agent gets its own backend instance scoped to one
// user and one category, so concurrent requests never share tool state.
package backend

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Key identifies one backend instance: the user whose corpus it serves,
// the category slice, and the search request it belongs to.
type Key struct {
	UserID    string
	Category  string
	RequestID string
}

func (k Key) String() string {
	return k.UserID + "/" + k.Category + "/" + k.RequestID
}

// Backend is one live tool session. Implementations wrap an MCP client over
// some transport; callers never see the transport.
type Backend interface {
	// ListTools returns the tool catalog the backend serves.
	ListTools(ctx context.Context) ([]mcp.Tool, error)

	// CallTool invokes one tool by name. A tool-level failure comes back
	// as a result with IsError set, not as a Go error; Go errors mean the
	// session itself broke.
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)

	// Close tears the session down.
	Close() error
}

// Factory creates a connected backend for the given key.
type Factory func(ctx context.Context, key Key) (Backend, error)

// mcpBackend adapts an MCP client into a Backend.
type mcpBackend struct {
	cli client.MCPClient
}

func newMCPBackend(ctx context.Context, cli client.MCPClient, key Key) (Backend, error) {
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "helix-agent",
		Version: "0.1.0",
	}
	if _, err := cli.Initialize(ctx, initReq); err != nil {
		cli.Close()
		return nil, fmt.Errorf("backend %s: failed to initialize: %w", key, err)
	}
	return &mcpBackend{cli: cli}, nil
}

func (b *mcpBackend) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	res, err := b.cli.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return res.Tools, nil
}

func (b *mcpBackend) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return b.cli.CallTool(ctx, req)
}

func (b *mcpBackend) Close() error {
	return b.cli.Close()
}
