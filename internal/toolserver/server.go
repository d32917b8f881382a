// Package toolserver implements the sandboxed file-tool backend: an MCP
// server scoped to a single (user, category) pair, exposing read_file,
// list_file and grep over the user's processed data for that category.
//
// Each instance is short-lived and isolated: the serving process (or
// in-process transport) is created for one search request and torn down with
// it. No state is shared across categories or requests.
package toolserver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kiosk404/helix/internal/toolserver/sandbox"
)

// Environment variables a tool-server subprocess is scoped by.
const (
	EnvBaseDir  = "HELIX_TOOLS_BASE_DIR"
	EnvUserID   = "HELIX_TOOLS_USER_ID"
	EnvCategory = "HELIX_TOOLS_CATEGORY"
)

const (
	// ServerName identifies this backend in the MCP handshake.
	ServerName = "helix-tools"

	// ServerVersion is reported in the MCP handshake.
	ServerVersion = "0.1.0"

	// MaxGrepMatches caps the total matches a single grep call returns,
	// across all searched files.
	MaxGrepMatches = 100
)

// Config scopes a backend instance to one user and category.
type Config struct {
	// BaseDir is the directory holding all user data.
	BaseDir string `json:"base_dir"`

	// UserID selects the user whose data is served.
	UserID string `json:"user_id"`

	// Category selects the data partition (e.g. links, docs, media).
	Category string `json:"category"`
}

// RootDir returns the sandbox root for this scope:
// <base>/<user>/processed/<category>.
func (c *Config) RootDir() string {
	return filepath.Join(c.BaseDir, c.UserID, "processed", c.Category)
}

// ConfigFromEnv reads the scope from the environment, as set by the
// parent process launching this backend.
func ConfigFromEnv() *Config {
	return &Config{
		BaseDir:  os.Getenv(EnvBaseDir),
		UserID:   os.Getenv(EnvUserID),
		Category: os.Getenv(EnvCategory),
	}
}

// Validate checks that the scope is fully specified.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("base directory is not set")
	}
	if c.UserID == "" {
		return fmt.Errorf("user id is not set")
	}
	if c.Category == "" {
		return fmt.Errorf("category is not set")
	}
	return nil
}

// Server holds the sandbox root and the tool handlers.
type Server struct {
	cfg  *Config
	root *sandbox.Root
}

// New creates a Server for the given scope. The sandbox root is computed
// once here and is immutable for the server's lifetime.
func New(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := sandbox.NewRoot(cfg.RootDir())
	if err != nil {
		return nil, err
	}

	return &Server{cfg: cfg, root: root}, nil
}

// Root exposes the sandbox root, mainly for tests.
func (s *Server) Root() *sandbox.Root {
	return s.root
}

// MCPServer builds the MCP server with the three file tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	srv.AddTool(
		mcp.NewTool(toolNameReadFile,
			mcp.WithDescription("Read and return the contents of a file."),
			mcp.WithString("file_path",
				mcp.Required(),
				mcp.Description("Relative path to the file."),
			),
		),
		s.handleReadFile,
	)

	srv.AddTool(
		mcp.NewTool(toolNameListFile,
			mcp.WithDescription("List files and directories in the specified directory."),
			mcp.WithString("directory_path",
				mcp.Description("Relative path to the directory (empty string for the root directory)."),
			),
		),
		s.handleListFile,
	)

	srv.AddTool(
		mcp.NewTool(toolNameGrep,
			mcp.WithDescription("Search for a regex pattern in files. Returns at most 100 matches."),
			mcp.WithString("pattern",
				mcp.Required(),
				mcp.Description("Regular expression pattern to search for."),
			),
			mcp.WithString("file_path",
				mcp.Description("Optional relative path to a specific file. If omitted, searches all files recursively."),
			),
		),
		s.handleGrep,
	)

	return srv
}

// ServeStdio serves the backend over stdin/stdout until the peer closes the
// channel or the process is terminated.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCPServer())
}
