// Package util carries the shared wiring of helixctl subcommands: server
// connection flags and IO streams.
package util

import (
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kiosk404/helix/internal/helixctl/client"
)

// IOStreams bundles the command's input and output streams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Factory creates API clients from the shared connection flags.
type Factory struct {
	server string
	token  string
}

// NewFactory registers the connection flags on the given flag set.
func NewFactory(fs *pflag.FlagSet) *Factory {
	f := &Factory{}
	fs.StringVarP(&f.server, "server", "s", envOr("HELIX_SERVER", "http://127.0.0.1:8001"), "Address of the helixd server.")
	fs.StringVar(&f.token, "token", "", "Bearer token for the helixd API (defaults to HELIX_API_TOKEN).")
	return f
}

// Client builds a client for the configured server.
func (f *Factory) Client() *client.HelixClient {
	token := f.token
	if token == "" {
		token = os.Getenv("HELIX_API_TOKEN")
	}
	return client.New(f.server, token, nil)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
