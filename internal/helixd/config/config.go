// Package config holds the running configuration of helixd.
package config

import (
	"github.com/kiosk404/helix/internal/helixd/options"
)

// Config is the running configuration structure of the helixd service.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
// on the given command-line options.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
