package options

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/pflag"
)

// ServerRunOptions contains the options for the generic HTTP API server.
type ServerRunOptions struct {
	// BindAddress is the IP address to listen on.
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`

	// BindPort is the port to listen on.
	BindPort int `json:"bind-port" mapstructure:"bind-port"`

	// Mode is the gin mode: debug, test or release.
	Mode string `json:"mode" mapstructure:"mode"`

	// EnableProfiling mounts pprof handlers under /debug when true.
	EnableProfiling bool `json:"enable-profiling" mapstructure:"enable-profiling"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewServerRunOptions returns serving options with defaults.
func NewServerRunOptions() *ServerRunOptions {
	return &ServerRunOptions{
		BindAddress:     "0.0.0.0",
		BindPort:        8001,
		Mode:            "release",
		EnableProfiling: false,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks the serving options.
func (o *ServerRunOptions) Validate() []error {
	var errs []error

	if o.BindPort < 1 || o.BindPort > 65535 {
		errs = append(errs, fmt.Errorf("serving.bind-port %d must be between 1 and 65535", o.BindPort))
	}
	if net.ParseIP(o.BindAddress) == nil {
		errs = append(errs, fmt.Errorf("serving.bind-address %q is not a valid IP address", o.BindAddress))
	}
	switch o.Mode {
	case "debug", "test", "release":
	default:
		errs = append(errs, fmt.Errorf("serving.mode %q must be one of debug, test, release", o.Mode))
	}

	return errs
}

// AddFlags adds the serving flags to the given flag set.
func (o *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BindAddress, "serving.bind-address", o.BindAddress,
		"The IP address on which to serve the API.")
	fs.IntVar(&o.BindPort, "serving.bind-port", o.BindPort,
		"The port on which to serve the API.")
	fs.StringVar(&o.Mode, "serving.mode", o.Mode,
		"Gin server mode: debug, test or release.")
	fs.BoolVar(&o.EnableProfiling, "serving.enable-profiling", o.EnableProfiling,
		"Mount pprof handlers under /debug.")
	fs.DurationVar(&o.ShutdownTimeout, "serving.shutdown-timeout", o.ShutdownTimeout,
		"Maximum time to wait for in-flight requests during shutdown.")
}

// Addr returns the listen address in host:port form.
func (o *ServerRunOptions) Addr() string {
	return fmt.Sprintf("%s:%d", o.BindAddress, o.BindPort)
}
