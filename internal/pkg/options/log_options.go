package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// LogOptions configures the global logger.
type LogOptions struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `json:"level" mapstructure:"level"`

	// Format is the output format: text or json.
	Format string `json:"format" mapstructure:"format"`

	// File is an optional path to also write logs to.
	File string `json:"file" mapstructure:"file"`
}

// NewLogOptions returns log options with defaults.
func NewLogOptions() *LogOptions {
	return &LogOptions{
		Level:  "info",
		Format: "text",
	}
}

// Validate checks the log options.
func (o *LogOptions) Validate() []error {
	var errs []error

	switch o.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", o.Level))
	}
	switch o.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", o.Format))
	}

	return errs
}

// AddFlags adds the log flags to the given flag set.
func (o *LogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log level: debug, info, warn, error.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log output format: text or json.")
	fs.StringVar(&o.File, "log.file", o.File, "Optional file to also write logs to.")
}
