package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Store backends.
const (
	StoreBackendMemory = "memory"
	StoreBackendBoltDB = "boltdb"
)

// StoreOptions configures search-run persistence.
type StoreOptions struct {
	// Backend selects the run store: "memory" or "boltdb".
	Backend string `json:"backend" mapstructure:"backend"`

	// Path is the BoltDB file for the boltdb backend.
	Path string `json:"path" mapstructure:"path"`
}

// NewStoreOptions returns store options defaulting to the in-memory store.
func NewStoreOptions() *StoreOptions {
	return &StoreOptions{
		Backend: StoreBackendMemory,
		Path:    "helix.db",
	}
}

// Validate checks the store options.
func (o *StoreOptions) Validate() []error {
	var errs []error
	switch o.Backend {
	case StoreBackendMemory:
	case StoreBackendBoltDB:
		if o.Path == "" {
			errs = append(errs, fmt.Errorf("store path is required for the boltdb backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", o.Backend))
	}
	return errs
}

// AddFlags adds the store flags to the given flag set.
func (o *StoreOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Backend, "store.backend", o.Backend, "Run store backend, memory or boltdb.")
	fs.StringVar(&o.Path, "store.path", o.Path, "BoltDB file for the boltdb backend.")
}
