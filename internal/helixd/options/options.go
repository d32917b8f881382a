// Package options aggregates the helixd server configuration.
package options

import (
	genericoptions "github.com/kiosk404/helix/internal/pkg/options"
	"github.com/kiosk404/helix/pkg/utils/cliflag"
	"github.com/kiosk404/helix/pkg/utils/json"
)

// Options runs a helixd server.
type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions `json:"serving" mapstructure:"serving"`
	LogOptions              *genericoptions.LogOptions       `json:"log"     mapstructure:"log"`
	ModelOptions            *genericoptions.ModelOptions     `json:"models"  mapstructure:"models"`
	AgentOptions            *genericoptions.AgentOptions     `json:"agents"  mapstructure:"agents"`
	StoreOptions            *genericoptions.StoreOptions     `json:"store"   mapstructure:"store"`
}

// NewOptions creates options with defaults.
func NewOptions() *Options {
	return &Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		LogOptions:              genericoptions.NewLogOptions(),
		ModelOptions:            genericoptions.NewModelOptions(),
		AgentOptions:            genericoptions.NewAgentOptions(),
		StoreOptions:            genericoptions.NewStoreOptions(),
	}
}

// Flags returns the flags grouped by section.
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("serving"))
	o.LogOptions.AddFlags(fss.FlagSet("log"))
	o.ModelOptions.AddFlags(fss.FlagSet("models"))
	o.AgentOptions.AddFlags(fss.FlagSet("agents"))
	o.StoreOptions.AddFlags(fss.FlagSet("store"))
	return fss
}

// Validate checks every option section.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.LogOptions.Validate()...)
	errs = append(errs, o.ModelOptions.Validate()...)
	errs = append(errs, o.AgentOptions.Validate()...)
	errs = append(errs, o.StoreOptions.Validate()...)
	return errs
}

// Complete sets default Options.
func (o *Options) Complete() error {
	return nil
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)
	return string(data)
}
