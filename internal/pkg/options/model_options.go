package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ModelOptions configures the completion-service providers.
type ModelOptions struct {
	// DefaultProvider/DefaultModel select the model used when a component
	// does not name one explicitly.
	DefaultProvider string `json:"default-provider" mapstructure:"default-provider"`
	DefaultModel    string `json:"default-model" mapstructure:"default-model"`

	// Providers maps provider plugin name → provider configuration.
	Providers map[string]*ProviderConfig `json:"providers" mapstructure:"providers"`
}

// ProviderConfig configures one completion-service provider.
type ProviderConfig struct {
	// BaseURL is the API endpoint. Empty keeps the plugin default.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// APIKey authenticates requests. A "${ENV_VAR}" value is resolved from
	// the environment at build time.
	APIKey string `json:"api-key" mapstructure:"api-key"`

	// Models lists the models served by this provider.
	Models []ModelDefinition `json:"models" mapstructure:"models"`
}

// ModelDefinition describes one model of a provider.
type ModelDefinition struct {
	ID            string `json:"id" mapstructure:"id"`
	Name          string `json:"name" mapstructure:"name"`
	ContextWindow int    `json:"context-window" mapstructure:"context-window"`
	MaxTokens     int    `json:"max-tokens" mapstructure:"max-tokens"`

	// ParallelToolCalls controls whether the provider may request several
	// tool calls in one turn. Some models only behave with one-at-a-time
	// tool calls; nil keeps the provider default.
	ParallelToolCalls *bool `json:"parallel-tool-calls" mapstructure:"parallel-tool-calls"`
}

// NewModelOptions returns model options with an empty provider set.
func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		Providers: make(map[string]*ProviderConfig),
	}
}

// Validate checks provider definitions.
func (o *ModelOptions) Validate() []error {
	var errs []error
	for id, p := range o.Providers {
		if len(p.Models) == 0 {
			errs = append(errs, fmt.Errorf("provider %q: at least one model is required", id))
		}
		for _, m := range p.Models {
			if m.ID == "" {
				errs = append(errs, fmt.Errorf("provider %q: model id is required", id))
			}
		}
	}
	return errs
}

// AddFlags adds the model flags to the given flag set. Provider maps are
// config-file only.
func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DefaultProvider, "models.default-provider", o.DefaultProvider, "Default provider ID.")
	fs.StringVar(&o.DefaultModel, "models.default-model", o.DefaultModel, "Default model ID.")
}
