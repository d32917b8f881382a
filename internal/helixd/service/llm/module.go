// Package llm provides the completion-service module: provider plugins,
// model resolution, and chat-model construction.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/llm/domain/service"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider"
	"github.com/kiosk404/helix/internal/pkg/options"
	"github.com/kiosk404/helix/pkg/logger"
)

// Config holds the configuration for the LLM module.
type Config struct {
	ModelOptions *options.ModelOptions

	// OutOfTreeRegistry allows registering additional provider plugins
	// beyond the built-in ones. If nil, only in-tree providers are available.
	OutOfTreeRegistry *provider.Registry
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.ModelOptions == nil {
		c.ModelOptions = options.NewModelOptions()
	}
	return CompletedConfig{c}
}

// Module is the top-level LLM module.
type Module struct {
	Manager  service.ModelManager
	Registry *provider.Registry
}

// New creates and initializes the LLM module from a completed config,
// following the Config → Complete() → New() pattern.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	registry := provider.NewInTreeRegistry()
	if c.OutOfTreeRegistry != nil {
		if err := registry.Merge(c.OutOfTreeRegistry); err != nil {
			return nil, fmt.Errorf("failed to merge out-of-tree providers: %w", err)
		}
	}
	logger.Info("[LLM] provider registry initialized with %d plugins", registry.Len())

	manager := service.NewModelManager(c.ModelOptions, registry)

	return &Module{
		Manager:  manager,
		Registry: registry,
	}, nil
}

// BuildChatModel builds a fresh tool-calling chat model for the given ref.
// params may be nil to use provider defaults.
func (m *Module) BuildChatModel(ctx context.Context, ref entity.ModelRef, params *entity.LLMParams) (model.ToolCallingChatModel, error) {
	return m.Manager.GetChatModel(ctx, ref, params)
}

// DefaultChatModel builds the chat model configured as the system default.
func (m *Module) DefaultChatModel(ctx context.Context) (model.ToolCallingChatModel, error) {
	return m.Manager.GetChatModel(ctx, m.Manager.DefaultRef(), nil)
}
