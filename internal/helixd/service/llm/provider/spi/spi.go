// Package spi defines the provider plugin interface for the llm module.
package spi

import (
	"context"

	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/pkg/options"
)

// ProviderPlugin builds chat models for one provider family.
type ProviderPlugin interface {
	// Name returns the name of the provider plugin.
	Name() string

	// DefaultConfig returns the default configuration for the provider,
	// merged under any user-supplied configuration.
	DefaultConfig() *options.ProviderConfig

	// BuildChatModel builds a tool-calling chat model for the given model
	// definition. All helix agents require function calling, so plugins
	// must return models implementing ToolCallingChatModel.
	BuildChatModel(ctx context.Context, cfg *options.ProviderConfig, def *options.ModelDefinition, params *entity.LLMParams) (model.ToolCallingChatModel, error)
}

// PluginFactory is a function that creates a ProviderPlugin instance.
type PluginFactory func() ProviderPlugin
