// Package service implements the model-manager domain service.
package service

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider"
	"github.com/kiosk404/helix/internal/pkg/options"
	"github.com/kiosk404/helix/pkg/logger"
)

// ModelManager resolves model refs into ready-to-call chat models.
type ModelManager interface {
	// GetChatModel builds a tool-calling chat model for the given ref.
	GetChatModel(ctx context.Context, ref entity.ModelRef, params *entity.LLMParams) (model.ToolCallingChatModel, error)

	// DefaultRef returns the configured default model ref.
	DefaultRef() entity.ModelRef

	// Providers lists the registered provider plugin names.
	Providers() []string
}

type modelManager struct {
	opts     *options.ModelOptions
	registry *provider.Registry
}

// NewModelManager creates a manager over the given provider registry.
func NewModelManager(opts *options.ModelOptions, registry *provider.Registry) ModelManager {
	return &modelManager{opts: opts, registry: registry}
}

func (m *modelManager) DefaultRef() entity.ModelRef {
	return entity.ModelRef{ProviderID: m.opts.DefaultProvider, ModelID: m.opts.DefaultModel}
}

func (m *modelManager) Providers() []string {
	return m.registry.List()
}

func (m *modelManager) GetChatModel(ctx context.Context, ref entity.ModelRef, params *entity.LLMParams) (model.ToolCallingChatModel, error) {
	if ref.IsZero() {
		ref = m.DefaultRef()
	}
	if ref.ProviderID == "" || ref.ModelID == "" {
		return nil, fmt.Errorf("no model configured: ref %q is incomplete", ref)
	}

	factory, err := m.registry.Get(ref.ProviderID)
	if err != nil {
		return nil, err
	}
	plugin := factory()

	cfg := mergeProviderConfig(m.opts.Providers[ref.ProviderID], plugin.DefaultConfig())
	def := findModelDefinition(cfg, ref.ModelID)
	if def == nil {
		return nil, fmt.Errorf("model %s is not configured for provider %s", ref.ModelID, ref.ProviderID)
	}

	logger.Debug("[LLM] building chat model %s", ref)
	return plugin.BuildChatModel(ctx, cfg, def, params)
}

// mergeProviderConfig layers the user configuration over the plugin default.
func mergeProviderConfig(user, def *options.ProviderConfig) *options.ProviderConfig {
	if def == nil {
		def = &options.ProviderConfig{}
	}
	if user == nil {
		return def
	}
	merged := *user
	if merged.BaseURL == "" {
		merged.BaseURL = def.BaseURL
	}
	if merged.APIKey == "" {
		merged.APIKey = def.APIKey
	}
	return &merged
}

func findModelDefinition(cfg *options.ProviderConfig, modelID string) *options.ModelDefinition {
	for i := range cfg.Models {
		if cfg.Models[i].ID == modelID {
			return &cfg.Models[i]
		}
	}
	return nil
}
