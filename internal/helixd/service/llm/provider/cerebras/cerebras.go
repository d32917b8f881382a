// Package cerebras implements the Cerebras provider plugin. Cerebras serves
// an OpenAI-compatible chat completions endpoint.
package cerebras

import (
	"context"

	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/helper"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/spi"
	"github.com/kiosk404/helix/internal/pkg/options"
)

const (
	Name           = "cerebras"
	defaultBaseURL = "https://api.cerebras.ai/v1"
)

type plugin struct {
	helper.BasePlugin
}

// New creates the Cerebras provider plugin.
func New() spi.ProviderPlugin {
	return &plugin{BasePlugin: helper.BasePlugin{PluginName: Name}}
}

func (p *plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: defaultBaseURL,
		APIKey:  "${CEREBRAS_API_KEY}",
	}
}

func (p *plugin) BuildChatModel(ctx context.Context, cfg *options.ProviderConfig, def *options.ModelDefinition, params *entity.LLMParams) (model.ToolCallingChatModel, error) {
	if cfg.BaseURL == "" {
		clone := *cfg
		clone.BaseURL = defaultBaseURL
		cfg = &clone
	}
	return helper.NewOpenAICompatibleChatModel(ctx, cfg, def, params)
}
