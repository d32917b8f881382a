// Package openai implements the OpenAI provider plugin.
package openai

import (
	"context"

	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/helper"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/spi"
	"github.com/kiosk404/helix/internal/pkg/options"
)

const Name = "openai"

type plugin struct {
	helper.BasePlugin
}

// New creates the OpenAI provider plugin.
func New() spi.ProviderPlugin {
	return &plugin{BasePlugin: helper.BasePlugin{PluginName: Name}}
}

func (p *plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		APIKey: "${OPENAI_API_KEY}",
	}
}

func (p *plugin) BuildChatModel(ctx context.Context, cfg *options.ProviderConfig, def *options.ModelDefinition, params *entity.LLMParams) (model.ToolCallingChatModel, error) {
	return helper.NewOpenAICompatibleChatModel(ctx, cfg, def, params)
}
