// Package ollama implements the Ollama provider plugin for locally served
// models.
package ollama

import (
	"context"
	"fmt"

	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/helper"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/spi"
	"github.com/kiosk404/helix/internal/pkg/options"
)

const (
	Name           = "ollama"
	defaultBaseURL = "http://127.0.0.1:11434"
)

type plugin struct {
	helper.BasePlugin
}

// New creates the Ollama provider plugin.
func New() spi.ProviderPlugin {
	return &plugin{BasePlugin: helper.BasePlugin{PluginName: Name}}
}

func (p *plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: defaultBaseURL,
	}
}

func (p *plugin) BuildChatModel(ctx context.Context, cfg *options.ProviderConfig, def *options.ModelDefinition, params *entity.LLMParams) (model.ToolCallingChatModel, error) {
	if def == nil || def.ID == "" {
		return nil, fmt.Errorf("model definition with an id is required")
	}

	conf := &einoOllama.ChatModelConfig{
		BaseURL: defaultBaseURL,
		Model:   def.ID,
		Options: &einoOllama.Options{},
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	if def.MaxTokens > 0 {
		conf.Options.NumPredict = def.MaxTokens
	}
	if params != nil {
		if params.Temperature != nil {
			conf.Options.Temperature = *params.Temperature
		}
		if params.MaxTokens != nil {
			conf.Options.NumPredict = *params.MaxTokens
		}
	}

	return einoOllama.NewChatModel(ctx, conf)
}
