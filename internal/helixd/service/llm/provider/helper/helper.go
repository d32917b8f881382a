// Package helper holds the shared pieces provider plugins are built from.
package helper

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/pkg/options"
)

// defaultMaxTokens bounds completion size when neither the model definition
// nor the caller sets one.
const defaultMaxTokens = 4096

// BasePlugin provides the Name/DefaultConfig boilerplate for plugins.
type BasePlugin struct {
	PluginName string
}

func (b *BasePlugin) Name() string {
	return b.PluginName
}

// DefaultConfig returns an empty configuration; plugins with a well-known
// endpoint override this.
func (b *BasePlugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{}
}

// NewOpenAICompatibleChatModel creates an Eino chat model speaking the
// OpenAI-compatible chat completions API. This is the common path for every
// hosted provider helix talks to (OpenAI, OpenRouter, Cerebras).
func NewOpenAICompatibleChatModel(ctx context.Context, cfg *options.ProviderConfig, def *options.ModelDefinition, params *entity.LLMParams) (model.ToolCallingChatModel, error) {
	if def == nil || def.ID == "" {
		return nil, fmt.Errorf("model definition with an id is required")
	}

	maxTokens := defaultMaxTokens
	if def.MaxTokens > 0 {
		maxTokens = def.MaxTokens
	}

	mc := &einoOpenAI.ChatModelConfig{
		Model:     def.ID,
		APIKey:    ResolveEnvValue(cfg.APIKey),
		MaxTokens: gptr.Of(maxTokens),
	}
	if cfg.BaseURL != "" {
		mc.BaseURL = cfg.BaseURL
	}
	if params != nil {
		if params.Temperature != nil {
			mc.Temperature = params.Temperature
		}
		if params.MaxTokens != nil {
			mc.MaxTokens = params.MaxTokens
		}
	}

	// Some models only behave when the provider issues tool calls
	// one-at-a-time; the knob rides along as a raw request field.
	if def.ParallelToolCalls != nil && !*def.ParallelToolCalls {
		mc.ExtraFields = map[string]any{"parallel_tool_calls": false}
	}

	return einoOpenAI.NewChatModel(ctx, mc)
}

// ResolveEnvValue resolves "${ENV_VAR}" references in a string.
func ResolveEnvValue(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envKey := s[2 : len(s)-1]
		return os.Getenv(envKey)
	}
	return s
}
