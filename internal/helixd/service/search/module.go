// Package search provides the multi-agent search module: the coordinator,
// the per-category agent loops, and the sandboxed tool backends they drive.
package search

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	llmentity "github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	llmservice "github.com/kiosk404/helix/internal/helixd/service/llm/domain/service"
	"github.com/kiosk404/helix/internal/helixd/service/search/backend"
	"github.com/kiosk404/helix/internal/helixd/service/search/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/search/domain/repo"
	searchservice "github.com/kiosk404/helix/internal/helixd/service/search/domain/service"
	"github.com/kiosk404/helix/internal/helixd/service/search/store/inmemory"
	"github.com/kiosk404/helix/internal/pkg/options"
	"github.com/kiosk404/helix/pkg/logger"
)

// Config holds the configuration for the search module.
type Config struct {
	AgentOptions *options.AgentOptions

	// Models resolves model refs for the agents and the synthesis step.
	Models llmservice.ModelManager

	// Runs persists search runs. Nil defaults to the in-memory store.
	Runs repo.RunRepository

	// BackendFactory overrides the transport chosen by AgentOptions.
	// Tests use this to inject in-process backends.
	BackendFactory backend.Factory
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.AgentOptions == nil {
		c.AgentOptions = options.NewAgentOptions()
	}
	if c.Runs == nil {
		c.Runs = inmemory.NewRunStore()
	}
	if c.BackendFactory == nil {
		switch c.AgentOptions.Transport {
		case options.TransportInProcess:
			c.BackendFactory = backend.NewInProcessFactory(c.AgentOptions.BaseDir)
		default:
			c.BackendFactory = backend.NewStdioFactory(c.AgentOptions.ToolsCommand, c.AgentOptions.BaseDir)
		}
	}
	return CompletedConfig{c}
}

// Module is the top-level search module.
type Module struct {
	Coordinator *searchservice.Coordinator
	Arena       *backend.Arena
	Runs        repo.RunRepository
}

// New creates and initializes the search module from a completed config.
func (c CompletedConfig) New(ctx context.Context) (*Module, error) {
	if c.Models == nil {
		return nil, fmt.Errorf("search module requires a model manager")
	}

	agentRef, err := llmentity.ParseModelRef(c.AgentOptions.Model)
	if err != nil {
		return nil, fmt.Errorf("invalid agent model: %w", err)
	}
	synthRef := agentRef
	if c.AgentOptions.SynthesisModel != "" {
		if synthRef, err = llmentity.ParseModelRef(c.AgentOptions.SynthesisModel); err != nil {
			return nil, fmt.Errorf("invalid synthesis model: %w", err)
		}
	}

	categories := make([]entity.Category, 0, len(c.AgentOptions.Categories))
	for _, co := range c.AgentOptions.Categories {
		categories = append(categories, entity.Category{Name: co.Name, SystemPrompt: co.SystemPrompt})
	}

	arena := backend.NewArena(c.BackendFactory)
	coordinator := searchservice.NewCoordinator(searchservice.CoordinatorConfig{
		Categories:      categories,
		Arena:           arena,
		AgentModel:      modelBuilder(c.Models, agentRef),
		SynthesisModel:  modelBuilder(c.Models, synthRef),
		SynthesisPrompt: c.AgentOptions.SynthesisPrompt,
		MaxTurns:        c.AgentOptions.MaxTurns,
		Deadline:        c.AgentOptions.Deadline,
		Runs:            c.Runs,
	})

	logger.Info("[Search] module ready: %d categories, model=%s, transport=%s",
		len(categories), agentRef, c.AgentOptions.Transport)

	return &Module{
		Coordinator: coordinator,
		Arena:       arena,
		Runs:        c.Runs,
	}, nil
}

// Close releases every open backend.
func (m *Module) Close() {
	m.Arena.Close()
}

func modelBuilder(mgr llmservice.ModelManager, ref llmentity.ModelRef) searchservice.ChatModelBuilder {
	return func(ctx context.Context, params *llmentity.LLMParams) (model.ToolCallingChatModel, error) {
		return mgr.GetChatModel(ctx, ref, params)
	}
}
