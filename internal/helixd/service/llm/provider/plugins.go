package provider

import (
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/cerebras"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/ollama"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/openai"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/openrouter"
	"github.com/kiosk404/helix/internal/helixd/service/llm/provider/spi"
)

// NewInTreeRegistry returns the registry of built-in provider plugins.
func NewInTreeRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(openai.Name, func() spi.ProviderPlugin { return openai.New() })
	r.MustRegister(openrouter.Name, func() spi.ProviderPlugin { return openrouter.New() })
	r.MustRegister(cerebras.Name, func() spi.ProviderPlugin { return cerebras.New() })
	r.MustRegister(ollama.Name, func() spi.ProviderPlugin { return ollama.New() })
	return r
}
