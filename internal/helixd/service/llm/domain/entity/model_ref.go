package entity

import (
	"fmt"
	"strings"
)

// ModelRef identifies one model of one provider.
type ModelRef struct {
	ProviderID string `json:"provider_id"`
	ModelID    string `json:"model_id"`
}

func (r ModelRef) String() string {
	return r.ProviderID + "/" + r.ModelID
}

// IsZero reports whether the ref is unset.
func (r ModelRef) IsZero() bool {
	return r.ProviderID == "" && r.ModelID == ""
}

// ParseModelRef parses "provider/model" notation. The model part may itself
// contain slashes (OpenRouter ids like "x-ai/grok-code-fast-1").
func ParseModelRef(s string) (ModelRef, error) {
	provider, model, ok := strings.Cut(s, "/")
	if !ok || provider == "" || model == "" {
		return ModelRef{}, fmt.Errorf("invalid model ref %q, want provider/model", s)
	}
	return ModelRef{ProviderID: provider, ModelID: model}, nil
}

// LLMParams carries per-call sampling parameters.
type LLMParams struct {
	Temperature *float32 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}
