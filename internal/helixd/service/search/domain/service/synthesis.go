package service

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gptr"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmentity "github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/pkg/logger"
)

// Sampling for the summary call. Low temperature keeps the summary close
// to the gathered material.
const (
	synthesisTemperature float32 = 0.3
	synthesisMaxTokens           = 2048
)

// SynthesisParams returns the sampling parameters for the summary model.
func SynthesisParams() *llmentity.LLMParams {
	return &llmentity.LLMParams{
		Temperature: gptr.Of(synthesisTemperature),
		MaxTokens:   gptr.Of(synthesisMaxTokens),
	}
}

// Synthesizer turns the merged per-category results into a single summary
// addressing the user's query.
type Synthesizer struct {
	chat         model.ToolCallingChatModel
	systemPrompt string
}

// NewSynthesizer creates a synthesizer over the given chat model.
func NewSynthesizer(chat model.ToolCallingChatModel, systemPrompt string) *Synthesizer {
	return &Synthesizer{chat: chat, systemPrompt: systemPrompt}
}

// Synthesize summarizes the merged results. The summary call is best
// effort: on any failure the raw merged results are returned under a
// fallback banner instead of failing the whole search.
func (s *Synthesizer) Synthesize(ctx context.Context, query, merged string) string {
	if s == nil || s.chat == nil {
		return fallback(merged)
	}

	prompt := fmt.Sprintf("User Query: %s\nSearch Results:\n%s\nPlease provide a well-structured summary that directly addresses the user's query.", query, merged)

	resp, err := s.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(s.systemPrompt),
		schema.UserMessage(prompt),
	})
	if err != nil || resp.Content == "" {
		logger.Warn("[Search] summarization failed, returning raw results: %v", err)
		return fallback(merged)
	}
	return resp.Content
}

func fallback(merged string) string {
	return "Search Results (summarization unavailable):\n\n" + merged
}
