package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kiosk404/helix/internal/helixd/service/search/backend"
	"github.com/kiosk404/helix/internal/helixd/service/search/pkg/errno"
	"github.com/kiosk404/helix/pkg/logger"
	"github.com/kiosk404/helix/pkg/utils/json"
)

// AgentLoop drives one category agent: a tool-calling conversation between
// the completion service and an exclusive sandboxed backend. It owns the
// conversation; nothing else appends to it.
type AgentLoop struct {
	category string
	chat     model.ToolCallingChatModel
	backend  backend.Backend
	maxTurns int
}

// NewAgentLoop creates a loop bound to one backend. maxTurns caps the
// model round trips; the first call counts as turn one.
func NewAgentLoop(category string, chat model.ToolCallingChatModel, b backend.Backend, maxTurns int) *AgentLoop {
	return &AgentLoop{
		category: category,
		chat:     chat,
		backend:  b,
		maxTurns: maxTurns,
	}
}

// Run executes the loop until the model answers without tool calls, the
// turn cap is hit, or the context is cancelled. It returns the final
// assistant text and the number of model round trips consumed.
func (l *AgentLoop) Run(ctx context.Context, systemPrompt, query string) (string, int, error) {
	tools, err := l.backend.ListTools(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", errno.ErrBackendUnavailable, err)
	}
	if len(tools) == 0 {
		return "", 0, errno.ErrNoToolsAvailable
	}
	logger.Info("[Agent] %s: %d tools available", l.category, len(tools))

	infos, err := toolInfos(tools)
	if err != nil {
		return "", 0, err
	}
	chat, err := l.chat.WithTools(infos)
	if err != nil {
		return "", 0, fmt.Errorf("failed to bind tools: %w", err)
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(query),
	}

	for turn := 1; turn <= l.maxTurns; turn++ {
		resp, err := chat.Generate(ctx, messages)
		if err != nil {
			return "", turn, fmt.Errorf("completion failed: %w", err)
		}
		messages = append(messages, resp)

		if len(resp.ToolCalls) == 0 {
			logger.Info("[Agent] %s: finished after %d turns", l.category, turn)
			if resp.Content == "" {
				return "", turn, errno.ErrEmptyResult
			}
			return resp.Content, turn, nil
		}

		// Same-turn tool calls execute sequentially, in the order the
		// model issued them, so each result lands next to its call id.
		for _, call := range resp.ToolCalls {
			payload := l.execToolCall(ctx, call)
			messages = append(messages,
				schema.ToolMessage(payload, call.ID, schema.WithToolName(call.Function.Name)))
		}
	}

	logger.Warn("[Agent] %s: turn limit (%d) exceeded", l.category, l.maxTurns)
	return "", l.maxTurns, errno.ErrTurnLimitExceeded
}

// execToolCall runs one tool call and renders its result as the tool
// message body. Failures are fed back to the model as text rather than
// aborting the loop, so it can recover or try another tool.
func (l *AgentLoop) execToolCall(ctx context.Context, call schema.ToolCall) string {
	name := call.Function.Name

	args := map[string]any{}
	if raw := call.Function.Arguments; raw != "" {
		if err := json.UnmarshalString(raw, &args); err != nil {
			logger.Warn("[Agent] %s: tool %s: bad arguments: %v", l.category, name, err)
			return fmt.Sprintf("ERROR: invalid arguments for tool %s: %v", name, err)
		}
	}

	logger.Debug("[Agent] %s: calling tool %s with args %v", l.category, name, args)
	result, err := l.backend.CallTool(ctx, name, args)
	if err != nil {
		logger.Warn("[Agent] %s: tool %s failed: %v", l.category, name, err)
		return fmt.Sprintf("ERROR: tool %s failed: %v", name, err)
	}
	return resultPayload(result)
}

// resultPayload prefers the structured content of a tool result, falling
// back to its concatenated text parts.
func resultPayload(result *mcp.CallToolResult) string {
	if result.StructuredContent != nil {
		if s, err := json.MarshalString(result.StructuredContent); err == nil {
			return s
		}
	}
	var parts []string
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
