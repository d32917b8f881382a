package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// scriptedChatModel replays a fixed sequence of responses, one per Generate
// call. It records the tool infos bound via WithTools.
type scriptedChatModel struct {
	mu        sync.Mutex
	index     int
	responses []scriptedResponse

	boundTools []*schema.ToolInfo
}

type scriptedResponse struct {
	message *schema.Message
	err     error
}

func newScriptedChatModel(responses ...scriptedResponse) *scriptedChatModel {
	cloned := make([]scriptedResponse, len(responses))
	copy(cloned, responses)
	return &scriptedChatModel{responses: cloned}
}

func reply(content string, calls ...schema.ToolCall) scriptedResponse {
	return scriptedResponse{message: &schema.Message{
		Role:      schema.Assistant,
		Content:   content,
		ToolCalls: calls,
	}}
}

func replyErr(err error) scriptedResponse {
	return scriptedResponse{err: err}
}

func toolCall(id, name, args string) schema.ToolCall {
	return schema.ToolCall{
		ID:       id,
		Function: schema.FunctionCall{Name: name, Arguments: args},
	}
}

func (m *scriptedChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.responses) {
		return nil, fmt.Errorf("script exhausted at step %d", m.index+1)
	}
	current := m.responses[m.index]
	m.index++
	if current.err != nil {
		return nil, current.err
	}
	return current.message, nil
}

func (m *scriptedChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("streaming not supported")
}

func (m *scriptedChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boundTools = tools
	return m, nil
}

// funcChatModel delegates Generate to a function; coordinator tests use it
// to key behavior off the conversation.
type funcChatModel struct {
	generate func(ctx context.Context, in []*schema.Message) (*schema.Message, error)
}

func (m *funcChatModel) Generate(ctx context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	return m.generate(ctx, in)
}

func (m *funcChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("streaming not supported")
}

func (m *funcChatModel) WithTools(_ []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}
