package service

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/eino-contrib/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kiosk404/helix/pkg/utils/json"
)

// toolInfos converts the backend's tool catalog into the completion
// service's tool declarations. Tools without a description get an empty one
// and tools without parameters get an empty object schema, matching what
// providers expect.
func toolInfos(tools []mcp.Tool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := toToolInfo(t)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", t.Name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func toToolInfo(t mcp.Tool) (*schema.ToolInfo, error) {
	raw, err := json.Marshal(t.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input schema: %w", err)
	}
	js := &jsonschema.Schema{}
	if err := json.Unmarshal(raw, js); err != nil {
		return nil, fmt.Errorf("failed to parse input schema: %w", err)
	}
	if js.Type == "" {
		js.Type = "object"
	}

	return &schema.ToolInfo{
		Name:        t.Name,
		Desc:        t.Description,
		ParamsOneOf: schema.NewParamsOneOfByJSONSchema(js),
	}, nil
}
