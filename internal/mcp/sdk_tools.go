package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools registers the tool catalog on the SDK server. Schemas are
// authored as plain maps in the catalog and converted once at startup.
func registerTools(server *sdkmcp.Server, handler *Handler) {
	for _, tool := range buildToolCatalog() {
		schema, err := toSchema(tool.InputSchema)
		if err != nil {
			panic(fmt.Sprintf("invalid schema for tool %s: %v", tool.Name, err))
		}

		name := tool.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        name,
			Description: tool.Description,
			InputSchema: schema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				data, err := json.Marshal(req.Params.Arguments)
				if err != nil {
					return nil, fmt.Errorf("encoding arguments: %w", err)
				}
				args = data
			}

			result, err := handler.dispatch(ctx, name, args)
			if err != nil {
				if item, ok := errContent(err); ok {
					return &sdkmcp.CallToolResult{
						Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: item.Text}},
						IsError: true,
					}, nil
				}
				return nil, err
			}

			data, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("encoding result: %w", err)
			}
			return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
			}, nil
		})
	}
}

func toSchema(m map[string]any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}
