package mcp

import (
	"context"
	"encoding/json"

	"github.com/deepnoodle-ai/oxysearch"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ConvertTool describes an oxysearch tool as an MCP server tool. Calls
// received over MCP are forwarded to tool.Call with the request arguments.
func ConvertTool(tool oxysearch.Tool) (server.ServerTool, error) {
	schema := tool.Schema()
	if schema == nil {
		schema = &oxysearch.Schema{Type: "object", Properties: map[string]*oxysearch.SchemaProperty{}}
	}
	rawSchema, err := json.Marshal(schema)
	if err != nil {
		return server.ServerTool{}, NewMCPError("convert schema", tool.Name(), err)
	}
	mcpTool := mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), rawSchema)
	if annotations := tool.Annotations(); annotations != nil {
		mcpTool.Annotations = mcp.ToolAnnotation{
			Title:           annotations.Title,
			ReadOnlyHint:    mcp.ToBoolPtr(annotations.ReadOnlyHint),
			DestructiveHint: mcp.ToBoolPtr(annotations.DestructiveHint),
			IdempotentHint:  mcp.ToBoolPtr(annotations.IdempotentHint),
			OpenWorldHint:   mcp.ToBoolPtr(annotations.OpenWorldHint),
		}
	}
	return server.ServerTool{
		Tool:    mcpTool,
		Handler: toolHandler(tool),
	}, nil
}

// toolHandler reports tool failures as error results so the client model
// can see the message, rather than as protocol errors.
func toolHandler(tool oxysearch.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := tool.Call(ctx, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return ConvertResult(result), nil
	}
}

// ConvertResult converts an oxysearch ToolResult to an MCP CallToolResult
func ConvertResult(result *oxysearch.ToolResult) *mcp.CallToolResult {
	if result == nil {
		return mcp.NewToolResultError("tool returned nil result")
	}
	content := make([]mcp.Content, 0, len(result.Content))
	for _, c := range result.Content {
		if c.Type == oxysearch.ToolResultContentTypeText {
			content = append(content, mcp.NewTextContent(c.Text))
		}
	}
	return &mcp.CallToolResult{
		Content: content,
		IsError: result.IsError,
	}
}
