package mcp

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTools is returned when a server is given an empty tool set
	ErrNoTools = errors.New("mcp server has no tools")

	// ErrDuplicateTool is returned when two tools share a name
	ErrDuplicateTool = errors.New("mcp tool name is not unique")
)

// MCPError wraps MCP-specific errors with additional context
type MCPError struct {
	Operation string
	ToolName  string
	Err       error
}

func (e *MCPError) Error() string {
	if e.ToolName != "" {
		return fmt.Sprintf("MCP %s failed for tool %s: %v", e.Operation, e.ToolName, e.Err)
	}
	return fmt.Sprintf("MCP %s failed: %v", e.Operation, e.Err)
}

func (e *MCPError) Unwrap() error {
	return e.Err
}

// NewMCPError creates a new MCPError
func NewMCPError(operation, toolName string, err error) *MCPError {
	return &MCPError{
		Operation: operation,
		ToolName:  toolName,
		Err:       err,
	}
}

// IsDuplicateToolError checks if an error is a duplicate tool error
func IsDuplicateToolError(err error) bool {
	return errors.Is(err, ErrDuplicateTool)
}
