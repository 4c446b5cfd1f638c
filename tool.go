package oxysearch

import (
	"context"
	"encoding/json"
	"fmt"
)

// ToolAnnotations are optional hints that describe tool behavior.
type ToolAnnotations struct {
	Title           string         `json:"title,omitempty"`
	ReadOnlyHint    bool           `json:"readOnlyHint,omitempty"`
	DestructiveHint bool           `json:"destructiveHint,omitempty"`
	IdempotentHint  bool           `json:"idempotentHint,omitempty"`
	OpenWorldHint   bool           `json:"openWorldHint,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
}

func (a *ToolAnnotations) MarshalJSON() ([]byte, error) {
	data := map[string]any{
		"title":           a.Title,
		"readOnlyHint":    a.ReadOnlyHint,
		"destructiveHint": a.DestructiveHint,
		"idempotentHint":  a.IdempotentHint,
		"openWorldHint":   a.OpenWorldHint,
	}
	for k, v := range a.Extra {
		data[k] = v
	}
	return json.Marshal(data)
}

type ToolResultContentType string

const (
	ToolResultContentTypeText ToolResultContentType = "text"
)

func (t ToolResultContentType) String() string {
	return string(t)
}

type ToolResultContent struct {
	Type ToolResultContentType `json:"type"`
	Text string                `json:"text,omitempty"`
}

// ToolResult is the output from a tool call.
type ToolResult struct {
	Content []*ToolResultContent `json:"content"`
	IsError bool                 `json:"isError,omitempty"`
	Display string               `json:"display,omitempty"`
}

// WithDisplay sets a short human-readable summary of the result.
func (r *ToolResult) WithDisplay(display string) *ToolResult {
	r.Display = display
	return r
}

// Text returns the concatenated text content of the result.
func (r *ToolResult) Text() string {
	var text string
	for _, c := range r.Content {
		if c.Type == ToolResultContentTypeText {
			text += c.Text
		}
	}
	return text
}

// NewToolResultError creates a new ToolResult containing an error message.
func NewToolResultError(text string) *ToolResult {
	return &ToolResult{
		IsError: true,
		Content: []*ToolResultContent{
			{
				Type: ToolResultContentTypeText,
				Text: text,
			},
		},
	}
}

// NewToolResult creates a new ToolResult with the given content.
func NewToolResult(content ...*ToolResultContent) *ToolResult {
	return &ToolResult{Content: content}
}

// NewToolResultText creates a new ToolResult with the given text content.
func NewToolResultText(text string) *ToolResult {
	return NewToolResult(&ToolResultContent{
		Type: ToolResultContentTypeText,
		Text: text,
	})
}

// Tool is an interface for a tool that can be called by an LLM.
type Tool interface {
	// Name of the tool.
	Name() string

	// Description of the tool.
	Description() string

	// Schema describes the parameters used to call the tool.
	Schema() *Schema

	// Annotations returns optional properties that describe tool behavior.
	Annotations() *ToolAnnotations

	// Call is the function that is called to use the tool. It blocks until
	// the tool completes or ctx is done.
	Call(ctx context.Context, input any) (*ToolResult, error)
}

// AsyncTool is a Tool that can also be invoked without blocking the caller.
type AsyncTool interface {
	Tool

	// CallAsync starts the call and returns immediately. The result is
	// identical to what Call would have returned for the same input.
	CallAsync(ctx context.Context, input any) *Promise[*ToolResult]
}

// TypedTool is a tool that can be called with a specific type of input.
type TypedTool[T any] interface {
	Name() string
	Description() string
	Schema() *Schema
	Annotations() *ToolAnnotations
	Call(ctx context.Context, input T) (*ToolResult, error)
}

// ToolAdapter creates a new TypedToolAdapter for the given tool.
func ToolAdapter[T any](tool TypedTool[T]) *TypedToolAdapter[T] {
	return &TypedToolAdapter[T]{tool: tool}
}

// TypedToolAdapter is an adapter that allows a TypedTool to be used as a regular Tool.
// Specifically the Call method accepts `input any` and then internally unmarshals the input
// to the correct type and passes it to the TypedTool.
type TypedToolAdapter[T any] struct {
	tool TypedTool[T]
}

var _ AsyncTool = &TypedToolAdapter[any]{}

func (t *TypedToolAdapter[T]) Name() string {
	return t.tool.Name()
}

func (t *TypedToolAdapter[T]) Description() string {
	return t.tool.Description()
}

func (t *TypedToolAdapter[T]) Schema() *Schema {
	return t.tool.Schema()
}

func (t *TypedToolAdapter[T]) Annotations() *ToolAnnotations {
	return t.tool.Annotations()
}

func (t *TypedToolAdapter[T]) Call(ctx context.Context, input any) (*ToolResult, error) {
	typedInput, errResult := t.convertInput(input)
	if errResult != nil {
		return errResult, nil
	}
	return t.tool.Call(ctx, typedInput)
}

// CallAsync runs Call on its own goroutine. Cancelling ctx abandons the
// in-flight call and the promise resolves with the context error.
func (t *TypedToolAdapter[T]) CallAsync(ctx context.Context, input any) *Promise[*ToolResult] {
	return Go(ctx, func(ctx context.Context) (*ToolResult, error) {
		return t.Call(ctx, input)
	})
}

func (t *TypedToolAdapter[T]) convertInput(input any) (T, *ToolResult) {
	var typedInput T

	// Pass through if the input is already the correct type
	if converted, ok := input.(T); ok {
		return converted, nil
	}
	if input == nil {
		return typedInput, nil
	}

	var data []byte
	var err error
	switch raw := input.(type) {
	case json.RawMessage:
		data = raw
	case []byte:
		data = raw
	case string:
		data = []byte(raw)
	default:
		data, err = json.Marshal(input)
		if err != nil {
			return typedInput, NewToolResultError(fmt.Sprintf("invalid json for tool %s: %v", t.Name(), err))
		}
	}
	if len(data) == 0 {
		return typedInput, nil
	}
	if err := json.Unmarshal(data, &typedInput); err != nil {
		return typedInput, NewToolResultError(fmt.Sprintf("invalid json for tool %s: %v", t.Name(), err))
	}
	return typedInput, nil
}

// Unwrap returns the underlying TypedTool.
func (t *TypedToolAdapter[T]) Unwrap() TypedTool[T] {
	return t.tool
}
