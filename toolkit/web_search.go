package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/oxysearch"
	"github.com/deepnoodle-ai/oxysearch/web"
)

// WebSearchToolName is the name the ranked web search tool is registered under
const WebSearchToolName = "WebSearch"

const (
	defaultWebSearchLimit = 10
	maxWebSearchLimit     = 30
)

var (
	_ oxysearch.TypedTool[*WebSearchInput] = &WebSearchTool{}

	errNoSearcher = errors.New("web search tool has no searcher configured")
)

// WebSearchToolOptions configures a [WebSearchTool].
type WebSearchToolOptions struct {
	// Searcher runs the queries, typically an *oxylabs.Client.
	Searcher web.Searcher

	// GeoLocation is used when a call does not name one.
	GeoLocation string
}

// WebSearchInput is the input of the WebSearch tool.
type WebSearchInput struct {
	Query       string `json:"query"`
	Limit       int    `json:"limit,omitempty"`
	GeoLocation string `json:"geo_location,omitempty"`
}

// WebSearchTool returns ranked organic results as a JSON array of
// {rank, url, title, description} objects. Use the oxylabs_search tools for
// the full result page.
type WebSearchTool struct {
	searcher    web.Searcher
	geoLocation string
}

// NewWebSearchTool wraps a searcher as a tool.
func NewWebSearchTool(options WebSearchToolOptions) *oxysearch.TypedToolAdapter[*WebSearchInput] {
	return oxysearch.ToolAdapter(&WebSearchTool{
		searcher:    options.Searcher,
		geoLocation: options.GeoLocation,
	})
}

func (t *WebSearchTool) Name() string {
	return WebSearchToolName
}

func (t *WebSearchTool) Description() string {
	return "Searches the web and returns the ranked organic results as JSON, " +
		"one object per page with its rank, url, title and description. " +
		"Use it to pick pages to cite or read."
}

func (t *WebSearchTool) Schema() *oxysearch.Schema {
	return &oxysearch.Schema{
		Type:     "object",
		Required: []string{"query"},
		Properties: map[string]*oxysearch.SchemaProperty{
			"query": {
				Type:        "string",
				Description: "The search query, e.g. 'cloud security companies'",
			},
			"limit": {
				Type:        "number",
				Description: fmt.Sprintf("Maximum number of results (Default: %d, Max: %d)", defaultWebSearchLimit, maxWebSearchLimit),
			},
			"geo_location": {
				Type:        "string",
				Description: "Where the search should appear to come from, e.g. 'Paris,France'",
			},
		},
	}
}

func (t *WebSearchTool) Call(ctx context.Context, input *WebSearchInput) (*oxysearch.ToolResult, error) {
	if t.searcher == nil {
		return nil, errNoSearcher
	}
	if input == nil {
		input = &WebSearchInput{}
	}
	request := &web.SearchInput{
		Query:       input.Query,
		Limit:       clampLimit(input.Limit),
		GeoLocation: input.GeoLocation,
	}
	if request.GeoLocation == "" {
		request.GeoLocation = t.geoLocation
	}
	output, err := t.searcher.Search(ctx, request)
	if err != nil {
		return nil, err
	}
	items := output.Items
	if len(items) == 0 {
		return NewToolResultError(fmt.Sprintf("No search results found for %q", input.Query)), nil
	}
	if len(items) > request.Limit {
		items = items[:request.Limit]
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return NewToolResultText(string(data)).WithDisplay(describeSearch(len(items), request)), nil
}

func (t *WebSearchTool) Annotations() *oxysearch.ToolAnnotations {
	return &oxysearch.ToolAnnotations{
		Title:          "Web search",
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  true,
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultWebSearchLimit
	case limit > maxWebSearchLimit:
		return maxWebSearchLimit
	}
	return limit
}

func describeSearch(count int, request *web.SearchInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results for %q", count, request.Query)
	if request.GeoLocation != "" {
		fmt.Fprintf(&b, " in %s", request.GeoLocation)
	}
	return b.String()
}
