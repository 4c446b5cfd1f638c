package toolkit

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/oxysearch"
	"github.com/deepnoodle-ai/oxysearch/oxylabs"
)

const (
	OxylabsSearchToolName        = "oxylabs_search"
	OxylabsSearchResultsToolName = "oxylabs_search_results"
)

var (
	_ oxysearch.TypedTool[*OxylabsSearchInput] = &OxylabsSearchTool{}
	_ oxysearch.TypedTool[*OxylabsSearchInput] = &OxylabsSearchResultsTool{}
	_ OxylabsClient                            = &oxylabs.Client{}
)

// OxylabsClient is the part of [oxylabs.Client] the Oxylabs tools use.
type OxylabsClient interface {
	Run(ctx context.Context, q oxylabs.SearchQuery) (string, error)
	Results(ctx context.Context, q oxylabs.SearchQuery) (oxylabs.Results, error)
	Config() oxylabs.Config
}

// OxylabsSearchToolOptions configures the Oxylabs tools.
type OxylabsSearchToolOptions struct {
	// Client performs the searches. Required.
	Client OxylabsClient
}

// OxylabsSearchInput is the input of both Oxylabs tools.
type OxylabsSearchInput struct {
	// Query is the text to search for. Required.
	Query string `json:"query"`

	// GeoLocation is the location results are localized for, e.g.
	// "Paris,France". Defaults to the client's configured location.
	GeoLocation string `json:"geo_location,omitempty"`
}

func (in *OxylabsSearchInput) searchQuery() oxylabs.SearchQuery {
	if in == nil {
		return oxylabs.SearchQuery{}
	}
	return oxylabs.SearchQuery{Query: in.Query, GeoLocation: in.GeoLocation}
}

var errNoOxylabsClient = errors.New("oxylabs tool has no client configured")

// OxylabsSearchTool searches Google through Oxylabs and returns a readable
// summary of the results: organic results, knowledge graph, related
// questions, and other result blocks, one snippet per block.
type OxylabsSearchTool struct {
	client OxylabsClient
}

// NewOxylabsSearchTool creates the "oxylabs_search" tool.
func NewOxylabsSearchTool(options OxylabsSearchToolOptions) *oxysearch.TypedToolAdapter[*OxylabsSearchInput] {
	return oxysearch.ToolAdapter(&OxylabsSearchTool{client: options.Client})
}

func (t *OxylabsSearchTool) Name() string {
	return OxylabsSearchToolName
}

func (t *OxylabsSearchTool) Description() string {
	return "A meta search engine. Useful for when you need to answer questions about current events. " +
		"Input should be a search query. Output is a text summary of the search results."
}

func (t *OxylabsSearchTool) Schema() *oxysearch.Schema {
	return oxylabsSchema(t.client)
}

func (t *OxylabsSearchTool) Annotations() *oxysearch.ToolAnnotations {
	return oxylabsAnnotations("Oxylabs Search")
}

func (t *OxylabsSearchTool) Call(ctx context.Context, input *OxylabsSearchInput) (*oxysearch.ToolResult, error) {
	if t.client == nil {
		return nil, errNoOxylabsClient
	}
	q := input.searchQuery()
	summary, err := t.client.Run(ctx, q)
	if err != nil {
		return nil, err
	}
	return NewToolResultText(summary).WithDisplay(fmt.Sprintf("Searched Oxylabs for %q", q.Query)), nil
}

// OxylabsSearchResultsTool searches Google through Oxylabs and returns the
// parsed result pages as a JSON array, in provider order.
type OxylabsSearchResultsTool struct {
	client OxylabsClient
}

// NewOxylabsSearchResultsTool creates the "oxylabs_search_results" tool.
func NewOxylabsSearchResultsTool(options OxylabsSearchToolOptions) *oxysearch.TypedToolAdapter[*OxylabsSearchInput] {
	return oxysearch.ToolAdapter(&OxylabsSearchResultsTool{client: options.Client})
}

func (t *OxylabsSearchResultsTool) Name() string {
	return OxylabsSearchResultsToolName
}

func (t *OxylabsSearchResultsTool) Description() string {
	return "A meta search engine. Useful for when you need to answer questions about current events. " +
		"Input should be a search query. Output is a JSON array of the query results."
}

func (t *OxylabsSearchResultsTool) Schema() *oxysearch.Schema {
	return oxylabsSchema(t.client)
}

func (t *OxylabsSearchResultsTool) Annotations() *oxysearch.ToolAnnotations {
	return oxylabsAnnotations("Oxylabs Search Results")
}

func (t *OxylabsSearchResultsTool) Call(ctx context.Context, input *OxylabsSearchInput) (*oxysearch.ToolResult, error) {
	if t.client == nil {
		return nil, errNoOxylabsClient
	}
	q := input.searchQuery()
	results, err := t.client.Results(ctx, q)
	if err != nil {
		return nil, err
	}
	data, err := results.JSON()
	if err != nil {
		return nil, err
	}
	display := fmt.Sprintf("Found %d result pages for %q", len(results), q.Query)
	return NewToolResultText(data).WithDisplay(display), nil
}

// NewOxylabsTools returns both Oxylabs tools sharing one client.
func NewOxylabsTools(options OxylabsSearchToolOptions) []oxysearch.AsyncTool {
	return []oxysearch.AsyncTool{
		NewOxylabsSearchTool(options),
		NewOxylabsSearchResultsTool(options),
	}
}

func oxylabsSchema(client OxylabsClient) *oxysearch.Schema {
	geoLocation := oxylabs.DefaultGeoLocation
	if client != nil {
		if configured := client.Config().GeoLocation; configured != "" {
			geoLocation = configured
		}
	}
	return &oxysearch.Schema{
		Type:     "object",
		Required: []string{"query"},
		Properties: map[string]*oxysearch.SchemaProperty{
			"query": {
				Type:        "string",
				Description: "Query to retrieve on the Oxylabs Search API",
			},
			"geo_location": {
				Type:        "string",
				Description: fmt.Sprintf("Geographic location to localize results for, e.g. 'Paris,France' (Default: %s)", geoLocation),
			},
		},
	}
}

func oxylabsAnnotations(title string) *oxysearch.ToolAnnotations {
	return &oxysearch.ToolAnnotations{
		Title:           title,
		ReadOnlyHint:    true,
		DestructiveHint: false,
		IdempotentHint:  true,
		OpenWorldHint:   true,
	}
}
