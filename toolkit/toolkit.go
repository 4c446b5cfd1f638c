// Package toolkit provides search tools for AI agents.
//
// # Oxylabs Tools
//
// Two tools wrap an [oxylabs.Client]:
//   - [OxylabsSearchTool] ("oxylabs_search"): returns a readable summary of
//     the search results
//   - [OxylabsSearchResultsTool] ("oxylabs_search_results"): returns the
//     parsed result pages as a JSON array
//
// Both accept the same input, a required "query" and an optional
// "geo_location" that defaults to the client's configured location.
//
// # Generic Web Search
//
// [WebSearchTool] works with any [web.Searcher]. The Oxylabs client is one.
//
// # Creating Tools
//
// Each tool has a constructor that accepts an options struct and returns a
// [oxysearch.TypedToolAdapter], which can be called synchronously with Call
// or asynchronously with CallAsync:
//
//	search := toolkit.NewOxylabsSearchTool(toolkit.OxylabsSearchToolOptions{
//	    Client: client,
//	})
//	promise := search.CallAsync(ctx, map[string]any{"query": "golang"})
//	result, err := promise.Get(ctx)
package toolkit

import "github.com/deepnoodle-ai/oxysearch"

var (
	// NewToolResultError creates a tool result indicating an error occurred.
	NewToolResultError = oxysearch.NewToolResultError

	// NewToolResultText creates a successful tool result with text content.
	NewToolResultText = oxysearch.NewToolResultText
)
