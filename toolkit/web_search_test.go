package toolkit

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/deepnoodle-ai/oxysearch/web"
	"github.com/deepnoodle-ai/wonton/assert"
)

// mockSearcher implements web.Searcher for testing
type mockSearcher struct {
	receivedLimit int
	receivedGeo   string
	itemCount     int
}

func (m *mockSearcher) Search(ctx context.Context, input *web.SearchInput) (*web.SearchOutput, error) {
	m.receivedLimit = input.Limit
	m.receivedGeo = input.GeoLocation

	// Generate items up to the requested count
	items := []*web.SearchItem{}
	for i := 0; i < m.itemCount; i++ {
		items = append(items, &web.SearchItem{
			Rank:        i + 1,
			URL:         "https://example.com",
			Title:       "Test Result",
			Description: "Test description",
		})
	}

	return &web.SearchOutput{
		Items: items,
	}, nil
}

func TestWebSearchTool_LimitParameter(t *testing.T) {
	t.Run("UsesProvidedLimit", func(t *testing.T) {
		searcher := &mockSearcher{itemCount: 15}
		tool := &WebSearchTool{searcher: searcher}

		_, err := tool.Call(context.Background(), &WebSearchInput{
			Query: "test query",
			Limit: 15,
		})

		assert.NoError(t, err)
		assert.Equal(t, 15, searcher.receivedLimit, "Should use the provided limit")
	})

	t.Run("DefaultsToTenWhenZero", func(t *testing.T) {
		searcher := &mockSearcher{itemCount: 10}
		tool := &WebSearchTool{searcher: searcher}

		_, err := tool.Call(context.Background(), &WebSearchInput{
			Query: "test query",
			Limit: 0,
		})

		assert.NoError(t, err)
		assert.Equal(t, 10, searcher.receivedLimit, "Should default to 10 when limit is 0")
	})

	t.Run("DefaultsToTenWhenNegative", func(t *testing.T) {
		searcher := &mockSearcher{itemCount: 10}
		tool := &WebSearchTool{searcher: searcher}

		_, err := tool.Call(context.Background(), &WebSearchInput{
			Query: "test query",
			Limit: -5,
		})

		assert.NoError(t, err)
		assert.Equal(t, 10, searcher.receivedLimit, "Should default to 10 when limit is negative")
	})

	t.Run("CapsAtThirty", func(t *testing.T) {
		searcher := &mockSearcher{itemCount: 30}
		tool := &WebSearchTool{searcher: searcher}

		_, err := tool.Call(context.Background(), &WebSearchInput{
			Query: "test query",
			Limit: 100,
		})

		assert.NoError(t, err)
		assert.Equal(t, 30, searcher.receivedLimit, "Should cap limit at 30")
	})

	t.Run("AcceptsValidLimitInRange", func(t *testing.T) {
		testCases := []int{1, 5, 10, 15, 20, 25, 30}

		for _, limit := range testCases {
			searcher := &mockSearcher{itemCount: limit}
			tool := &WebSearchTool{searcher: searcher}

			_, err := tool.Call(context.Background(), &WebSearchInput{
				Query: "test query",
				Limit: limit,
			})

			assert.NoError(t, err)
			assert.Equal(t, limit, searcher.receivedLimit, "Should accept limit %d", limit)
		}
	})
}

func TestWebSearchTool_Metadata(t *testing.T) {
	tool := &WebSearchTool{}

	assert.Equal(t, "WebSearch", tool.Name())
	assert.Contains(t, tool.Description(), "ranked organic results")

	annotations := tool.Annotations()
	assert.NotNil(t, annotations)
	assert.True(t, annotations.ReadOnlyHint)
	assert.False(t, annotations.DestructiveHint)
	assert.True(t, annotations.IdempotentHint)
	assert.True(t, annotations.OpenWorldHint)
}

func TestWebSearchTool_Schema(t *testing.T) {
	tool := &WebSearchTool{}
	schema := tool.Schema()

	assert.NotNil(t, schema)
	assert.Equal(t, "object", string(schema.Type))
	assert.Contains(t, schema.Required, "query")
	assert.Contains(t, schema.Properties, "query")
	assert.Contains(t, schema.Properties, "limit")
	assert.Contains(t, schema.Properties, "geo_location")
}

func TestWebSearchTool_NoResults(t *testing.T) {
	searcher := &mockSearcher{itemCount: 0}
	tool := &WebSearchTool{searcher: searcher}

	result, err := tool.Call(context.Background(), &WebSearchInput{
		Query: "test query",
		Limit: 10,
	})

	assert.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, `No search results found for "test query"`, result.Content[0].Text)
}

func TestWebSearchTool_NoSearcher(t *testing.T) {
	tool := &WebSearchTool{}
	_, err := tool.Call(context.Background(), &WebSearchInput{Query: "test query"})
	assert.Error(t, err)
}

func TestWebSearchTool_Oxylabs(t *testing.T) {
	provider := newOxylabsProvider(t, http.StatusOK, pythonSearchBody)
	tool := NewWebSearchTool(WebSearchToolOptions{
		Searcher: newOxylabsClient(t, provider.URL),
	})

	result, err := tool.Call(context.Background(), map[string]any{
		"query": "Python programming language",
		"limit": 1,
	})
	assert.NoError(t, err)
	assert.False(t, result.IsError)

	var items []*web.SearchItem
	assert.NoError(t, json.Unmarshal([]byte(result.Text()), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "https://www.python.org/", items[0].URL)
	assert.Equal(t, `Found 1 results for "Python programming language"`, result.Display)
}

func TestWebSearchTool_GeoLocation(t *testing.T) {
	tests := []struct {
		name     string
		fallback string
		input    string
		expected string
		display  string
	}{
		{"FromInput", "", "Paris,France", "Paris,France", `Found 3 results for "q" in Paris,France`},
		{"InputOverridesFallback", "Berlin,Germany", "Paris,France", "Paris,France", `Found 3 results for "q" in Paris,France`},
		{"Fallback", "Berlin,Germany", "", "Berlin,Germany", `Found 3 results for "q" in Berlin,Germany`},
		{"Neither", "", "", "", `Found 3 results for "q"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			searcher := &mockSearcher{itemCount: 3}
			tool := NewWebSearchTool(WebSearchToolOptions{Searcher: searcher, GeoLocation: tc.fallback})

			result, err := tool.Call(context.Background(), map[string]any{
				"query":        "q",
				"geo_location": tc.input,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, searcher.receivedGeo)
			assert.Equal(t, tc.display, result.Display)
		})
	}
}

func TestWebSearchTool_OxylabsGeoLocation(t *testing.T) {
	provider := newOxylabsProvider(t, http.StatusOK, pythonSearchBody)
	tool := NewWebSearchTool(WebSearchToolOptions{
		Searcher: newOxylabsClient(t, provider.URL),
	})

	_, err := tool.Call(context.Background(), map[string]any{
		"query":        "Python programming language",
		"geo_location": "Paris,France",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Paris,France", provider.geoLocation(t))
}
