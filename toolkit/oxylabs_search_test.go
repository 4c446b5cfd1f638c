package toolkit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/deepnoodle-ai/oxysearch/oxylabs"
	"github.com/deepnoodle-ai/wonton/assert"
)

const pythonSearchBody = `{
  "results": [
    {
      "content": {
        "results": {
          "organic": [
            {
              "pos": 1,
              "url": "https://www.python.org/",
              "title": "Welcome to Python.org",
              "desc": "The official home of the Python Programming Language.",
              "pos_overall": 1
            },
            {
              "pos": 2,
              "url": "https://en.wikipedia.org/wiki/Python_(programming_language)",
              "title": "Python (programming language) - Wikipedia",
              "desc": "Python is a high-level, general-purpose programming language.",
              "pos_overall": 2
            }
          ],
          "knowledge": {
            "title": "Python",
            "subtitle": "Programming language",
            "images": ["data:image/png;base64,iVBORw0KGgo="],
            "factoids": [
              {"title": "Designed by", "content": "Guido van Rossum"},
              {"title": "Filename extensions", "content": ".py, .pyw, .pyc"}
            ]
          }
        }
      },
      "page": 1,
      "status_code": 200
    }
  ]
}`

type oxylabsProvider struct {
	*httptest.Server
	requests atomic.Int32
	lastBody atomic.Value
}

func newOxylabsProvider(t *testing.T, status int, body string) *oxylabsProvider {
	t.Helper()
	p := &oxylabsProvider{}
	p.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.requests.Add(1)
		data, _ := io.ReadAll(r.Body)
		p.lastBody.Store(data)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(p.Close)
	return p
}

func (p *oxylabsProvider) geoLocation(t *testing.T) string {
	t.Helper()
	data, ok := p.lastBody.Load().([]byte)
	assert.True(t, ok, "no request recorded")
	var body map[string]any
	assert.NoError(t, json.Unmarshal(data, &body))
	geo, _ := body["geo_location"].(string)
	return geo
}

func newOxylabsClient(t *testing.T, baseURL string) *oxylabs.Client {
	t.Helper()
	client, err := oxylabs.New(
		oxylabs.WithCredentials("user", "pass"),
		oxylabs.WithBaseURL(baseURL),
	)
	assert.NoError(t, err)
	return client
}

func TestOxylabsSearchTool(t *testing.T) {
	provider := newOxylabsProvider(t, http.StatusOK, pythonSearchBody)
	tool := NewOxylabsSearchTool(OxylabsSearchToolOptions{
		Client: newOxylabsClient(t, provider.URL),
	})

	result, err := tool.Call(context.Background(), map[string]any{
		"query": "Python programming language",
	})
	assert.NoError(t, err)
	assert.False(t, result.IsError)

	text := result.Text()
	assert.Contains(t, text, "Guido van Rossum")
	assert.Contains(t, text, ".py")
	assert.Contains(t, text, "high-level, general-purpose programming language")
	assert.Contains(t, text, oxylabs.RedactedImage)
	assert.NotContains(t, text, "iVBORw0KGgo")
	assert.NotContains(t, text, "POS_OVERALL")
	assert.Equal(t, oxylabs.DefaultGeoLocation, provider.geoLocation(t))
}

func TestOxylabsSearchResultsTool(t *testing.T) {
	provider := newOxylabsProvider(t, http.StatusOK, pythonSearchBody)
	tool := NewOxylabsSearchResultsTool(OxylabsSearchToolOptions{
		Client: newOxylabsClient(t, provider.URL),
	})

	result, err := tool.Call(context.Background(), `{"query": "Python programming language", "geo_location": "Paris,France"}`)
	assert.NoError(t, err)
	assert.False(t, result.IsError)

	var pages []map[string]any
	assert.NoError(t, json.Unmarshal([]byte(result.Text()), &pages))
	assert.Len(t, pages, 1)
	assert.Contains(t, pages[0], "organic")
	assert.Contains(t, pages[0], "knowledge")
	assert.Equal(t, "Paris,France", provider.geoLocation(t))
}

func TestOxylabsToolsMetadata(t *testing.T) {
	client := newOxylabsClient(t, "http://127.0.0.1:1")
	tools := NewOxylabsTools(OxylabsSearchToolOptions{Client: client})
	assert.Len(t, tools, 2)
	assert.Equal(t, OxylabsSearchToolName, tools[0].Name())
	assert.Equal(t, OxylabsSearchResultsToolName, tools[1].Name())

	for _, tool := range tools {
		assert.Contains(t, tool.Description(), "A meta search engine")

		schema := tool.Schema()
		assert.Equal(t, []string{"query"}, schema.Required)
		assert.Len(t, schema.Properties, 2)
		assert.Contains(t, schema.Properties, "query")
		assert.Contains(t, schema.Properties, "geo_location")
		assert.Contains(t, schema.Properties["geo_location"].Description, oxylabs.DefaultGeoLocation)

		annotations := tool.Annotations()
		assert.True(t, annotations.ReadOnlyHint)
		assert.False(t, annotations.DestructiveHint)
		assert.True(t, annotations.IdempotentHint)
		assert.True(t, annotations.OpenWorldHint)
	}
}

func TestOxylabsToolsSyncAsyncEquivalence(t *testing.T) {
	provider := newOxylabsProvider(t, http.StatusOK, pythonSearchBody)
	client := newOxylabsClient(t, provider.URL)
	ctx := context.Background()
	input := map[string]any{"query": "Python programming language"}

	for _, tool := range NewOxylabsTools(OxylabsSearchToolOptions{Client: client}) {
		syncResult, err := tool.Call(ctx, input)
		assert.NoError(t, err)

		asyncResult, err := tool.CallAsync(ctx, input).Get(ctx)
		assert.NoError(t, err)
		assert.Equal(t, syncResult.Text(), asyncResult.Text(), tool.Name())
	}
	assert.Equal(t, int32(4), provider.requests.Load())
}

func TestOxylabsToolsEmptyQuery(t *testing.T) {
	provider := newOxylabsProvider(t, http.StatusOK, pythonSearchBody)
	client := newOxylabsClient(t, provider.URL)

	for _, tool := range NewOxylabsTools(OxylabsSearchToolOptions{Client: client}) {
		_, err := tool.Call(context.Background(), map[string]any{"query": "  "})
		assert.True(t, oxylabs.IsInvalidArgumentError(err), tool.Name())

		_, err = tool.Call(context.Background(), nil)
		assert.True(t, oxylabs.IsInvalidArgumentError(err), tool.Name())

		_, err = tool.CallAsync(context.Background(), map[string]any{}).Get(context.Background())
		assert.True(t, oxylabs.IsInvalidArgumentError(err), tool.Name())
	}
	assert.Equal(t, int32(0), provider.requests.Load())
}

func TestOxylabsToolsTransportError(t *testing.T) {
	provider := newOxylabsProvider(t, http.StatusUnauthorized, `{"message": "Unauthorized"}`)
	tool := NewOxylabsSearchTool(OxylabsSearchToolOptions{
		Client: newOxylabsClient(t, provider.URL),
	})

	_, err := tool.Call(context.Background(), map[string]any{"query": "golang"})
	assert.True(t, oxylabs.IsTransportError(err))
}

func TestOxylabsToolsInvalidInput(t *testing.T) {
	tool := NewOxylabsSearchTool(OxylabsSearchToolOptions{
		Client: newOxylabsClient(t, "http://127.0.0.1:1"),
	})
	result, err := tool.Call(context.Background(), "{not json")
	assert.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "invalid json")
}

func TestOxylabsToolsNoClient(t *testing.T) {
	tool := NewOxylabsSearchTool(OxylabsSearchToolOptions{})
	_, err := tool.Call(context.Background(), map[string]any{"query": "golang"})
	assert.Error(t, err)

	// the schema still renders with the package default
	assert.Contains(t, tool.Schema().Properties["geo_location"].Description, oxylabs.DefaultGeoLocation)
}
