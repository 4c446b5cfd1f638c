package oxylabs

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

const (
	DefaultBaseURL        = "https://realtime.oxylabs.io/v1/queries"
	DefaultSource         = "google_search"
	DefaultGeoLocation    = "California,United States"
	DefaultUserAgentType  = "desktop"
	DefaultRender         = "html"
	DefaultDomain         = "com"
	DefaultLimit          = 5
	DefaultRequestTimeout = 165 * time.Second
	DefaultRetryBaseWait  = time.Second

	// RedactedImage replaces base64 image data in formatted summaries.
	RedactedImage = "Redacted base64 image string..."
)

// Result categories that can be selected with Config.ResultCategories.
const (
	CategoryKnowledgeGraph       = "knowledge_graph"
	CategoryCombinedSearchResult = "combined_search_result"
	CategoryProductInformation   = "product_information"
	CategoryLocalInformation     = "local_information"
	CategorySearchInformation    = "search_information"
)

// ResultCategories lists all supported categories in formatting order.
var ResultCategories = []string{
	CategoryKnowledgeGraph,
	CategoryCombinedSearchResult,
	CategoryProductInformation,
	CategoryLocalInformation,
	CategorySearchInformation,
}

// DefaultExcludeAttributes are attribute names never rendered in summaries.
var DefaultExcludeAttributes = []string{"pos_overall"}

var supportedSources = []string{"google_search"}

// ContextParam is an entry of the provider "context" request parameter.
type ContextParam struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Config holds credentials, the endpoint, and the default request
// parameters of a Client. A Client keeps its own copy, so changing a Config
// after New has no effect on existing clients.
type Config struct {
	Username string
	Password string
	BaseURL  string

	Source              string
	UserAgentType       string
	Render              string
	Domain              string
	StartPage           int
	Pages               int
	Limit               int
	Parse               bool
	Locale              string
	GeoLocation         string
	ParsingInstructions map[string]any
	Context             []ContextParam

	// RequestTimeout bounds each HTTP attempt.
	RequestTimeout time.Duration
	// MaxRetries is the number of extra attempts for timeouts, connection
	// failures, and retryable status codes. Zero means one attempt.
	MaxRetries    int
	RetryBaseWait time.Duration

	IncludeBinaryImageData bool
	ResultCategories       []string
	// ExcludeAttributes are glob patterns matched against lowercase
	// attribute names.
	ExcludeAttributes []string
}

// DefaultConfig returns the provider defaults with credentials read from
// OXYLABS_USERNAME and OXYLABS_PASSWORD and the endpoint from
// OXYLABS_BASE_URL when set.
func DefaultConfig() Config {
	cfg := Config{
		Username:          os.Getenv("OXYLABS_USERNAME"),
		Password:          os.Getenv("OXYLABS_PASSWORD"),
		BaseURL:           DefaultBaseURL,
		Source:            DefaultSource,
		UserAgentType:     DefaultUserAgentType,
		Render:            DefaultRender,
		Domain:            DefaultDomain,
		StartPage:         1,
		Pages:             1,
		Limit:             DefaultLimit,
		Parse:             true,
		GeoLocation:       DefaultGeoLocation,
		RequestTimeout:    DefaultRequestTimeout,
		RetryBaseWait:     DefaultRetryBaseWait,
		ExcludeAttributes: slices.Clone(DefaultExcludeAttributes),
	}
	if baseURL := os.Getenv("OXYLABS_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return cfg
}

// clone returns a deep copy so a Client never shares mutable state with
// its caller.
func (c Config) clone() Config {
	c.ParsingInstructions = maps.Clone(c.ParsingInstructions)
	c.Context = slices.Clone(c.Context)
	c.ResultCategories = slices.Clone(c.ResultCategories)
	c.ExcludeAttributes = slices.Clone(c.ExcludeAttributes)
	return c
}

// validate checks the configuration and compiles the exclusion patterns.
func (c *Config) validate() ([]glob.Glob, error) {
	if c.Username == "" || c.Password == "" {
		return nil, &ConfigurationError{
			Field:   "credentials",
			Message: "set OXYLABS_USERNAME and OXYLABS_PASSWORD or provide a username and password",
		}
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, &ConfigurationError{Field: "base_url", Message: "endpoint is required"}
	}
	if !slices.Contains(supportedSources, c.Source) {
		return nil, &ConfigurationError{
			Field:   "source",
			Message: fmt.Sprintf("%q is not supported, supported sources: %s", c.Source, strings.Join(supportedSources, ", ")),
		}
	}
	for _, category := range c.ResultCategories {
		if !slices.Contains(ResultCategories, category) {
			return nil, &ConfigurationError{
				Field:   "result_categories",
				Message: fmt.Sprintf("%q is not supported, supported categories: %s", category, strings.Join(ResultCategories, ", ")),
			}
		}
	}
	if c.StartPage < 0 || c.Pages < 0 || c.Limit < 0 {
		return nil, &ConfigurationError{Field: "pagination", Message: "start_page, pages, and limit must not be negative"}
	}
	if c.RequestTimeout < 0 {
		return nil, &ConfigurationError{Field: "request_timeout", Message: "must not be negative"}
	}
	if c.MaxRetries < 0 {
		return nil, &ConfigurationError{Field: "max_retries", Message: "must not be negative"}
	}
	excluded := make([]glob.Glob, 0, len(c.ExcludeAttributes))
	for _, pattern := range c.ExcludeAttributes {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, &ConfigurationError{
				Field:   "exclude_attributes",
				Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err),
			}
		}
		excluded = append(excluded, g)
	}
	return excluded, nil
}
