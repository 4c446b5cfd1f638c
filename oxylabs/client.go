// Package oxylabs is a client for the Oxylabs Web Scraper API (realtime
// integration) specialized for Google search results.
//
// A Client turns a free-text query and a geo-location into a provider
// request and returns either a human-readable summary (Run) or the parsed
// page results as JSON (Results). Each operation has a non-blocking variant
// that returns an [oxysearch.Promise].
package oxylabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/deepnoodle-ai/oxysearch"
	"github.com/deepnoodle-ai/oxysearch/retry"
	"github.com/deepnoodle-ai/oxysearch/slogger"
	"github.com/gobwas/glob"
)

const (
	userAgent       = "oxysearch-go/0.1"
	maxErrorBodyLen = 512

	// DefaultMaxResponseSize bounds a provider response body. Parsed pages
	// with rendering disabled are well under a megabyte.
	DefaultMaxResponseSize int64 = 32 << 20
)

// ClientOption is a function that modifies the client configuration.
type ClientOption func(*Client)

// WithConfig replaces the whole configuration. Apply it before options that
// change individual fields.
func WithConfig(cfg Config) ClientOption {
	return func(c *Client) {
		c.cfg = cfg.clone()
	}
}

// WithCredentials sets the Oxylabs API username and password.
func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.cfg.Username = username
		c.cfg.Password = password
	}
}

// WithBaseURL sets the endpoint requests are sent to.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.cfg.BaseURL = url
	}
}

// WithGeoLocation sets the location used when a query does not name one.
func WithGeoLocation(location string) ClientOption {
	return func(c *Client) {
		c.cfg.GeoLocation = location
	}
}

// WithMaxRetries enables retries of transport failures.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.cfg.MaxRetries = n
	}
}

// WithHTTPClient sets the HTTP client. Its own Timeout takes precedence over
// Config.RequestTimeout.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMaxResponseSize caps the provider response body. Larger responses
// fail with a *ResponseFormatError.
func WithMaxResponseSize(n int64) ClientOption {
	return func(c *Client) {
		c.maxResponseSize = n
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger slogger.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client calls the Oxylabs API. It is safe for concurrent use; calls share
// nothing but the read-only configuration and the HTTP client.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     slogger.Logger
	excluded   []glob.Glob

	maxResponseSize int64
}

// New creates a client from DefaultConfig and the given options. Missing
// credentials or unsupported parameters are reported as a
// *ConfigurationError.
func New(opts ...ClientOption) (*Client, error) {
	c := &Client{
		cfg:             DefaultConfig(),
		logger:          slogger.DefaultLogger,
		maxResponseSize: DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cfg = c.cfg.clone()
	if c.maxResponseSize <= 0 {
		c.maxResponseSize = DefaultMaxResponseSize
	}
	if c.cfg.GeoLocation == "" {
		c.cfg.GeoLocation = DefaultGeoLocation
	}
	excluded, err := c.cfg.validate()
	if err != nil {
		return nil, err
	}
	c.excluded = excluded
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.cfg.RequestTimeout}
	}
	if c.logger == nil {
		c.logger = slogger.DefaultLogger
	}
	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg.clone()
}

// SearchQuery is the input of a single search call.
type SearchQuery struct {
	// Query is the search text. Required.
	Query string `json:"query"`

	// GeoLocation overrides the configured default location when set.
	GeoLocation string `json:"geo_location,omitempty"`
}

// resolve validates the query and fills in the default location.
func (c *Client) resolve(q SearchQuery) (SearchQuery, error) {
	if strings.TrimSpace(q.Query) == "" {
		return q, &InvalidArgumentError{Argument: "query", Message: "must not be empty"}
	}
	q.GeoLocation = strings.TrimSpace(q.GeoLocation)
	if q.GeoLocation == "" {
		q.GeoLocation = c.cfg.GeoLocation
	}
	return q, nil
}

// Run searches and returns the results formatted as readable text.
func (c *Client) Run(ctx context.Context, q SearchQuery) (string, error) {
	results, err := c.Results(ctx, q)
	if err != nil {
		return "", err
	}
	return c.Format(results), nil
}

// RunAsync is the non-blocking form of Run.
func (c *Client) RunAsync(ctx context.Context, q SearchQuery) *oxysearch.Promise[string] {
	return oxysearch.Go(ctx, func(ctx context.Context) (string, error) {
		return c.Run(ctx, q)
	})
}

// Results searches and returns the parsed result object of every page, in
// the order the provider returned them.
func (c *Client) Results(ctx context.Context, q SearchQuery) (Results, error) {
	q, err := c.resolve(q)
	if err != nil {
		return nil, err
	}
	body, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	return ParseResults(body)
}

// ResultsAsync is the non-blocking form of Results.
func (c *Client) ResultsAsync(ctx context.Context, q SearchQuery) *oxysearch.Promise[Results] {
	return oxysearch.Go(ctx, func(ctx context.Context) (Results, error) {
		return c.Results(ctx, q)
	})
}

type searchRequest struct {
	Source              string         `json:"source"`
	Query               string         `json:"query"`
	GeoLocation         string         `json:"geo_location,omitempty"`
	Domain              string         `json:"domain,omitempty"`
	UserAgentType       string         `json:"user_agent_type,omitempty"`
	Render              string         `json:"render,omitempty"`
	StartPage           int            `json:"start_page,omitempty"`
	Pages               int            `json:"pages,omitempty"`
	Limit               int            `json:"limit,omitempty"`
	Parse               bool           `json:"parse,omitempty"`
	Locale              string         `json:"locale,omitempty"`
	Context             []ContextParam `json:"context,omitempty"`
	ParsingInstructions map[string]any `json:"parsing_instructions,omitempty"`
}

func (c *Client) newRequest(q SearchQuery) *searchRequest {
	return &searchRequest{
		Source:              c.cfg.Source,
		Query:               q.Query,
		GeoLocation:         q.GeoLocation,
		Domain:              c.cfg.Domain,
		UserAgentType:       c.cfg.UserAgentType,
		Render:              c.cfg.Render,
		StartPage:           c.cfg.StartPage,
		Pages:               c.cfg.Pages,
		Limit:               c.cfg.Limit,
		Parse:               c.cfg.Parse,
		Locale:              c.cfg.Locale,
		Context:             c.cfg.Context,
		ParsingInstructions: c.cfg.ParsingInstructions,
	}
}

func (c *Client) fetch(ctx context.Context, q SearchQuery) ([]byte, error) {
	payload, err := json.Marshal(c.newRequest(q))
	if err != nil {
		return nil, fmt.Errorf("failed to encode oxylabs request: %w", err)
	}

	logger := c.logger.With("query", q.Query, "geo_location", q.GeoLocation)
	logger.Debug("oxylabs search request", "source", c.cfg.Source)

	start := time.Now()
	var body []byte
	err = retry.Do(ctx, func(ctx context.Context) error {
		var err error
		body, err = c.doRequest(ctx, payload)
		if err != nil && ctx.Err() == nil && isRetryable(err) {
			return retry.NewRecoverableError(err)
		}
		return err
	},
		retry.WithMaxRetries(c.cfg.MaxRetries),
		retry.WithBaseWait(c.cfg.RetryBaseWait),
		retry.WithOnRetry(func(attempt int, err error) {
			logger.Warn("retrying oxylabs search", "attempt", attempt, "error", err)
		}),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !IsTransportError(err) {
			err = &TransportError{Kind: TransportTimeout, Err: err}
		}
		logger.Debug("oxylabs search failed", "duration", time.Since(start), "error", err)
		return nil, err
	}
	logger.Debug("oxylabs search response", "duration", time.Since(start), "bytes", len(body))
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Kind: TransportConnection, Err: err}
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		return nil, classifyError(ctx, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Kind:       TransportStatus,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), maxErrorBodyLen),
		}
	}
	if int64(len(body)) > c.maxResponseSize {
		return nil, &ResponseFormatError{
			Reason: fmt.Sprintf("response body exceeds %d bytes", c.maxResponseSize),
		}
	}
	return body, nil
}

// classifyError maps an HTTP client error to a TransportError. A context
// cancelled by the caller is returned as is.
func classifyError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{Kind: TransportTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Kind: TransportTimeout, Err: err}
	}
	return &TransportError{Kind: TransportConnection, Err: err}
}

func isRetryable(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	switch te.Kind {
	case TransportTimeout, TransportConnection:
		return true
	case TransportStatus:
		return retry.ShouldRetry(te.StatusCode)
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
