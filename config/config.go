// Package config loads oxysearch settings from YAML or JSON files and the
// environment.
//
// A minimal file:
//
//	log_level: info
//	oxylabs:
//	  geo_location: "Paris,France"
//	  exclude_attributes: ["pos_overall", "url_*"]
//
// Credentials are normally taken from OXYLABS_USERNAME and OXYLABS_PASSWORD
// rather than stored in the file.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deepnoodle-ai/oxysearch/oxylabs"
	"github.com/deepnoodle-ai/oxysearch/slogger"
	"github.com/goccy/go-yaml"
)

// Config is the top-level configuration file.
type Config struct {
	LogLevel string  `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Oxylabs  Oxylabs `yaml:"oxylabs,omitempty" json:"oxylabs,omitempty"`
}

// Oxylabs configures the Oxylabs client. Zero values keep the client
// defaults. Durations use Go syntax, e.g. "90s".
type Oxylabs struct {
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	Password string `yaml:"password,omitempty" json:"password,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	Source              string         `yaml:"source,omitempty" json:"source,omitempty"`
	UserAgentType       string         `yaml:"user_agent_type,omitempty" json:"user_agent_type,omitempty"`
	Render              string         `yaml:"render,omitempty" json:"render,omitempty"`
	Domain              string         `yaml:"domain,omitempty" json:"domain,omitempty"`
	StartPage           int            `yaml:"start_page,omitempty" json:"start_page,omitempty"`
	Pages               int            `yaml:"pages,omitempty" json:"pages,omitempty"`
	Limit               int            `yaml:"limit,omitempty" json:"limit,omitempty"`
	Parse               *bool          `yaml:"parse,omitempty" json:"parse,omitempty"`
	Locale              string         `yaml:"locale,omitempty" json:"locale,omitempty"`
	GeoLocation         string         `yaml:"geo_location,omitempty" json:"geo_location,omitempty"`
	ParsingInstructions map[string]any `yaml:"parsing_instructions,omitempty" json:"parsing_instructions,omitempty"`
	Context             []ContextParam `yaml:"context,omitempty" json:"context,omitempty"`

	RequestTimeout string `yaml:"request_timeout,omitempty" json:"request_timeout,omitempty"`
	MaxRetries     int    `yaml:"max_retries,omitempty" json:"max_retries,omitempty"`
	RetryBaseWait  string `yaml:"retry_base_wait,omitempty" json:"retry_base_wait,omitempty"`

	IncludeBinaryImageData *bool    `yaml:"include_binary_image_data,omitempty" json:"include_binary_image_data,omitempty"`
	ResultCategories       []string `yaml:"result_categories,omitempty" json:"result_categories,omitempty"`
	ExcludeAttributes      []string `yaml:"exclude_attributes,omitempty" json:"exclude_attributes,omitempty"`
}

// ContextParam is an entry of the provider "context" parameter.
type ContextParam struct {
	Key   string `yaml:"key" json:"key"`
	Value any    `yaml:"value" json:"value"`
}

// Load reads the configuration at path and overlays the environment. The
// path may name a file, a directory of .yaml/.yml/.json files, or a glob
// pattern such as "conf.d/**/*.yaml". Multiple files are merged in lexical
// order, later files taking precedence. An empty path yields a
// configuration built from the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		files, err := ResolvePaths(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			parsed, err := ParseFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", file, err)
			}
			cfg = Merge(cfg, parsed)
		}
	}
	cfg = Merge(cfg, FromEnvironment(os.Getenv))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields this package interprets itself. Client
// settings are validated by oxylabs.New.
func (c *Config) Validate() error {
	if !slogger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if _, err := parseDuration("request_timeout", c.Oxylabs.RequestTimeout); err != nil {
		return err
	}
	if _, err := parseDuration("retry_base_wait", c.Oxylabs.RetryBaseWait); err != nil {
		return err
	}
	return nil
}

// ClientConfig converts the section into an oxylabs.Config, starting from
// oxylabs.DefaultConfig.
func (o Oxylabs) ClientConfig() (oxylabs.Config, error) {
	cfg := oxylabs.DefaultConfig()
	setString(&cfg.Username, o.Username)
	setString(&cfg.Password, o.Password)
	setString(&cfg.BaseURL, o.BaseURL)
	setString(&cfg.Source, o.Source)
	setString(&cfg.UserAgentType, o.UserAgentType)
	setString(&cfg.Render, o.Render)
	setString(&cfg.Domain, o.Domain)
	setString(&cfg.Locale, o.Locale)
	setString(&cfg.GeoLocation, o.GeoLocation)
	if o.StartPage != 0 {
		cfg.StartPage = o.StartPage
	}
	if o.Pages != 0 {
		cfg.Pages = o.Pages
	}
	if o.Limit != 0 {
		cfg.Limit = o.Limit
	}
	if o.Parse != nil {
		cfg.Parse = *o.Parse
	}
	if o.IncludeBinaryImageData != nil {
		cfg.IncludeBinaryImageData = *o.IncludeBinaryImageData
	}
	cfg.MaxRetries = o.MaxRetries
	cfg.ParsingInstructions = o.ParsingInstructions
	for _, param := range o.Context {
		cfg.Context = append(cfg.Context, oxylabs.ContextParam{Key: param.Key, Value: param.Value})
	}
	if o.ResultCategories != nil {
		cfg.ResultCategories = o.ResultCategories
	}
	if o.ExcludeAttributes != nil {
		cfg.ExcludeAttributes = o.ExcludeAttributes
	}

	timeout, err := parseDuration("request_timeout", o.RequestTimeout)
	if err != nil {
		return oxylabs.Config{}, err
	}
	if timeout > 0 {
		cfg.RequestTimeout = timeout
	}
	wait, err := parseDuration("retry_base_wait", o.RetryBaseWait)
	if err != nil {
		return oxylabs.Config{}, err
	}
	if wait > 0 {
		cfg.RetryBaseWait = wait
	}
	return cfg, nil
}

// Redacted returns a copy safe to print, with the password masked.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Oxylabs.Password != "" {
		out.Oxylabs.Password = "********"
	}
	return &out
}

// Save writes the configuration to a file. The file extension selects the
// format:
// - .json -> JSON
// - .yml or .yaml -> YAML
func (c *Config) Save(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0600)
	case ".yml", ".yaml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0600)
	default:
		return fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// Write the configuration to a writer in YAML format
func (c *Config) Write(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(c)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}
