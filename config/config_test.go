package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deepnoodle-ai/oxysearch/oxylabs"
	"github.com/deepnoodle-ai/wonton/assert"
)

const sampleYAML = `
log_level: debug
oxylabs:
  geo_location: "Paris,France"
  limit: 10
  parse: false
  request_timeout: 30s
  max_retries: 2
  result_categories: [knowledge_graph]
  exclude_attributes: ["pos*", "url_shown"]
  context:
    - key: filter
      value: 1
`

func clearEnvironment(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvUsername, EnvPassword, EnvBaseURL, EnvGeoLocation, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML([]byte(sampleYAML))
	assert.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Paris,France", cfg.Oxylabs.GeoLocation)
	assert.Equal(t, 10, cfg.Oxylabs.Limit)
	assert.NotNil(t, cfg.Oxylabs.Parse)
	assert.False(t, *cfg.Oxylabs.Parse)
	assert.Equal(t, []string{"pos*", "url_shown"}, cfg.Oxylabs.ExcludeAttributes)
	assert.Len(t, cfg.Oxylabs.Context, 1)
	assert.Equal(t, "filter", cfg.Oxylabs.Context[0].Key)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := ParseYAML([]byte("oxylabs:\n  geolocation: Paris\n"))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"oxylabs": {"geolocation": "Paris"}}`))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	cfg, err := ParseFile(writeFile(t, "oxysearch.json", `{"log_level": "warn", "oxylabs": {"pages": 2}}`))
	assert.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Oxylabs.Pages)

	_, err = ParseFile(writeFile(t, "oxysearch.toml", "log_level = 'warn'"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestLoad(t *testing.T) {
	t.Run("EnvironmentOverridesFile", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv(EnvUsername, "env-user")
		t.Setenv(EnvPassword, "env-pass")
		t.Setenv(EnvGeoLocation, "Berlin,Germany")

		cfg, err := Load(writeFile(t, "oxysearch.yaml", sampleYAML))
		assert.NoError(t, err)
		assert.Equal(t, "env-user", cfg.Oxylabs.Username)
		assert.Equal(t, "env-pass", cfg.Oxylabs.Password)
		assert.Equal(t, "Berlin,Germany", cfg.Oxylabs.GeoLocation)
		assert.Equal(t, 10, cfg.Oxylabs.Limit)
	})

	t.Run("NoFile", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv(EnvLogLevel, "info")
		cfg, err := Load("")
		assert.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("MissingFile", func(t *testing.T) {
		clearEnvironment(t)
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("InvalidLogLevel", func(t *testing.T) {
		clearEnvironment(t)
		_, err := Load(writeFile(t, "oxysearch.yaml", "log_level: loud\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "log_level")
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		clearEnvironment(t)
		_, err := Load(writeFile(t, "oxysearch.yaml", "oxylabs:\n  request_timeout: soon\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "request_timeout")
	})
}

func TestClientConfig(t *testing.T) {
	clearEnvironment(t)
	cfg, err := ParseYAML([]byte(sampleYAML))
	assert.NoError(t, err)
	cfg.Oxylabs.Username, cfg.Oxylabs.Password = "u", "p"

	clientConfig, err := cfg.Oxylabs.ClientConfig()
	assert.NoError(t, err)
	assert.Equal(t, "Paris,France", clientConfig.GeoLocation)
	assert.Equal(t, 10, clientConfig.Limit)
	assert.False(t, clientConfig.Parse)
	assert.Equal(t, 30*time.Second, clientConfig.RequestTimeout)
	assert.Equal(t, 2, clientConfig.MaxRetries)
	assert.Equal(t, []string{oxylabs.CategoryKnowledgeGraph}, clientConfig.ResultCategories)
	assert.Equal(t, oxylabs.DefaultSource, clientConfig.Source)
	assert.Equal(t, oxylabs.DefaultBaseURL, clientConfig.BaseURL)
	assert.Equal(t, oxylabs.DefaultRetryBaseWait, clientConfig.RetryBaseWait)
	assert.Len(t, clientConfig.Context, 1)

	client, err := oxylabs.New(oxylabs.WithConfig(clientConfig))
	assert.NoError(t, err)
	assert.Equal(t, "Paris,France", client.Config().GeoLocation)
}

func TestClientConfigDefaults(t *testing.T) {
	clearEnvironment(t)
	clientConfig, err := Oxylabs{}.ClientConfig()
	assert.NoError(t, err)
	assert.Equal(t, oxylabs.DefaultGeoLocation, clientConfig.GeoLocation)
	assert.Equal(t, oxylabs.DefaultLimit, clientConfig.Limit)
	assert.True(t, clientConfig.Parse)
	assert.Equal(t, oxylabs.DefaultExcludeAttributes, clientConfig.ExcludeAttributes)

	_, err = oxylabs.New(oxylabs.WithConfig(clientConfig))
	assert.True(t, oxylabs.IsConfigurationError(err), "credentials are required")
}

func TestMerge(t *testing.T) {
	yes := true
	base := &Config{
		LogLevel: "warn",
		Oxylabs: Oxylabs{
			GeoLocation:       "Paris,France",
			Limit:             3,
			ExcludeAttributes: []string{"pos_overall"},
		},
	}
	override := &Config{
		Oxylabs: Oxylabs{
			Limit:                  7,
			IncludeBinaryImageData: &yes,
		},
	}
	merged := Merge(base, override)
	assert.Equal(t, "warn", merged.LogLevel)
	assert.Equal(t, "Paris,France", merged.Oxylabs.GeoLocation)
	assert.Equal(t, 7, merged.Oxylabs.Limit)
	assert.True(t, *merged.Oxylabs.IncludeBinaryImageData)

	// the base is left untouched
	merged.Oxylabs.ExcludeAttributes[0] = "changed"
	assert.Equal(t, "pos_overall", base.Oxylabs.ExcludeAttributes[0])
	assert.Equal(t, 3, base.Oxylabs.Limit)
}

func TestFromEnvironment(t *testing.T) {
	env := map[string]string{
		EnvUsername:    "user",
		EnvGeoLocation: "Tokyo,Japan",
	}
	cfg := FromEnvironment(func(key string) string { return env[key] })
	assert.Equal(t, "user", cfg.Oxylabs.Username)
	assert.Equal(t, "", cfg.Oxylabs.Password)
	assert.Equal(t, "Tokyo,Japan", cfg.Oxylabs.GeoLocation)
}

func TestRedactedWrite(t *testing.T) {
	cfg := &Config{Oxylabs: Oxylabs{Username: "user", Password: "secret"}}
	var buf bytes.Buffer
	assert.NoError(t, cfg.Redacted().Write(&buf))
	assert.Contains(t, buf.String(), "username: user")
	assert.NotContains(t, buf.String(), "secret")
	assert.Equal(t, "secret", cfg.Oxylabs.Password)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := &Config{LogLevel: "info", Oxylabs: Oxylabs{Pages: 3}}
	path := filepath.Join(t.TempDir(), "saved.yaml")
	assert.NoError(t, cfg.Save(path))
	loaded, err := ParseFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "info", loaded.LogLevel)
	assert.Equal(t, 3, loaded.Oxylabs.Pages)
}
