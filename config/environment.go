package config

// Environment variables read by FromEnvironment.
const (
	EnvUsername    = "OXYLABS_USERNAME"
	EnvPassword    = "OXYLABS_PASSWORD"
	EnvBaseURL     = "OXYLABS_BASE_URL"
	EnvGeoLocation = "OXYLABS_GEO_LOCATION"
	EnvLogLevel    = "OXYSEARCH_LOG_LEVEL"
)

// FromEnvironment builds an overlay config from environment variables.
// Unset variables leave the corresponding fields empty, so merging the
// overlay only replaces what the environment defines.
func FromEnvironment(getenv func(string) string) *Config {
	return &Config{
		LogLevel: getenv(EnvLogLevel),
		Oxylabs: Oxylabs{
			Username:    getenv(EnvUsername),
			Password:    getenv(EnvPassword),
			BaseURL:     getenv(EnvBaseURL),
			GeoLocation: getenv(EnvGeoLocation),
		},
	}
}
