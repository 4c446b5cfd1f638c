package config

import "slices"

// Merge merges two configs, with the second one taking precedence. Only
// non-zero override fields replace base fields.
func Merge(base, override *Config) *Config {
	result := *base
	result.Oxylabs.Context = slices.Clone(base.Oxylabs.Context)
	result.Oxylabs.ResultCategories = slices.Clone(base.Oxylabs.ResultCategories)
	result.Oxylabs.ExcludeAttributes = slices.Clone(base.Oxylabs.ExcludeAttributes)

	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	dst, src := &result.Oxylabs, &override.Oxylabs
	mergeString(&dst.Username, src.Username)
	mergeString(&dst.Password, src.Password)
	mergeString(&dst.BaseURL, src.BaseURL)
	mergeString(&dst.Source, src.Source)
	mergeString(&dst.UserAgentType, src.UserAgentType)
	mergeString(&dst.Render, src.Render)
	mergeString(&dst.Domain, src.Domain)
	mergeString(&dst.Locale, src.Locale)
	mergeString(&dst.GeoLocation, src.GeoLocation)
	mergeString(&dst.RequestTimeout, src.RequestTimeout)
	mergeString(&dst.RetryBaseWait, src.RetryBaseWait)

	if src.StartPage != 0 {
		dst.StartPage = src.StartPage
	}
	if src.Pages != 0 {
		dst.Pages = src.Pages
	}
	if src.Limit != 0 {
		dst.Limit = src.Limit
	}
	if src.MaxRetries != 0 {
		dst.MaxRetries = src.MaxRetries
	}
	if src.Parse != nil {
		dst.Parse = src.Parse
	}
	if src.IncludeBinaryImageData != nil {
		dst.IncludeBinaryImageData = src.IncludeBinaryImageData
	}
	if src.ParsingInstructions != nil {
		dst.ParsingInstructions = src.ParsingInstructions
	}
	if src.Context != nil {
		dst.Context = slices.Clone(src.Context)
	}
	if src.ResultCategories != nil {
		dst.ResultCategories = slices.Clone(src.ResultCategories)
	}
	if src.ExcludeAttributes != nil {
		dst.ExcludeAttributes = slices.Clone(src.ExcludeAttributes)
	}
	return &result
}

func mergeString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
