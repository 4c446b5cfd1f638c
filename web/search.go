// Package web defines a provider-neutral web search interface.
package web

import "context"

type SearchInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
	// GeoLocation narrows results to a place when the provider supports it.
	GeoLocation string `json:"geo_location,omitempty"`
}

type SearchOutput struct {
	Items []*SearchItem `json:"items"`
}

type SearchItem struct {
	Rank        int    `json:"rank"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Image       string `json:"image,omitempty"`
}

type Searcher interface {
	Search(ctx context.Context, input *SearchInput) (*SearchOutput, error)
}
