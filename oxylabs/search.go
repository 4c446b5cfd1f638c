package oxylabs

import (
	"context"

	"github.com/deepnoodle-ai/oxysearch/web"
	"github.com/tidwall/gjson"
)

var _ web.Searcher = &Client{}

// Search implements web.Searcher using the organic results of every page.
// A positive Limit truncates the result list.
func (c *Client) Search(ctx context.Context, input *web.SearchInput) (*web.SearchOutput, error) {
	if input == nil {
		return nil, &InvalidArgumentError{Argument: "input", Message: "must not be nil"}
	}
	if input.Limit < 0 {
		return nil, &InvalidArgumentError{Argument: "limit", Message: "must not be negative"}
	}
	results, err := c.Results(ctx, SearchQuery{
		Query:       input.Query,
		GeoLocation: input.GeoLocation,
	})
	if err != nil {
		return nil, err
	}

	items := []*web.SearchItem{}
	for _, page := range results {
		gjson.GetBytes(page, "organic").ForEach(func(_, item gjson.Result) bool {
			url := item.Get("url").String()
			if url == "" {
				return true
			}
			items = append(items, &web.SearchItem{
				Rank:        len(items) + 1,
				URL:         url,
				Title:       item.Get("title").String(),
				Description: item.Get("desc").String(),
			})
			return true
		})
	}
	if input.Limit > 0 && len(items) > input.Limit {
		items = items[:input.Limit]
	}
	return &web.SearchOutput{Items: items}, nil
}
