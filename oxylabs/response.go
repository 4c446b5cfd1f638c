package oxylabs

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Results holds the parsed "results" object of each provider page, in
// provider order. Each entry is the provider's JSON verbatim, so object key
// order survives a round trip.
type Results []json.RawMessage

// JSON renders the results as a compact JSON array.
func (r Results) JSON() (string, error) {
	if r == nil {
		r = Results{}
	}
	data, err := json.Marshal([]json.RawMessage(r))
	if err != nil {
		return "", &ResponseFormatError{Reason: "failed to encode results", Err: err}
	}
	return string(data), nil
}

// ParseResults validates a realtime API response body and unpacks the
// content.results object of every page. Pages with an empty results object
// are skipped.
func ParseResults(body []byte) (Results, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ResponseFormatError{Reason: "response is not valid JSON"}
	}
	pages := gjson.GetBytes(body, "results")
	if !pages.IsArray() {
		return nil, &ResponseFormatError{Reason: "missing results list"}
	}
	items := pages.Array()
	if len(items) == 0 {
		return nil, &ResponseFormatError{Reason: "no results returned"}
	}

	results := Results{}
	for i, page := range items {
		if !page.IsObject() {
			return nil, &ResponseFormatError{Reason: fmt.Sprintf("page %d is not an object", i+1)}
		}
		content := page.Get("content")
		if !content.IsObject() {
			return nil, &ResponseFormatError{
				Reason: fmt.Sprintf("page %d content is not an object, try setting parse to true", i+1),
			}
		}
		unpacked := content.Get("results")
		if !unpacked.IsObject() {
			return nil, &ResponseFormatError{Reason: fmt.Sprintf("page %d has no results object", i+1)}
		}
		if !truthy(unpacked) {
			continue
		}
		results = append(results, json.RawMessage(unpacked.Raw))
	}
	return results, nil
}
