package oxylabs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/tidwall/gjson"
)

// NoResultsSummary is the summary returned when nothing could be rendered.
const NoResultsSummary = "No good search result found"

const maxSnippetDepth = 5

type resultTag struct {
	key     string
	display string
}

type resultCategory struct {
	group string
	tags  []resultTag
}

var categories = map[string]resultCategory{
	CategoryKnowledgeGraph: {
		group: "Knowledge",
		tags: []resultTag{
			{"knowledge", "Knowledge Graph"},
			{"recipes", "Recipes"},
			{"item_carousel", "Item Carousel"},
			{"apps", "Apps"},
		},
	},
	CategoryCombinedSearchResult: {
		group: "Combined Search Results",
		tags: []resultTag{
			{"organic", "Organic Results"},
			{"organic_videos", "Organic Videos"},
			{"paid", "Paid Results"},
			{"featured_snipped", "Feature Snipped"},
			{"top_stories", "Top Stories"},
			{"finance", "Finance"},
			{"sports_games", "Sports Games"},
			{"twitter", "Twitter"},
			{"discussions_and_forums", "Discussions and Forums"},
			{"images", "Images"},
			{"videos", "Videos"},
			{"video_box", "Video box"},
		},
	},
	CategoryProductInformation: {
		group: "Product Information",
		tags: []resultTag{
			{"popular_products", "Popular Products"},
			{"pla", "Product Listing Ads (PLA)"},
		},
	},
	CategoryLocalInformation: {
		group: "Local Information",
		tags: []resultTag{
			{"top_sights", "Top Sights"},
			{"flights", "Flights"},
			{"hotels", "Hotels"},
			{"local_pack", "Local Pack"},
			{"local_service_ads", "Local Service Ads"},
			{"jobs", "Jobs"},
		},
	},
	CategorySearchInformation: {
		group: "Search Information",
		tags: []resultTag{
			{"search_information", "Search Information"},
			{"related_searches", "Related Searches"},
			{"related_searches_categorized", "Related Searches Categorized"},
			{"related_questions", "Related Questions"},
		},
	},
}

var imageDataAttributes = []string{"IMAGE_DATA", "DATA"}

const imagesAttribute = "IMAGES"

type containerKind int

const (
	kindOther containerKind = iota
	kindObject
	kindList
)

// element describes the container a value was found in.
type element struct {
	path    string
	tag     string
	display string
	kind    containerKind
}

type formatter struct {
	categories             []string
	includeBinaryImageData bool
	excluded               []glob.Glob
}

// Format renders results as readable text: one snippet per result tag,
// snippets separated by a blank line, in provider order.
func (c *Client) Format(results Results) string {
	f := &formatter{
		categories:             c.cfg.ResultCategories,
		includeBinaryImageData: c.cfg.IncludeBinaryImageData,
		excluded:               c.excluded,
	}
	return f.format(results)
}

func (f *formatter) format(results Results) string {
	selected := f.categories
	if len(selected) == 0 {
		selected = ResultCategories
	}
	var snippets []string
	for _, page := range results {
		parsed := gjson.ParseBytes(page)
		for _, name := range selected {
			snippets = f.appendCategory(snippets, parsed, categories[name])
		}
	}
	if len(snippets) == 0 {
		return NoResultsSummary
	}
	return strings.Join(snippets, "\n\n")
}

func (f *formatter) appendCategory(snippets []string, page gjson.Result, category resultCategory) []string {
	for _, tag := range category.tags {
		content := page.Get(gjsonKey(tag.key))
		if !truthy(content) {
			continue
		}
		collected := f.collect(content, 0, element{
			path:    category.group + "-" + tag.key,
			tag:     tag.key,
			display: tag.display,
			kind:    kindOf(content),
		})
		if collected != "" {
			snippets = append(snippets, collected)
		}
	}
	return snippets
}

// collect renders target recursively. Indentation grows by two spaces per
// level and nothing below maxSnippetDepth is rendered.
func (f *formatter) collect(target gjson.Result, depth int, parent element) string {
	if depth >= maxSnippetDepth {
		return ""
	}
	padding := strings.Repeat("  ", depth+1)
	var lines []string
	add := func(line string) {
		if line != "" {
			lines = append(lines, line)
		}
	}

	switch {
	case target.IsObject():
		if !truthy(target) {
			break
		}
		add(fmt.Sprintf("%s%s: ", padding, strings.ToUpper(parent.display)))
		target.ForEach(func(k, value gjson.Result) bool {
			key := strings.ToUpper(k.String())
			switch {
			case value.IsObject():
				add(f.collect(value, depth+1, element{
					path:    strings.ToUpper(parent.path) + "-" + key,
					tag:     key,
					display: key,
					kind:    kindObject,
				}))
			case value.IsArray():
				if !truthy(value) {
					return true
				}
				add(fmt.Sprintf("%s%s ITEMS: ", padding, key))
				for i, item := range value.Array() {
					add(f.collect(item, depth+1, element{
						path:    fmt.Sprintf("%s-%s-ITEM-%d", strings.ToUpper(parent.path), key, i+1),
						tag:     key,
						display: fmt.Sprintf("%s-ITEM-%d", key, i+1),
						kind:    kindList,
					}))
				}
			default:
				if !truthy(value) || f.isExcluded(k.String()) {
					return true
				}
				add(fmt.Sprintf("%s%s: %s", padding, key, f.scalar(value, f.isImageData(key))))
			}
			return true
		})

	case target.IsArray():
		if truthy(target) {
			add(fmt.Sprintf("%s%s ITEMS: ", padding, strings.ToUpper(parent.display)))
		}
		tag := strings.ToUpper(parent.tag)
		for i, item := range target.Array() {
			add(f.collect(item, depth+1, element{
				path:    fmt.Sprintf("%s-ITEM-%d", strings.ToUpper(parent.path), i+1),
				tag:     tag,
				display: fmt.Sprintf("%s-ITEM-%d", tag, i+1),
				kind:    kindList,
			}))
		}

	default:
		if !truthy(target) {
			break
		}
		switch parent.kind {
		case kindList:
			redact := f.isImageData(parent.tag) || underImages(parent.path)
			add(fmt.Sprintf("%s%s: %s", padding, parent.display, f.scalar(target, redact)))
		case kindObject:
			if !f.isExcluded(parent.tag) {
				add(fmt.Sprintf("%s%s: %s", padding, parent.display, f.scalar(target, f.isImageData(parent.tag))))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (f *formatter) scalar(value gjson.Result, imageData bool) string {
	if imageData && !f.includeBinaryImageData {
		return RedactedImage
	}
	switch value.Type {
	case gjson.String:
		return value.Str
	case gjson.True:
		return "True"
	}
	return value.Raw
}

func (f *formatter) isImageData(tag string) bool {
	return slices.Contains(imageDataAttributes, strings.ToUpper(tag))
}

func (f *formatter) isExcluded(attribute string) bool {
	name := strings.ToLower(attribute)
	for _, g := range f.excluded {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// underImages reports whether one of the last three path segments is the
// images attribute, which marks base64 thumbnails inside image carousels.
func underImages(path string) bool {
	segments := strings.Split(path, "-")
	if len(segments) > 3 {
		segments = segments[len(segments)-3:]
	}
	return slices.Contains(segments, imagesAttribute)
}

func kindOf(r gjson.Result) containerKind {
	switch {
	case r.IsObject():
		return kindObject
	case r.IsArray():
		return kindList
	}
	return kindOther
}

// truthy treats empty strings, zero numbers, false, null, and empty
// containers as absent.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True:
		return true
	case gjson.JSON:
		nonEmpty := false
		r.ForEach(func(_, _ gjson.Result) bool {
			nonEmpty = true
			return false
		})
		return nonEmpty
	}
	return false
}

// gjsonKey escapes path metacharacters so key is matched literally.
func gjsonKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
